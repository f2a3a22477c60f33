package turnovers

import (
	"testing"
	"time"

	"loyalty-sync/feature/products"
	"loyalty-sync/feature/saleslines"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(sale, customer, article string, amount string, product products.Product) EnrichedLine {
	return EnrichedLine{
		SalesLine: saleslines.SalesLine{
			SaleID:              sale,
			ItemID:              "ITEM-" + article,
			LineAmount:          decimal.RequireFromString(amount),
			QuantityOrdered:     decimal.NewFromInt(2),
			CustomerAccount:     customer,
			CreatedAt:           time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC),
			ImporterProductCode: article,
		},
		Product: product,
	}
}

func TestBuild_MapsFields(t *testing.T) {
	p := products.Product{ArticleNr: "A1", ProductGroup: "SPIRITS", PointMultiplier: decimal.RequireFromString("1.5")}

	got := Build([]EnrichedLine{line("S-1", "C1", "A1", "10.01", p)}, "W1", "NL")

	require.Len(t, got, 1)
	tv := got[0]
	assert.Equal(t, "C1", tv.Customer)
	assert.Equal(t, "SPIRITS", tv.Operator)
	assert.Equal(t, "S-1", tv.TransactionID)
	assert.Equal(t, "W1", tv.Wholesaler)
	assert.Equal(t, "NL", tv.Country)
	assert.Equal(t, "A1", tv.ArticleNr)
	assert.Equal(t, "2026-10-18", tv.Date)
	assert.True(t, decimal.RequireFromString("15.02").Equal(tv.Turnover), "got %s", tv.Turnover)
	assert.True(t, decimal.NewFromInt(2).Equal(tv.Quantity))
}

func TestBuild_Defaults(t *testing.T) {
	p := products.Product{ArticleNr: "A2"}
	l := line("S-2", "C2", "A2", "7.5", p)
	l.CreatedAt = time.Time{}

	got := Build([]EnrichedLine{l}, "W1", "NL")

	require.Len(t, got, 1)
	assert.Equal(t, "A2", got[0].Operator)
	assert.Empty(t, got[0].Date)
	assert.True(t, decimal.RequireFromString("7.5").Equal(got[0].Turnover))
}

func TestBuild_PreservesOrder(t *testing.T) {
	p := products.Product{ArticleNr: "A1", ProductGroup: "G"}
	lines := []EnrichedLine{
		line("S-3", "C1", "A1", "1", p),
		line("S-1", "C1", "A1", "1", p),
		line("S-2", "C1", "A1", "1", p),
	}

	got := Build(lines, "W1", "NL")

	require.Len(t, got, 3)
	assert.Equal(t, []string{"S-3", "S-1", "S-2"}, []string{got[0].TransactionID, got[1].TransactionID, got[2].TransactionID})
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil, "W1", "NL"))
}

func turnover(amount, operator, tx string) Turnover {
	return Turnover{Turnover: decimal.RequireFromString(amount), Operator: operator, TransactionID: tx, Customer: "C1"}
}

func TestDedupe(t *testing.T) {
	items := []Turnover{
		turnover("10", "OP", "T1"),
		turnover("10.00", "OP", "T1"),
		turnover("10", "OP", "T2"),
		turnover("10", "OTHER", "T1"),
		turnover("11", "OP", "T1"),
		turnover("10", "OP", "T2"),
	}

	got := Dedupe(items)

	require.Len(t, got, 4)
	assert.Equal(t, "T1", got[0].TransactionID)
	assert.Equal(t, "T2", got[1].TransactionID)
	assert.Equal(t, "OTHER", got[2].Operator)
	assert.True(t, decimal.NewFromInt(11).Equal(got[3].Turnover))
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []Turnover{turnover("1", "A", "1"), turnover("1", "A", "1"), turnover("2", "A", "1")}

	once := Dedupe(items)
	assert.Equal(t, once, Dedupe(once))
}

func TestKey_SeparatorIsUnambiguous(t *testing.T) {
	a := turnover("1", "AB", "C")
	b := turnover("1", "A", "BC")
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestSheet(t *testing.T) {
	s := Sheet("Failed", []Turnover{turnover("12.5", "OP", "T1")})

	assert.Equal(t, "Failed", s.Name)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, len(s.Header), len(s.Rows[0]))
	assert.Equal(t, 12.5, s.Rows[0][2])
}
