package turnovers

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the booking date format expected by the partner.
const dateLayout = "2006-01-02"

// Build converts matched lines into turnovers, one per line, in input order.
// It performs no filtering and no I/O.
//
// Mapping: customer account → Customer, product group (article number when the partner gave
// none) → Operator, sale id → TransactionID, line amount × point multiplier rounded to cents →
// Turnover.
func Build(lines []EnrichedLine, wholesaler, country string) []Turnover {
	out := make([]Turnover, 0, len(lines))
	for _, line := range lines {
		out = append(out, buildOne(line, wholesaler, country))
	}
	return out
}

func buildOne(line EnrichedLine, wholesaler, country string) Turnover {
	multiplier := line.Product.PointMultiplier
	if !multiplier.IsPositive() {
		multiplier = decimal.NewFromInt(1)
	}

	operator := line.Product.ProductGroup
	if operator == "" {
		operator = line.Product.ArticleNr
	}

	return Turnover{
		Customer:      line.CustomerAccount,
		Operator:      operator,
		Turnover:      line.LineAmount.Mul(multiplier).Round(2),
		TransactionID: line.SaleID,
		Wholesaler:    wholesaler,
		Country:       country,
		ArticleNr:     line.Product.ArticleNr,
		Quantity:      line.QuantityOrdered,
		Date:          formatDate(line.CreatedAt),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Dedupe keeps the first turnover of every key, preserving order.
func Dedupe(items []Turnover) []Turnover {
	seen := make(map[string]struct{}, len(items))
	out := make([]Turnover, 0, len(items))
	for _, t := range items {
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
