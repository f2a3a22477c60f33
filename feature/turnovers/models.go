package turnovers

import (
	"loyalty-sync/feature/products"
	"loyalty-sync/feature/saleslines"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Turnover is one point-earning transaction reported to the partner.
type Turnover struct {
	Customer      string          `json:"customer"`
	Operator      string          `json:"operator"`
	Turnover      decimal.Decimal `json:"turnover"`
	TransactionID string          `json:"transactionId"`
	Wholesaler    string          `json:"wholesaler"`
	Country       string          `json:"country"`
	ArticleNr     string          `json:"articleNr,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Date          string          `json:"date,omitempty"`
}

// turnoverWire is Turnover as the partner expects it, amounts as JSON numbers.
type turnoverWire struct {
	Customer      string      `json:"customer"`
	Operator      string      `json:"operator"`
	Turnover      json.Number `json:"turnover"`
	TransactionID string      `json:"transactionId"`
	Wholesaler    string      `json:"wholesaler"`
	Country       string      `json:"country"`
	ArticleNr     string      `json:"articleNr,omitempty"`
	Quantity      json.Number `json:"quantity"`
	Date          string      `json:"date,omitempty"`
}

// MarshalJSON writes amounts as JSON numbers; the partner rejects quoted decimals.
// Decoding needs no counterpart since decimal.Decimal accepts both forms.
func (t Turnover) MarshalJSON() ([]byte, error) {
	return json.Marshal(turnoverWire{
		Customer:      t.Customer,
		Operator:      t.Operator,
		Turnover:      json.Number(t.Turnover.String()),
		TransactionID: t.TransactionID,
		Wholesaler:    t.Wholesaler,
		Country:       t.Country,
		ArticleNr:     t.ArticleNr,
		Quantity:      json.Number(t.Quantity.String()),
		Date:          t.Date,
	})
}

// Key is the deduplication key: amount, operator and transaction id.
// Amounts compare by value, so 10 and 10.00 share a key.
func (t Turnover) Key() string {
	return t.Turnover.String() + "\x1f" + t.Operator + "\x1f" + t.TransactionID
}

// EnrichedLine is a sales line matched to its eligible product.
type EnrichedLine struct {
	saleslines.SalesLine
	Product products.Product
}
