package saleslines

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SalesLine is one sales order line of yesterday, already restricted by the database to
// customers present in the local loyalty roster.
type SalesLine struct {
	SaleID              string          `json:"saleId"`
	ItemID              string          `json:"itemId"`
	LineAmount          decimal.Decimal `json:"lineAmount"`
	QuantityOrdered     decimal.Decimal `json:"quantityOrdered"`
	CustomerAccount     string          `json:"customerAccount"`
	CreatedAt           time.Time       `json:"createdAt"`
	ProductLabel        string          `json:"productLabel"`
	ImporterProductCode string          `json:"importerProductCode"`
}

// salesRow matches the columns of the salesline view.
type salesRow struct {
	SalesID             string              `gorm:"column:SALESID"`
	ItemID              string              `gorm:"column:ITEMID"`
	LineAmount          decimal.NullDecimal `gorm:"column:LINEAMOUNT"`
	QtyOrdered          decimal.NullDecimal `gorm:"column:QTYORDERED"`
	CustAccount         string              `gorm:"column:CUSTACCOUNT"`
	CreatedDateTime     sql.NullTime        `gorm:"column:CREATEDDATETIME"`
	ProductLabel        sql.NullString      `gorm:"column:ProductLabel"`
	ImporterProductCode sql.NullString      `gorm:"column:ImporterProductCode"`
}

// RequiredColumns lists the view columns the repository reads.
var RequiredColumns = []string{
	"SALESID", "ITEMID", "LINEAMOUNT", "QTYORDERED", "CUSTACCOUNT",
	"CREATEDDATETIME", "ProductLabel", "ImporterProductCode",
}

func (r salesRow) toSalesLine() SalesLine {
	return SalesLine{
		SaleID:              r.SalesID,
		ItemID:              r.ItemID,
		LineAmount:          r.LineAmount.Decimal,
		QuantityOrdered:     r.QtyOrdered.Decimal,
		CustomerAccount:     r.CustAccount,
		CreatedAt:           r.CreatedDateTime.Time,
		ProductLabel:        r.ProductLabel.String,
		ImporterProductCode: r.ImporterProductCode.String,
	}
}
