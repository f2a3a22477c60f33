package saleslines

import "loyalty-sync/core/report"

// Sheet renders sales lines as a worksheet.
func Sheet(name string, lines []SalesLine) report.Sheet {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		created := ""
		if !l.CreatedAt.IsZero() {
			created = l.CreatedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []any{
			l.SaleID,
			l.ItemID,
			l.LineAmount.InexactFloat64(),
			l.QuantityOrdered.InexactFloat64(),
			l.CustomerAccount,
			created,
			l.ProductLabel,
			l.ImporterProductCode,
		})
	}
	return report.Sheet{
		Name:   name,
		Header: []string{"SalesID", "ItemID", "LineAmount", "Quantity", "CustAccount", "Created", "ProductLabel", "ImporterProductCode"},
		Rows:   rows,
	}
}
