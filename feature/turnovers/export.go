package turnovers

import "loyalty-sync/core/report"

// Sheet renders turnovers as a worksheet.
func Sheet(name string, items []Turnover) report.Sheet {
	rows := make([][]any, 0, len(items))
	for _, t := range items {
		rows = append(rows, []any{
			t.Customer,
			t.Operator,
			t.Turnover.InexactFloat64(),
			t.TransactionID,
			t.Wholesaler,
			t.Country,
			t.ArticleNr,
			t.Quantity.InexactFloat64(),
			t.Date,
		})
	}
	return report.Sheet{
		Name:   name,
		Header: []string{"Customer", "Operator", "Turnover", "TransactionID", "Wholesaler", "Country", "ArticleNr", "Quantity", "Date"},
		Rows:   rows,
	}
}
