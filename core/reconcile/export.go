package reconcile

import (
	"loyalty-sync/core/report"
	"loyalty-sync/feature/saleslines"
	"loyalty-sync/feature/turnovers"
)

// Sheets renders the enrolled lines, the eligible products and the built turnovers.
func (d *Diagnosis) Sheets() []report.Sheet {
	productRows := make([][]any, 0, len(d.Products))
	for _, p := range d.Products {
		productRows = append(productRows, []any{p.ArticleNr, p.Label, p.ProductGroup, p.PointMultiplier.InexactFloat64()})
	}

	return []report.Sheet{
		saleslines.Sheet("Lines", d.Lines),
		{
			Name:   "Products",
			Header: []string{"ArticleNr", "Label", "ProductGroup", "PointMultiplier"},
			Rows:   productRows,
		},
		turnovers.Sheet("Turnovers", d.Turnovers),
	}
}
