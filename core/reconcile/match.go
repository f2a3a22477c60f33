package reconcile

import (
	"loyalty-sync/feature/products"
	"loyalty-sync/feature/saleslines"
	"loyalty-sync/feature/turnovers"
)

// EnrolledOnly keeps the lines whose customer account is in the enrolled set.
func EnrolledOnly(lines []saleslines.SalesLine, enrolled map[string]struct{}) []saleslines.SalesLine {
	out := make([]saleslines.SalesLine, 0, len(lines))
	for _, line := range lines {
		if _, ok := enrolled[line.CustomerAccount]; ok {
			out = append(out, line)
		}
	}
	return out
}

// ProductCodes returns the distinct non-empty importer product codes of lines, in first-seen order.
func ProductCodes(lines []saleslines.SalesLine) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.ImporterProductCode == "" {
			continue
		}
		if _, ok := seen[line.ImporterProductCode]; ok {
			continue
		}
		seen[line.ImporterProductCode] = struct{}{}
		codes = append(codes, line.ImporterProductCode)
	}
	return codes
}

// Match joins lines with eligible products.
//
// A line is kept iff its customer is enrolled and a product exists whose article number equals
// the line's importer product code. Input order is preserved.
func Match(lines []saleslines.SalesLine, enrolled map[string]struct{}, eligible map[string]products.Product) []turnovers.EnrichedLine {
	out := make([]turnovers.EnrichedLine, 0, len(lines))
	for _, line := range EnrolledOnly(lines, enrolled) {
		if line.ImporterProductCode == "" {
			continue
		}
		product, ok := eligible[line.ImporterProductCode]
		if !ok {
			continue
		}
		out = append(out, turnovers.EnrichedLine{SalesLine: line, Product: product})
	}
	return out
}
