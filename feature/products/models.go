package products

import (
	"loyalty-sync/core/utils"

	"github.com/shopspring/decimal"
)

// Product is the partner's view of one article: whether it earns points and how many.
type Product struct {
	ArticleNr       string          `json:"articleNr"`
	Label           string          `json:"label,omitempty"`
	ProductGroup    string          `json:"productGroup,omitempty"`
	PointMultiplier decimal.Decimal `json:"pointMultiplier"`
}

// eligibilityRequest is the body of one batched lookup.
type eligibilityRequest struct {
	Country        string   `json:"country"`
	ArticleNumbers []string `json:"articleNumbers"`
}

type eligibilityItem struct {
	ArticleNr       string              `json:"articleNr"`
	Label           string              `json:"label"`
	ProductGroup    string              `json:"productGroup"`
	PointMultiplier decimal.NullDecimal `json:"pointMultiplier"`
	// Eligible arrives as a bool, 0/1 or a "true"/"false" string depending on the partner release.
	Eligible any `json:"eligible"`
}

type eligibilityResponse struct {
	Products []eligibilityItem `json:"products"`
}

// eligible treats a missing flag as eligible: the partner only lists articles it knows.
func (i eligibilityItem) eligible() bool {
	if i.ArticleNr == "" {
		return false
	}
	return i.Eligible == nil || utils.ToBool(i.Eligible)
}

func (i eligibilityItem) toProduct() Product {
	multiplier := decimal.NewFromInt(1)
	if i.PointMultiplier.Valid && i.PointMultiplier.Decimal.IsPositive() {
		multiplier = i.PointMultiplier.Decimal
	}
	return Product{
		ArticleNr:       i.ArticleNr,
		Label:           i.Label,
		ProductGroup:    i.ProductGroup,
		PointMultiplier: multiplier,
	}
}

// Index maps products by article number.
func Index(products []Product) map[string]Product {
	idx := make(map[string]Product, len(products))
	for _, p := range products {
		if _, ok := idx[p.ArticleNr]; !ok {
			idx[p.ArticleNr] = p
		}
	}
	return idx
}
