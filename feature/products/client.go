package products

import (
	"context"
	"errors"
	"fmt"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/utils"

	"go.uber.org/zap"
)

// EligibilityPath is the partner endpoint resolving article numbers to loyalty products.
const EligibilityPath = "/masterdata/productgroups/get"

// DefaultBatchSize keeps each request under the partner's request-size limit.
const DefaultBatchSize = 300

// Poster is the part of the partner client the product lookup needs.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Result is the outcome of one eligibility lookup.
type Result struct {
	// Products holds the eligible products, one per article number.
	Products []Product
	// Requests is the number of batches sent.
	Requests int
	// FailedBatches is the number of batches the partner rejected.
	FailedBatches int
	// FailedCodes lists the article numbers of rejected batches.
	FailedCodes []string
}

// Client looks up product eligibility in bounded batches.
type Client struct {
	api       Poster
	batchSize int
	logger    *zap.Logger
}

// NewClient creates a lookup client. A non-positive batchSize selects DefaultBatchSize.
func NewClient(api Poster, batchSize int, logger *zap.Logger) *Client {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Client{api: api, batchSize: batchSize, logger: logger}
}

// FetchEligible returns the eligible subset of codes for country.
//
// Empty and repeated codes are dropped before batching, so the number of requests is
// ceil(unique codes / batch size), not ceil(len(codes) / batch size). Batches are sent
// sequentially. A rejected
// batch is logged and recorded in the result, the remaining batches still run. The call fails
// with apperr.ErrUpstream only when every batch failed, or immediately when ctx is done.
func (c *Client) FetchEligible(ctx context.Context, codes []string, country string) (*Result, error) {
	unique := make([]string, 0, len(codes))
	for _, code := range utils.Unique(codes) {
		if code != "" {
			unique = append(unique, code)
		}
	}

	result := &Result{Products: []Product{}}
	seen := make(map[string]struct{})
	var errs []error

	for i, batch := range utils.Chunk(unique, c.batchSize) {
		result.Requests++

		var resp eligibilityResponse
		err := c.api.Post(ctx, EligibilityPath, eligibilityRequest{Country: country, ArticleNumbers: batch}, &resp)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, apperr.Upstream("fetch eligible products", 0, ctxErr)
			}
			c.logger.Warn("Product eligibility batch failed",
				zap.Int("batch", i+1),
				zap.Int("codes", len(batch)),
				zap.Int("status", apperr.StatusOf(err)),
				zap.Error(err),
			)
			result.FailedBatches++
			result.FailedCodes = append(result.FailedCodes, batch...)
			errs = append(errs, fmt.Errorf("batch %d: %w", i+1, err))
			continue
		}

		for _, item := range resp.Products {
			if !item.eligible() {
				continue
			}
			if _, dup := seen[item.ArticleNr]; dup {
				continue
			}
			seen[item.ArticleNr] = struct{}{}
			result.Products = append(result.Products, item.toProduct())
		}
	}

	if result.Requests > 0 && result.FailedBatches == result.Requests {
		return result, apperr.Upstream("fetch eligible products", 0, errors.Join(errs...))
	}

	c.logger.Debug("Fetched eligible products",
		zap.Int("codes", len(unique)),
		zap.Int("eligible", len(result.Products)),
		zap.Int("requests", result.Requests),
		zap.Int("failed_batches", result.FailedBatches),
	)
	return result, nil
}
