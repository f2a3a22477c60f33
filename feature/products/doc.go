// Package products resolves article numbers to loyalty-eligible products.
//
// The partner accepts at most 300 article numbers per request, so FetchEligible chunks the
// input and sends the batches one after another (never in parallel, to respect the partner's
// rate limits). Only products the partner marks eligible are returned, enriched with their
// label, product group and point multiplier.
//
// A failing batch does not fail the lookup: its codes are reported in Result.FailedCodes and
// the lines using them simply earn nothing this run. Only when every batch fails does the
// lookup return apperr.ErrUpstream.
package products
