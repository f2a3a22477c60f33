// Package partner is the HTTP transport to the loyalty partner API.
//
// Every request carries basic auth credentials and the RequestKey header, sends and expects
// JSON, and is bounded by the configured timeout (60s by default). Requests are issued
// sequentially by the callers; an optional rate limiter paces them to the partner's limits.
//
// Any network failure, non-2xx status or undecodable body is returned as apperr.ErrUpstream,
// with the HTTP status attached when there was one. The client never retries, callers decide.
//
// Endpoint-specific payloads live with their features (feature/customers, feature/products,
// feature/turnovers).
package partner
