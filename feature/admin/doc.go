// Package admin exposes the failed-turnover queue over HTTP.
//
// # Endpoints
//
//   - GET /health: database and queue checks, 503 when one fails.
//   - GET /failed-turnovers: queued turnovers as JSON, or xlsx with ?format=xlsx.
//   - DELETE /failed-turnovers: drop every queued turnover.
//   - POST /failed-turnovers/retry: run the retry flow and return its summary.
//
// Everything except /health requires the X-API-Key header (core/middleware/auth).
package admin
