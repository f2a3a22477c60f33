// Package middleware contains HTTP middleware for the admin surface.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the failed-turnover endpoints.
//   - rayid: generates a request id, stores it in the fiber locals and echoes it in the
//     X-Ray-ID response header.
package middleware
