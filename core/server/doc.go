// Package server holds the configuration of the admin HTTP surface.
//
// The admin surface (see feature/admin and the serve command) exposes the failed-turnover
// queue for inspection, clearing and retry. It refuses to start without an API key.
package server
