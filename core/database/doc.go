// Package database handles connections to the sales database and schema inspection.
//
// It wraps GORM so the rest of the application never builds DSNs by hand. Three drivers are
// supported: SQL Server (the production sales system), MySQL, and SQLite (local testing).
//
// # Scoped Connections
//
// Connections are never pooled across a run. A Connector opens a dedicated handle per call;
// the caller releases it with Close on every exit path:
//
//	db, err := connector.Open(ctx)
//	if err != nil {
//	    return err // apperr.ErrConnection
//	}
//	defer database.Close(db)
//
// Connect pings with the configured timeout (60s by default) and reports failures as
// apperr.ErrConnection.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns inspect a table or view so diagnostic runs can report
// schema drift before a query fails.
package database
