// Package apperr defines the error taxonomy shared by every loyalty-sync component.
//
// # Kinds
//
//   - ErrConfiguration: missing/invalid settings. Fatal, raised before any network or DB call.
//   - ErrConnection: the sales database is unreachable. Fatal for the run.
//   - ErrQuery: malformed query or schema drift. Fatal for the run.
//   - ErrUpstream: partner API non-2xx or network failure. Fatal for customer and product
//     fetches, isolated per batch during turnover submission.
//   - ErrQueue: failed-turnover queue read/write failure. Always fatal, failed turnovers must
//     never be dropped silently.
//
// # Usage
//
//	if err := repo.FetchYesterday(ctx); errors.Is(err, apperr.ErrConnection) {
//	    // abort run
//	}
package apperr
