// Package saleslines reads yesterday's sales lines from the sales database.
//
// The source view (SaleslinesYesterday by default) already limits rows to yesterday; the
// repository joins it against the local loyalty customer cache so only enrolled customers'
// lines are returned. The cache must therefore be synced before fetching (see
// feature/customers).
//
// Every call opens its own connection through a database.Connector and closes it before
// returning. Connection problems surface as apperr.ErrConnection, query or schema problems as
// apperr.ErrQuery.
package saleslines
