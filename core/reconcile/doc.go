// Package reconcile sequences the loyalty components into runs.
//
// # Modes
//
//   - ModeReconcile: sync the customer cache, fetch yesterday's lines, keep enrolled customers
//     with eligible products, build turnovers and book them.
//   - ModeRetryFailed: read the failed-turnover queue, dedupe by Turnover.Key, clear the queue,
//     resubmit.
//   - ModeDiagnostic: the reconcile pipeline without cache writes or bookings. Optionally traces
//     one customer or queries eligibility for explicit product codes.
//
// # Filtering
//
// A line yields a turnover iff its customer account is in the roster fetched during the run and
// a product with ArticleNr equal to the line's ImporterProductCode was returned as eligible.
// Match is pure and can be tested without any collaborator.
//
// # Failures
//
// Errors before submission abort the run. During submission rejected batches are queued by the
// Booker and the run only fails when no batch was accepted, see ErrNothingSubmitted.
//
// # Usage
//
//	orch := reconcile.New(reconcile.Deps{
//	    Customers: registry,
//	    Sales:     repo,
//	    Products:  productClient,
//	    Booker:    submitter,
//	}, reconcile.Settings{Wholesaler: "W1", Country: "FI"}, log)
//
//	summary, err := orch.Run(ctx, reconcile.ModeReconcile)
package reconcile
