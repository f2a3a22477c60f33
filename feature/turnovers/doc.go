// Package turnovers builds loyalty turnovers and books them with the partner.
//
// # Building
//
// Build is a pure mapping from matched sales lines to partner turnovers. The booked amount is
// the line amount times the product's point multiplier, rounded to cents.
//
// # Submitting
//
// Submitter splits turnovers into batches of the configured size and books them one batch at a
// time. Failure is isolated per batch: a rejected batch is appended to the durable failed
// queue (core/queue) and the run continues with the next batch.
//
// # Retrying
//
// The retry flow reads the failed queue, removes duplicates by Turnover.Key, clears the queue
// and only then resubmits. New rejections during the retry therefore land in an empty queue
// instead of being merged with stale entries.
package turnovers
