// Package queue implements the durable failed-turnover queue.
//
// The contract is deliberately small: Append, ReadAll, Clear. There is no per-entry removal
// and no transactional log. Two backends exist:
//
//   - FileQueue: a JSON array in a local file (default, tmp/failed_turnovers.json).
//   - ObjectQueue: a JSON array in one object of an S3/MinIO bucket.
//
// Every failure is returned as apperr.ErrQueue; losing failed turnovers silently is not
// acceptable, so callers treat queue errors as fatal.
//
// Queues are generic over the entry type so they carry no knowledge of turnovers.
//
//	q := queue.NewFileQueue[turnovers.Turnover]("tmp/failed_turnovers.json")
//	_ = q.Append(ctx, rejected)
package queue
