// Package customers keeps the local loyalty roster in step with the partner.
//
// # Remote Roster
//
// FetchEnrolled issues one authenticated GET to the partner. The payload is loosely typed:
// wholesaler ids may be numbers or numeric strings, and status, wholesaler id and wholesaler
// name may be missing. Values are coerced leniently and anything empty becomes NULL.
//
// # Local Cache
//
// The cache table (CustomersLoyalty by default) is insert-only. SyncNew computes
// remote − cache by customer id and inserts the difference in bulk. It must run before
// saleslines are fetched, because the salesline query joins against this table.
//
// # Usage
//
//	remote, err := registry.FetchEnrolled(ctx)
//	inserted, err := registry.SyncNew(ctx, remote)
package customers
