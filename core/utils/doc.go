// Package utils provides common helpers for loyalty-sync.
//
// Partner payloads are loosely typed (wholesaler ids arrive as numbers, numeric strings or
// not at all), so the conversion helpers accept all of them and never panic. Chunk and Unique
// support the bounded-batch calls to the partner API.
package utils
