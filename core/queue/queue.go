package queue

import (
	"context"
	"fmt"

	"loyalty-sync/core/storage"
)

// Queue is a durable append / read-all / clear-all store.
// It is not a transactional log: entries are never removed one by one.
type Queue[T any] interface {
	// Append adds items after the existing entries.
	Append(ctx context.Context, items []T) error
	// ReadAll returns every entry in insertion order. An empty queue returns no error.
	ReadAll(ctx context.Context) ([]T, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// Drain removes every entry and returns what was removed, as one step.
	// An Append racing a Drain lands either in the result or in the emptied queue.
	Drain(ctx context.Context) ([]T, error)
}

// Open builds the queue backend selected by cfg.
// The storage client is only needed (and only created) for the storage backend.
func Open[T any](cfg Config, storageCfg storage.Config) (Queue[T], error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileQueue[T](cfg.Path), nil
	case BackendStorage:
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, err
		}
		q := NewObjectQueue[T](client, storageCfg.Bucket, cfg.Object)
		q.region = storageCfg.Region
		return q, nil
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}

// Prepare readies backends that need setup before first use, such as a missing bucket.
func Prepare[T any](ctx context.Context, q Queue[T]) error {
	if p, ok := q.(interface{ Prepare(context.Context) error }); ok {
		return p.Prepare(ctx)
	}
	return nil
}
