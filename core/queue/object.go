package queue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// ObjectQueue keeps entries as a JSON array in a single bucket object.
type ObjectQueue[T any] struct {
	client storage.Client
	bucket string
	object string
	region string
	mu     sync.Mutex
}

// NewObjectQueue returns a queue stored at bucket/object.
func NewObjectQueue[T any](client storage.Client, bucket, object string) *ObjectQueue[T] {
	return &ObjectQueue[T]{client: client, bucket: bucket, object: object}
}

// Prepare creates the bucket when it does not exist yet.
func (q *ObjectQueue[T]) Prepare(ctx context.Context) error {
	exists, err := q.client.BucketExists(ctx, q.bucket)
	if err != nil {
		return apperr.Queue("check queue bucket", err)
	}
	if exists {
		return nil
	}
	if err := q.client.MakeBucket(ctx, q.bucket, minio.MakeBucketOptions{Region: q.region}); err != nil {
		return apperr.Queue("create queue bucket", err)
	}
	return nil
}

// Append adds items to the end of the queue.
func (q *ObjectQueue[T]) Append(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	existing, err := q.read(ctx)
	if err != nil {
		return apperr.Queue("append failed turnovers", err)
	}
	if err := q.write(ctx, append(existing, items...)); err != nil {
		return apperr.Queue("append failed turnovers", err)
	}
	return nil
}

// ReadAll returns every entry. A missing object is an empty queue.
func (q *ObjectQueue[T]) ReadAll(ctx context.Context) ([]T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.read(ctx)
	if err != nil {
		return nil, apperr.Queue("read failed turnovers", err)
	}
	return items, nil
}

// Clear removes the queue object.
func (q *ObjectQueue[T]) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.client.RemoveObject(ctx, q.bucket, q.object, minio.RemoveObjectOptions{})
	if err != nil && !storage.IsNotFound(err) {
		return apperr.Queue("clear failed turnovers", err)
	}
	return nil
}

// Drain removes the queue object and returns the entries it held.
func (q *ObjectQueue[T]) Drain(ctx context.Context) ([]T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.read(ctx)
	if err != nil {
		return nil, apperr.Queue("drain failed turnovers", err)
	}
	if len(items) == 0 {
		return items, nil
	}
	err = q.client.RemoveObject(ctx, q.bucket, q.object, minio.RemoveObjectOptions{})
	if err != nil && !storage.IsNotFound(err) {
		return nil, apperr.Queue("drain failed turnovers", err)
	}
	return items, nil
}

func (q *ObjectQueue[T]) read(ctx context.Context) ([]T, error) {
	// GetObject is lazy, stat first so a missing queue is not an error
	if _, err := q.client.StatObject(ctx, q.bucket, q.object, minio.StatObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("stat %s/%s: %w", q.bucket, q.object, err)
	}

	reader, err := q.client.GetObject(ctx, q.bucket, q.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", q.bucket, q.object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", q.bucket, q.object, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", q.bucket, q.object, err)
	}
	return items, nil
}

func (q *ObjectQueue[T]) write(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	_, err = q.client.PutObject(
		ctx,
		q.bucket,
		q.object,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", q.bucket, q.object, err)
	}
	return nil
}
