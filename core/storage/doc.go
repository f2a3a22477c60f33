// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client (S3 compatible) behind the small Client interface needed by the
// object-storage backend of the failed-turnover queue. Keeping the queue in a bucket instead of
// a local file lets the batch job run on ephemeral hosts.
//
// The Client interface makes storage interactions easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, "failed/turnovers.json", minio.GetObjectOptions{})
package storage
