// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so catalog exports can be written to AWS S3 or
// a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface exposes only the operations exports need, which keeps
// it easy to mock in tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket before the first upload.
//   - PutObject: uploads an export.
//   - ListObjects: lists previous exports under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
