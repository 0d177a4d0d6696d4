package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"achievement-tracker/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/natefinch/atomic"
)

// Sink stores exported documents.
type Sink interface {
	// Write stores data under name and returns where it went.
	Write(ctx context.Context, name string, data []byte) (string, error)
	// List returns the names of stored documents in lexical order.
	List(ctx context.Context) ([]string, error)
}

// FileSink writes documents into a local directory.
type FileSink struct {
	Dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (s *FileSink) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// BucketSink uploads documents to an object storage bucket.
type BucketSink struct {
	client storage.Client
	bucket string
	region string
}

// NewBucketSink creates a BucketSink.
func NewBucketSink(client storage.Client, bucket, region string) *BucketSink {
	return &BucketSink{client: client, bucket: bucket, region: region}
}

func (s *BucketSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return s.bucket + "/" + name, nil
}

func (s *BucketSink) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.bucket, obj.Err)
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)
	return names, nil
}
