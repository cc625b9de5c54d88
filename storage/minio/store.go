package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/poiesic/lostvec/storage"
)

// DefaultBucket is the bucket holding lost-item images.
const DefaultBucket = "lost-items-images"

// DefaultMaxFetchBytes caps image downloads at 10 MiB; anything larger is
// reported as FetchTooLarge and the item is processed text-only.
const DefaultMaxFetchBytes = 10 << 20

// Store implements storage.Fetcher over a MinIO (or any S3-compatible)
// endpoint.
type Store struct {
	client   *minio.Client
	bucket   string
	maxBytes int64
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBucket overrides the default bucket name.
func WithBucket(bucket string) Option {
	return func(s *Store) {
		if bucket != "" {
			s.bucket = bucket
		}
	}
}

// WithMaxFetchBytes overrides the object size cap.
func WithMaxFetchBytes(max int64) Option {
	return func(s *Store) {
		if max > 0 {
			s.maxBytes = max
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates a MinIO-backed fetcher.
// endpoint is host:port without a scheme, e.g. "minio:9000".
func NewStore(endpoint, accessKey, secretKey string, useSSL bool, opts ...Option) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &Store{
		client:   client,
		bucket:   DefaultBucket,
		maxBytes: DefaultMaxFetchBytes,
		logger:   slog.Default().With("component", "minio-store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("object store initialized", "endpoint", endpoint, "bucket", s.bucket)
	return s, nil
}

// Fetch retrieves the object's bytes. A missing object or one over the size
// cap is reported in the FetchResult status; only transport faults return an
// error.
func (s *Store) Fetch(ctx context.Context, key string) (storage.FetchResult, error) {
	if key == "" {
		return storage.FetchResult{}, storage.ErrEmptyKey
	}

	// Size check first so oversized objects are never downloaded.
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return storage.FetchResult{Status: storage.FetchNotFound}, nil
		}
		return storage.FetchResult{}, fmt.Errorf("%w: stat %q: %v", storage.ErrBackendUnavailable, key, err)
	}
	if stat.Size > s.maxBytes {
		s.logger.Warn("object exceeds size cap", "key", key, "size", stat.Size, "cap", s.maxBytes)
		return storage.FetchResult{Status: storage.FetchTooLarge}, nil
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return storage.FetchResult{}, fmt.Errorf("%w: get %q: %v", storage.ErrBackendUnavailable, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, s.maxBytes))
	if err != nil {
		if isNotFound(err) {
			return storage.FetchResult{Status: storage.FetchNotFound}, nil
		}
		return storage.FetchResult{}, fmt.Errorf("%w: read %q: %v", storage.ErrBackendUnavailable, key, err)
	}

	s.logger.Debug("fetched object", "key", key, "bytes", len(data))
	return storage.FetchResult{Status: storage.FetchOK, Data: data}, nil
}

// isNotFound maps S3 error codes that mean "no such object" to FetchNotFound.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
