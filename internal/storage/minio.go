package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignCacheSize = 1024

// MinioOptions configures NewMinioStorage.
type MinioOptions struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string // browser-accessible base URL of the bucket
	UseSSL     bool
	Region     string
	// PresignExpiry > 0 makes Resolve hand out presigned GET URLs instead of
	// public ones and keeps the bucket private.
	PresignExpiry time.Duration
}

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
type MinioStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
	expiry     time.Duration
	presigned  *lru.LRU[string, string]
	logger     *log.Logger
}

// NewMinioStorage creates a MinIO client, ensures the bucket exists (public-read
// unless presigning is enabled), and returns a ready-to-use MinioStorage.
func NewMinioStorage(ctx context.Context, opts MinioOptions, logger *log.Logger) (*MinioStorage, error) {
	client, err := newMinioClient(opts)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", opts.Bucket, err)
		}
		logger.Info("storage: created bucket", "bucket", opts.Bucket)
	}

	if opts.PresignExpiry == 0 {
		if err := client.SetBucketPolicy(ctx, opts.Bucket, publicReadPolicy(opts.Bucket)); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}

	return newMinioStorage(client, opts, logger), nil
}

func newMinioClient(opts MinioOptions) (*minio.Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

func newMinioStorage(client *minio.Client, opts MinioOptions, logger *log.Logger) *MinioStorage {
	s := &MinioStorage{
		client:     client,
		bucket:     opts.Bucket,
		publicBase: opts.PublicBase,
		expiry:     opts.PresignExpiry,
		logger:     logger,
	}
	if opts.PresignExpiry > 0 {
		// Entries expire at half the URL lifetime so a cached URL is never stale.
		s.presigned = lru.NewLRU[string, string](presignCacheSize, nil, opts.PresignExpiry/2)
	}
	return s
}

// Put streams reader to MinIO under key. size must be the exact byte count
// (pass -1 only if the size is genuinely unknown; MinIO will buffer it).
// The existence check for overwrite=false is not atomic with the write.
func (s *MinioStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, overwrite bool) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	if !overwrite {
		_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		switch {
		case err == nil:
			return "", fmt.Errorf("put object %q: %w", key, ErrObjectExists)
		case minio.ToErrorResponse(err).Code != "NoSuchKey":
			return "", fmt.Errorf("stat object %q: %w", key, err)
		}
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	if s.presigned != nil {
		s.presigned.Remove(key)
	}
	return key, nil
}

// Resolve returns the browser-accessible URL for key. With presigning enabled
// it returns a cached presigned GET URL, falling back to the public URL if
// signing fails.
func (s *MinioStorage) Resolve(ctx context.Context, key string) string {
	if s.presigned == nil {
		return joinURL(s.publicBase, key)
	}
	if u, ok := s.presigned.Get(key); ok {
		return u
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		s.logger.Warn("storage: presign failed, using public url", "key", key, "err", err)
		return joinURL(s.publicBase, key)
	}
	signed := u.String()
	s.presigned.Add(key, signed)
	return signed
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
