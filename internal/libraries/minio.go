package libraries

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
	// PublicBaseURL is where the bucket is reachable from browsers and widgets
	PublicBaseURL string
}

// MinioStore is an ObjectStore backed by any S3 compatible server
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewMinioClient(cfg MinioConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio.New: %w", err)
	}
	return client, nil
}

// NewMinioStore connects and makes sure the bucket exists
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
	if err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
		log.Printf("Using existing bucket %s", cfg.Bucket)
	} else {
		log.Printf("Created bucket %s", cfg.Bucket)
	}

	return NewMinioStoreWithClient(client, cfg), nil
}

// NewMinioStoreWithClient wraps an existing client without touching the bucket
func NewMinioStoreWithClient(client *minio.Client, cfg MinioConfig) *MinioStore {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: base,
	}
}

func (s *MinioStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: snapshotCacheControl,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", path, err)
	}
	return s.PublicURL(path), nil
}

func (s *MinioStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, path)
}
