package libraries

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore is an ObjectStore backed by a Google Cloud Storage bucket
type GCSStore struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// NewGCSStore builds the client from base64 encoded service account JSON
func NewGCSStore(ctx context.Context, encodedCredentials, bucket, publicBaseURL string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket not set")
	}

	if encodedCredentials != "" {
		// decode JSON
		decoded, err := base64.StdEncoding.DecodeString(encodedCredentials)
		if err != nil {
			return nil, fmt.Errorf("failed to decode service account json: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	return &GCSStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = snapshotCacheControl

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", path, err)
	}
	return s.PublicURL(path), nil
}

// PublicURL is the URL the object is served from
func (s *GCSStore) PublicURL(path string) string {
	base := strings.TrimRight(s.publicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com/" + s.bucket
	}
	return base + "/" + path
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
