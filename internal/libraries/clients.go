package libraries

import (
	"context"
	"fmt"
	"freeform-backend/internal/config"
	"log"

	"github.com/redis/go-redis/v9"
)

// Clients holds the external services the server talks to.
// ObjectStore and Redis are nil when not configured.
type Clients struct {
	ObjectStore ObjectStore
	Redis       *redis.Client
	gcs         *GCSStore
}

func NewClients(ctx context.Context, cfg config.Config) (*Clients, error) {
	c := &Clients{}

	switch cfg.ObjectStore {
	case "gcs":
		store, err := NewGCSStore(ctx, cfg.GCSCredentials, cfg.GCSBucket, cfg.GCSPublicBaseURL)
		if err != nil {
			return nil, err
		}
		c.gcs = store
		c.ObjectStore = store
	case "minio":
		store, err := NewMinioStore(ctx, MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKeyID,
			SecretAccessKey: cfg.MinioSecretKey,
			UseSSL:          cfg.MinioUseSSL,
			Region:          cfg.MinioRegion,
			Bucket:          cfg.MinioBucket,
			PublicBaseURL:   cfg.MinioPublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		c.ObjectStore = store
	case "", "none":
		log.Println("Warning: no object store configured, snapshot image uploads are disabled")
	default:
		return nil, fmt.Errorf("unknown object store %q", cfg.ObjectStore)
	}

	if cfg.RedisURL != "" {
		rdb, err := NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Redis = rdb
	} else {
		log.Println("Warning: REDIS_URL not set, sign-out will not revoke sessions")
	}

	return c, nil
}

func (c *Clients) Close() {
	if c.gcs != nil {
		c.gcs.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
}
