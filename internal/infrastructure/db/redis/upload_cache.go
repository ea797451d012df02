package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

const defaultCacheTTL = 24 * time.Hour

// UploadCache remembers the content address of blobs already uploaded.
// Key format: upload:<sha256 of the bytes>
type UploadCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewUploadCache wraps the given Redis client. A non-positive ttl falls back
// to defaultCacheTTL.
func NewUploadCache(client redis.Cmdable, ttl time.Duration) *UploadCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UploadCache{client: client, ttl: ttl}
}

// Get returns the cached result for digest, or ok=false on a miss.
func (c *UploadCache) Get(ctx context.Context, digest string) (*ports.UploadResult, bool, error) {
	raw, err := c.client.Get(ctx, c.key(digest)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("upload cache get: %w", err)
	}

	var res ports.UploadResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("upload cache decode: %w", err)
	}
	return &res, true, nil
}

// Set records res for digest (expires after ttl).
func (c *UploadCache) Set(ctx context.Context, digest string, res *ports.UploadResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("upload cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(digest), raw, c.ttl).Err()
}

func (c *UploadCache) key(digest string) string {
	return "upload:" + digest
}
