package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type countingUploader struct {
	calls int
	err   error
}

func (u *countingUploader) Upload(ctx context.Context, data []byte, name string) (*ports.UploadResult, error) {
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash := Digest(data)
	return &ports.UploadResult{ContentHash: hash, GatewayURL: GatewayURL("gw.test", hash)}, nil
}

type mapCache struct {
	entries map[string]*ports.UploadResult
	getErr  error
	setErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*ports.UploadResult{}}
}

func (c *mapCache) Get(_ context.Context, digest string) (*ports.UploadResult, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	res, ok := c.entries[digest]
	return res, ok, nil
}

func (c *mapCache) Set(_ context.Context, digest string, res *ports.UploadResult) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[digest] = res
	return nil
}

func TestCachedUploader_ReusesIdenticalBytes(t *testing.T) {
	next := &countingUploader{}
	cache := newMapCache()
	u := NewCachedUploader(next, cache, zerolog.Nop())

	first, err := u.Upload(context.Background(), []byte("same"), "a.png")
	require.NoError(t, err)
	second, err := u.Upload(context.Background(), []byte("same"), "b.png")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Contains(t, cache.entries, Digest([]byte("same")))

	_, err = u.Upload(context.Background(), []byte("other"), "c.png")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedUploader_CacheFailuresDoNotFailUpload(t *testing.T) {
	next := &countingUploader{}
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	u := NewCachedUploader(next, cache, zerolog.Nop())

	res, err := u.Upload(context.Background(), []byte("x"), "x.png")
	require.NoError(t, err)
	assert.NotEmpty(t, res.GatewayURL)
	assert.Equal(t, 1, next.calls)
}

func TestCachedUploader_UploadErrorNotCached(t *testing.T) {
	next := &countingUploader{err: errors.New("boom")}
	cache := newMapCache()
	u := NewCachedUploader(next, cache, zerolog.Nop())

	_, err := u.Upload(context.Background(), []byte("x"), "x.png")
	require.Error(t, err)
	assert.Empty(t, cache.entries)
}

type slowUploader struct{}

func (slowUploader) Upload(ctx context.Context, _ []byte, _ string) (*ports.UploadResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	u := WithTimeout(slowUploader{}, 10*time.Millisecond)
	_, err := u.Upload(context.Background(), []byte("x"), "x.png")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	next := &countingUploader{}
	assert.Same(t, next, WithTimeout(next, 0))
}
