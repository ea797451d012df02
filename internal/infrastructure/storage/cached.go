package storage

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// ResultCache abstracts the upload result store (Redis).
type ResultCache interface {
	Get(ctx context.Context, digest string) (*ports.UploadResult, bool, error)
	Set(ctx context.Context, digest string, res *ports.UploadResult) error
}

// CachedUploader skips the upload when identical bytes were uploaded before,
// so a retried signing step reuses the blob it already created.
type CachedUploader struct {
	next  ports.BlobUploader
	cache ResultCache
	log   zerolog.Logger
}

func NewCachedUploader(next ports.BlobUploader, cache ResultCache, log zerolog.Logger) *CachedUploader {
	return &CachedUploader{next: next, cache: cache, log: log}
}

// Upload consults the cache first. Cache failures are logged and never fail
// the upload.
func (u *CachedUploader) Upload(ctx context.Context, data []byte, name string) (*ports.UploadResult, error) {
	digest := Digest(data)

	res, ok, err := u.cache.Get(ctx, digest)
	if err != nil {
		u.log.Warn().Err(err).Str("name", name).Msg("upload cache lookup failed, uploading anyway")
	} else if ok {
		observe(backendCache, nil)
		u.log.Debug().Str("name", name).Str("hash", res.ContentHash).Msg("upload served from cache")
		return res, nil
	}

	res, err = u.next.Upload(ctx, data, name)
	if err != nil {
		return nil, err
	}

	if err := u.cache.Set(ctx, digest, res); err != nil {
		u.log.Warn().Err(err).Str("name", name).Msg("failed to cache upload result")
	}
	return res, nil
}
