// Package storage uploads blobs to content-addressed storage and returns
// their gateway URLs (https://<gateway-host>/ipfs/<hash>).
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/albaranes/deliverynotes-api/internal/api/metrics"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

const (
	backendPinata = "pinata"
	backendS3     = "s3"
	backendCache  = "cache"
)

// GatewayURL builds the public URL of a blob.
func GatewayURL(host, hash string) string {
	return "https://" + host + "/ipfs/" + hash
}

// Digest is the hex sha256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func observe(backend string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.UploadsTotal.WithLabelValues(backend, result).Inc()
}

type timeoutUploader struct {
	next    ports.BlobUploader
	timeout time.Duration
}

// WithTimeout bounds every upload by d. A non-positive d returns next as is.
func WithTimeout(next ports.BlobUploader, d time.Duration) ports.BlobUploader {
	if d <= 0 {
		return next
	}
	return &timeoutUploader{next: next, timeout: d}
}

func (u *timeoutUploader) Upload(ctx context.Context, data []byte, name string) (*ports.UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	return u.next.Upload(ctx, data, name)
}
