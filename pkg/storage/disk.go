// Package storage stores uploaded product images on the local filesystem or
// an S3-compatible bucket (AWS S3, MinIO, R2, Spaces).
//
//	mgr, err := storage.Connect(ctx)
//	err = mgr.Default().Put(ctx, "products/abc.jpg", file, "image/jpeg")
//	url := mgr.Default().URL("products/abc.jpg")
package storage

import (
	"context"
	"io"
	"strings"
)

// Disk is the driver interface.
type Disk interface {
	// Put writes r to path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// KeyFor maps a URL produced by d.URL back to its key. ok is false for URLs
// that d did not produce.
func KeyFor(d Disk, url string) (key string, ok bool) {
	prefix := d.URL("")
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key = strings.TrimPrefix(url, prefix)
	return key, key != ""
}
