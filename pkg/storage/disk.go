// Package storage is the file-storage abstraction behind product images.
//
// Two drivers exist:
//   - "local": a directory on the local filesystem (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	storage.Connect()
//	storage.Default().Put(ctx, "images/products/a.png", data)
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get when nothing is stored at path.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is the driver interface. Paths are slash-separated and relative to
// the disk root.
type Disk interface {
	// Put writes content to path, replacing anything already there.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the content stored at path or ErrNotExist.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether something is stored at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes path. Deleting a missing path is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
