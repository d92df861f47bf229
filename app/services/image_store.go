package services

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// ProductImageDir is the disk folder holding product images.
const ProductImageDir = "images/products"

// ImageStore keeps product image files.
type ImageStore interface {
	// Store writes content under a new unique name ending in ext and
	// returns that name.
	Store(ctx context.Context, content []byte, ext string) (string, error)
	Delete(ctx context.Context, name string) error
}

// DiskImageStore keeps images on a storage.Disk.
type DiskImageStore struct {
	disk storage.Disk
}

func NewDiskImageStore(disk storage.Disk) *DiskImageStore {
	return &DiskImageStore{disk: disk}
}

func (s *DiskImageStore) Store(ctx context.Context, content []byte, ext string) (string, error) {
	name := uuid.NewString() + normalizeExt(ext)
	err := s.disk.Put(ctx, path.Join(ProductImageDir, name), content)
	observeImage("store", err)
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *DiskImageStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	err := s.disk.Delete(ctx, path.Join(ProductImageDir, path.Base(name)))
	observeImage("delete", err)
	return err
}

// URL returns the public address of an image name.
func (s *DiskImageStore) URL(name string) string {
	return s.disk.URL(path.Join(ProductImageDir, name))
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func observeImage(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ImageOperations.WithLabelValues(op, result).Inc()
}
