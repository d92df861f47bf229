package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalDisk stores files below a root directory.
type LocalDisk struct {
	root    string
	baseURL string
}

// NewLocalDisk roots a disk at dir (made absolute against the working
// directory) and serves public URLs under baseURL.
func NewLocalDisk(dir, baseURL string) *LocalDisk {
	if !filepath.IsAbs(dir) {
		cwd, _ := os.Getwd()
		dir = filepath.Join(cwd, dir)
	}
	return &LocalDisk{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// abs maps a disk path into root. Cleaning against "/" first keeps ".."
// segments from escaping the root.
func (d *LocalDisk) abs(p string) string {
	clean := path.Clean("/" + p)
	return filepath.Join(d.root, filepath.FromSlash(clean))
}

func (d *LocalDisk) Put(_ context.Context, p string, content []byte) error {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: close %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage/local: rename %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *LocalDisk) Exists(_ context.Context, p string) bool {
	_, err := os.Stat(d.abs(p))
	return err == nil
}

func (d *LocalDisk) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(p, "/")
}

// FileServer serves the disk contents read-only, for mounting under the
// URL prefix passed to NewLocalDisk.
func (d *LocalDisk) FileServer() http.Handler {
	return http.FileServer(http.Dir(d.root))
}
