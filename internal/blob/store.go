// Package blob stores uploaded product images on local disk and hands out
// public URLs for them.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrInvalidName = errors.New("invalid blob name")

type Store interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

type LocalStore struct {
	Root    string // directory served under /blobs
	BaseURL string // public prefix, e.g. http://localhost:8080
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes r under name (a slash separated relative path) and returns the
// URL the file is reachable at. Existing files are overwritten.
func (s *LocalStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if name == "" || strings.HasPrefix(clean, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("could not create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("could not write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return s.BaseURL + "/blobs/" + clean, nil
}

// ProductImageName builds the object name used for product pictures:
// product_images/product_<unix ms>_<name with spaces as underscores>.jpg
func ProductImageName(productName string, now time.Time) string {
	safe := strings.Join(strings.Fields(productName), "_")
	safe = strings.NewReplacer("/", "_", "\\", "_").Replace(safe)
	if safe == "" {
		safe = "image"
	}
	return fmt.Sprintf("product_images/product_%d_%s.jpg", now.UnixMilli(), safe)
}
