// Package storage implements the image store for menu item pictures: files
// on local disk, addressed by the URL they are served under.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskImageStore writes images under dir/menus and returns URLs below
// baseURL/uploads/menus/.
type DiskImageStore struct {
	dir     string
	baseURL string
}

// NewDiskImageStore creates the store and its menus directory
func NewDiskImageStore(dir, baseURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "menus"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &DiskImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put stores the image bytes under a fresh name and returns its URL
func (s *DiskImageStore) Put(data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, "menus", name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return s.baseURL + "/uploads/menus/" + name, nil
}

// Delete removes the file a URL points at. Unknown URLs and already-missing
// files are not errors.
func (s *DiskImageStore) Delete(url string) error {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, "menus", name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
