package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores attachments as files under a local directory. The API server
// publishes that directory read-only under the public base path, so
// PublicURL(key) resolves to a plain static-file URL.
type Disk struct {
	root       string
	publicBase string
}

// NewDisk creates the root directory if needed. publicBase is the URL prefix
// files are served under, e.g. "/uploads/".
func NewDisk(root, publicBase string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	if !strings.HasSuffix(publicBase, "/") {
		publicBase += "/"
	}
	return &Disk{root: root, publicBase: publicBase}, nil
}

// Root returns the directory files are stored in, for the static file server.
func (d *Disk) Root() string {
	return d.root
}

func (d *Disk) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write object file: %w", err)
	}

	return nil
}

func (d *Disk) PublicURL(key string) string {
	return d.publicBase + key
}

func (d *Disk) Remove(ctx context.Context, key string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove object file: %w", err)
	}
	return nil
}

func (d *Disk) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

// path resolves a key inside the root. Keys are flat names; anything with a
// path separator could escape the root and is rejected.
func (d *Disk) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(d.root, key), nil
}
