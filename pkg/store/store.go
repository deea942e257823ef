// Package store abstracts the artifact container the importers publish to:
// a local directory during development, an S3 bucket in production.
package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get for artifacts that were never published.
var ErrNotFound = errors.New("artifact not found")

// Store is one artifact container. Names are flat (no directories); the
// content type is advisory and only meaningful to backends that serve the
// artifacts over HTTP.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name, contentType string, data []byte) error
	List(ctx context.Context) ([]string, error)
}

// Dir is a local-directory Store.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d *Dir) Put(_ context.Context, name, _ string, data []byte) error {
	return os.WriteFile(filepath.Join(d.root, name), data, 0o644)
}

func (d *Dir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
