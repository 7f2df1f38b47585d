// Package store reads and writes raw wiki documents addressed by page id.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store resolves page ids to raw text.
type Store interface {
	// Raw returns the text of the page. A page that does not exist yields
	// an empty string and no error.
	Raw(ctx context.Context, id string) (string, error)
	// Save replaces the text of the page.
	Save(ctx context.Context, id string, text string) error
}

var (
	// ErrInvalidID is returned for page ids that cannot map to a file.
	ErrInvalidID = errors.New("invalid page id")
	// ErrReadOnly is returned by Save on a store without a writable root.
	ErrReadOnly = errors.New("store is read-only")
)

// FS is a [Store] over a file system. Page "ns:page" lives in
// "ns/page<ext>".
type FS struct {
	fsys fs.FS
	dir  string
	ext  string
}

// NewFS returns a read-only store over fsys.
func NewFS(fsys fs.FS, ext string) *FS {
	return &FS{fsys: fsys, ext: ext}
}

// NewDir returns a writable store rooted at dir.
func NewDir(dir string, ext string) *FS {
	return &FS{fsys: os.DirFS(dir), dir: dir, ext: ext}
}

// Path returns the slash-separated file path of a page.
func (s *FS) Path(id string) (string, error) {
	id = strings.Trim(strings.TrimSpace(id), ":")
	if len(id) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidID)
	}

	parts := strings.Split(id, ":")
	for _, part := range parts {
		switch {
		case len(part) == 0, part == ".", part == "..":
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		case strings.ContainsAny(part, `/\`):
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}

	name := path.Join(parts...) + s.ext
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return name, nil
}

func (s *FS) Raw(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := s.Path(id)
	if err != nil {
		return "", err
	}

	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read page %s: %w", id, err)
	}

	return string(data), nil
}

func (s *FS) Save(ctx context.Context, id string, text string) error {
	if len(s.dir) == 0 {
		return ErrReadOnly
	}

	name, err := s.Path(id)
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("create namespace: %w", err)
	}

	return WriteAtomic(ctx, target, []byte(text), 0)
}
