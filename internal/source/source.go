// Package source resolves named keypoint sources to raw bytes.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrNotFound is returned when no source matches a name.
var ErrNotFound = errors.New("source not found")

// Fetcher returns the raw payload of a named source.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Lister is implemented by fetchers that can enumerate their sources.
type Lister interface {
	Names() ([]string, error)
}

// Extensions tried, in order, when a name has no extension of its own.
var Extensions = []string{".json", ".csv"}

// FS serves sources from a file system, e.g. os.DirFS or an embed.FS.
type FS struct {
	fsys fs.FS
}

func NewFS(fsys fs.FS) *FS { return &FS{fsys: fsys} }

// NewDir serves sources from a directory on disk.
func NewDir(dir string) *FS { return &FS{fsys: os.DirFS(dir)} }

func (s *FS) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, name+ext)
		}
	}
	for _, c := range candidates {
		data, err := fs.ReadFile(s.fsys, c)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read source %q: %w", c, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names lists the supported files at the root, without extension, sorted.
func (s *FS) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if !supported(ext) {
			continue
		}
		n := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

func supported(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Memory is an in-memory source set keyed by name.
type Memory map[string][]byte

func (m Memory) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return data, nil
}

func (m Memory) Names() ([]string, error) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
