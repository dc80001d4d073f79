// Package nocaptions remembers videos that have no captions so they are not
// fetched again on later runs.
package nocaptions

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache is a set of video ids backed by a text file, one id per line. The file
// is read once by Open and only ever appended to afterwards.
type Cache struct {
	path string
	ids  map[string]struct{}
}

// Open loads the cache at path. A missing file is an empty cache.
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, ids: map[string]struct{}{}}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("open no-captions cache: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if id := strings.TrimSpace(sc.Text()); id != "" {
			c.ids[id] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read no-captions cache: %w", err)
	}
	return c, nil
}

func (c *Cache) Has(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Add records id and appends it to the file. Known ids are not written twice.
func (c *Cache) Add(id string) error {
	if c.Has(id) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("mkdir no-captions cache: %w", err)
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open no-captions cache: %w", err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append no-captions cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close no-captions cache: %w", err)
	}
	c.ids[id] = struct{}{}
	return nil
}

func (c *Cache) Len() int { return len(c.ids) }
