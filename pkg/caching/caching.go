// Package caching keeps downloaded boundary files on disk so each map is fetched once.
package caching

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dtnitsch/cohortviz/pkg/storage"
)

// Cache is a directory of files keyed by URL.
// A maxAge of zero means entries never expire.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// NewCache creates dir if needed.
func NewCache(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, maxAge: maxAge}, nil
}

// key names the file for rawURL: a SHA-256 prefix plus the URL's extension.
func (c *Cache) key(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	ext := ".bin"
	if u, err := url.Parse(rawURL); err == nil && path.Ext(u.Path) != "" {
		ext = path.Ext(u.Path)
	}
	return hex.EncodeToString(sum[:16]) + ext
}

func (c *Cache) file(rawURL string) string {
	return filepath.Join(c.dir, c.key(rawURL))
}

// Age reports how long ago rawURL was stored, and false if it is not cached.
func (c *Cache) Age(rawURL string) (time.Duration, bool) {
	stats, err := storage.GetFileStats(c.file(rawURL))
	if err != nil {
		return 0, false
	}
	return time.Since(stats.ModTime), true
}

// Get returns the cached body of rawURL if it is present and fresh.
func (c *Cache) Get(rawURL string) ([]byte, bool) {
	age, ok := c.Age(rawURL)
	if !ok || (c.maxAge > 0 && age > c.maxAge) {
		return nil, false
	}

	data, err := os.ReadFile(c.file(rawURL))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for rawURL, replacing any previous entry.
func (c *Cache) Set(rawURL string, data []byte) error {
	if err := storage.SaveFile(c.file(rawURL), data); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
