package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reactorwatch/psrscan/internal/model"
)

// Cache is an on-disk store of raw page HTML keyed by report date.
// Entries are written once on first fetch and never mutated; the whole
// directory may be deleted at any time with no effect on correctness
// beyond forcing a re-fetch.
type Cache struct {
	// dir is the cache directory. Created lazily on first Put.
	dir string
}

// NewCache creates a Cache rooted at the given directory.
// The directory does not need to exist yet.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the cache file path for a report date.
func (c *Cache) Path(date time.Time) string {
	return filepath.Join(c.dir, model.DateKey(date)+".html")
}

// Get returns the cached HTML for a date and whether an entry exists.
// A missing entry is not an error; any other read failure is.
func (c *Cache) Get(date time.Time) (string, bool, error) {
	data, err := os.ReadFile(c.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return string(data), true, nil
}

// Put stores the HTML for a date, creating the cache directory if needed.
func (c *Cache) Put(date time.Time, html string) error {
	if err := os.MkdirAll(c.dir, 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.Path(date), []byte(html), 0600); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
