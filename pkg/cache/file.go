package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores entries as individual files in a flat directory, one
// per key. Expiration metadata rides in a fixed-size header so entries
// can be aged out without decoding the payload.
type FileCache struct {
	dir string
}

// entryExt marks cache entry files so Purge never touches foreign files.
const entryExt = ".tdc"

// headerSize is the fixed entry header: the expiration time as Unix
// nanoseconds, 0 meaning no expiration.
const headerSize = 8

// NewFileCache creates a file-based cache in the given directory,
// creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value, treating corrupt and expired entries as misses
// and removing them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerSize {
		_ = os.Remove(path)
		return nil, false, nil
	}

	expires := int64(binary.BigEndian.Uint64(raw[:headerSize]))
	if expires != 0 && time.Now().UnixNano() > expires {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return raw[headerSize:], true, nil
}

// Set stores a value. A zero ttl means no expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}

	raw := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint64(raw[:headerSize], uint64(expires))
	copy(raw[headerSize:], data)

	return os.WriteFile(c.path(key), raw, 0644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Purge removes every cache entry in the directory and returns how many
// were dropped. Files without the entry extension are left alone.
func (c *FileCache) Purge() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error { return nil }

// path converts a cache key to a file path. Keys are hashed so arbitrary
// key content maps to safe file names.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, Hash([]byte(key))+entryExt)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
