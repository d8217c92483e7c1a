package store

import (
	"context"
	"crypto/sha1" //nolint:gosec // content-addressing, not a security boundary
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/cuemby/snapvault/pkg/key"
)

// Cache is an optional local-disk pass-through in front of a Store's
// Get. It must only ever be consulted for immutable-by-hash objects
// (.pack and .index bodies); listing is never cached and always goes
// straight to the wrapped Store.
type Cache struct {
	dir      string
	upstream Store
	onHit    func()
	onMiss   func()
}

// NewCache wraps upstream with a disk cache rooted at dir. onHit and
// onMiss, if non-nil, are invoked once per cached-key Get that hits or
// misses the cache (the CLI passes pkg/metrics.Collectors'
// RecordCacheHit/RecordCacheMiss; nil is fine for unmonitored use).
func NewCache(dir string, upstream Store, onHit, onMiss func()) *Cache {
	return &Cache{dir: dir, upstream: upstream, onHit: onHit, onMiss: onMiss}
}

// ListContents is never served from cache; it always delegates.
func (c *Cache) ListContents(ctx context.Context, prefix key.Key, flags ListFlags) ([]Object, error) {
	return c.upstream.ListContents(ctx, prefix, flags)
}

func (c *Cache) cachePath(k key.Key) string {
	sum := sha1.Sum([]byte(k.String())) //nolint:gosec
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Get returns the cached body for k if present, else fetches it from
// upstream and writes it to the cache via a temp-file-then-rename,
// which is atomic on POSIX filesystems: concurrent writers either see
// a complete file or none at all, and a loser's temp file is simply
// overwritten or ignored. Keys not ending in ".pack" or ".index" bypass
// the cache and are fetched from upstream every time.
func (c *Cache) Get(ctx context.Context, k key.Key) ([]byte, error) {
	if !k.HasSuffix(".pack") && !k.HasSuffix(".index") {
		return c.upstream.Get(ctx, k)
	}
	path := c.cachePath(k)
	if data, err := os.ReadFile(path); err == nil {
		c.hit()
		return data, nil
	}

	c.miss()
	data, err := c.upstream.Get(ctx, k)
	if err != nil {
		return nil, err
	}

	if err := c.write(path, data); err != nil {
		// A cache-write failure must not fail the read: the fetched
		// data is still valid, only the opportunistic cache is stale.
		return data, nil
	}
	return data, nil
}

func (c *Cache) write(path string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func (c *Cache) hit() {
	if c.onHit != nil {
		c.onHit()
	}
}

func (c *Cache) miss() {
	if c.onMiss != nil {
		c.onMiss()
	}
}
