// Package lookup implements the cached content-lookup client.
//
// It resolves a (title, kind) pair to the best-matching catalog item, caching
// aggressively so repeat lookups during a browsing session never hit the
// backend twice, and exposes the stale-URL refresh helper playback relies on.
package lookup

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData defines the structured format for persisting cached lookup records to disk.
type cacheData[K comparable, T any] struct {
	Items map[K]T `json:"items"`
}

// cacher provides a generic, thread-safe wrapper for high-level caching operations.
type cacher[K comparable, T any] struct {
	internal   *gache.Cache[*cacheData[K, T]]
	keyWrapper func(K) K
	mu         sync.RWMutex
}

// Get retrieves a value from the cache associated with the specified key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	item, ok := data.Items[c.keyWrapper(key)]
	if ok {
		return mo.Some(item)
	}

	return mo.None[T]()
}

// Set persists a key-value pair to the cache.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Items[c.keyWrapper(key)] = t
		return c.internal.Set(data)
	}

	internal := &cacheData[K, T]{Items: make(map[K]T)}
	internal.Items[c.keyWrapper(key)] = t
	return c.internal.Set(internal)
}

// Delete removes the entry associated with the specified key from the cache.
func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		delete(data.Items, c.keyWrapper(key))
		return c.internal.Set(data)
	}

	return nil
}

func newCacher[K comparable, T any](file string, lifetime time.Duration, keyWrapper func(K) K) *cacher[K, T] {
	opts := &gache.Options{
		Path:       filepath.Join(where.Cache(), file),
		FileSystem: &filesystem.GacheFs{},
	}
	if lifetime > 0 {
		opts.Lifetime = lifetime
	}
	if keyWrapper == nil {
		keyWrapper = func(k K) K { return k }
	}

	return &cacher[K, T]{
		internal:   gache.New[*cacheData[K, T]](opts),
		keyWrapper: keyWrapper,
	}
}
