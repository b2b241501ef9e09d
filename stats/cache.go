package stats

import (
	"sync"
	"time"

	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData defines the structured format for persisting cached stats records to disk.
type cacheData struct {
	Stats map[string]*ContentStats `json:"stats"`
}

// Cache provides a thread-safe persisted stats table keyed by content id.
// The snapshot is read once on first access and written back after each
// mutation, surviving app restarts but expiring after its lifetime.
type Cache struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

// NewCache returns the stats cache persisted at the standard location.
func NewCache() *Cache {
	return &Cache{
		internal: gache.New[*cacheData](
			&gache.Options{
				Path:       where.Stats(),
				Lifetime:   time.Hour * 24,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

// Get retrieves the cached stats for the given content id.
func (c *Cache) Get(contentID string) mo.Option[ContentStats] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[ContentStats]()
	}

	if s, ok := data.Stats[contentID]; ok && s != nil {
		return mo.Some(*s)
	}
	return mo.None[ContentStats]()
}

// Set persists the stats for the given content id.
func (c *Cache) Set(contentID string, s ContentStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Stats[contentID] = &s
		return c.internal.Set(data)
	}

	fresh := &cacheData{Stats: map[string]*ContentStats{contentID: &s}}
	return c.internal.Set(fresh)
}

// Update applies fn to the cached stats for contentID (zero value when absent)
// and persists the result. The read-modify-write runs under the cache lock so
// concurrent updates never lose counts.
func (c *Cache) Update(contentID string, fn func(*ContentStats)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		data = &cacheData{Stats: make(map[string]*ContentStats)}
	}

	s, ok := data.Stats[contentID]
	if !ok || s == nil {
		s = &ContentStats{}
		data.Stats[contentID] = s
	}

	fn(s)
	return c.internal.Set(data)
}
