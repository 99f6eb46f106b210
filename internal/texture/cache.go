package texture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
)

// ErrNotFound is returned when a texture name is neither indexed nor a file.
var ErrNotFound = errors.New("texture: not found")

// Resolver resolves a texture name to a decoded NRGBA image.
type Resolver interface {
	Resolve(texName string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new texture cache backed by the given index. A nil index
// resolves names as plain file paths only.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by indexed stem, falling back to treating
// texName as a path. Failed loads are cached too.
func (c *Cache) Resolve(texName string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		if _, err := os.Stat(texName); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, texName)
		}
		path = texName
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached load attempts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
