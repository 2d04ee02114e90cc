package adtschema

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

// cacheKey identifies one generated schema: the discriminator property name
// the generating chain was configured with plus the identity of the type.
type cacheKey struct {
	discriminator string
	typ           *typedesc.Type
}

// Cache memoizes generated schemas for the lifetime of the process. Entries
// are never evicted and never mutated after insertion; callers must treat
// returned schemas as read-only. Create one Cache at process start and pass
// it explicitly to NewMemoizedGenerator — there is no ambient global.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*js.Schema
	group   singleflight.Group
}

// NewCache returns an empty cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*js.Schema)}
}

// GetOrCreate returns the cached schema for (discriminator, t), synthesizing
// it with a freshly configured processor chain on first request. Racing
// first requests are collapsed by singleflight, so one synthesis wins and
// the cache converges on a single node per key. Distinct discriminator names
// for the same type are distinct entries. Synthesis errors are returned but
// not cached.
func (c *Cache) GetOrCreate(discriminator string, t *typedesc.Type) (*js.Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("adtschema: nil type descriptor")
	}
	key := cacheKey{discriminator: discriminator, typ: t}
	c.mu.RLock()
	s, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := c.group.Do(flightKey(key), func() (any, error) {
		c.mu.RLock()
		s, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return s, nil
		}
		gen, err := NewGenerator(WithDiscriminator(discriminator))
		if err != nil {
			return nil, err
		}
		s, err = gen.Generate(t)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if prev, ok := c.entries[key]; ok {
			s = prev
		} else {
			c.entries[key] = s
		}
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*js.Schema), nil
}

// Len reports the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func flightKey(k cacheKey) string {
	// Pointer identity keeps distinct descriptors with equal names apart.
	return fmt.Sprintf("%s\x00%p", k.discriminator, k.typ)
}
