package tile

import (
	"bytes"
	"context"
	"sync"
	"time"

	platformredis "landgate/internal/platform/redis"
)

// cacheTTL keeps tiles for a day; the underlying basemap changes rarely.
const cacheTTL = 24 * time.Hour

// Cache stores rendered tiles keyed by their normalized request query.
type Cache interface {
	Get(ctx context.Context, key string) (body []byte, contentType string, ok bool)
	Set(ctx context.Context, key string, contentType string, body []byte)
}

// Tiles are binary; the content type is prepended to the stored value with a
// NUL separator so one cache entry round-trips both.
func encodeEntry(contentType string, body []byte) []byte {
	buf := make([]byte, 0, len(contentType)+1+len(body))
	buf = append(buf, contentType...)
	buf = append(buf, 0)
	return append(buf, body...)
}

func decodeEntry(raw []byte) (body []byte, contentType string, ok bool) {
	i := bytes.IndexByte(raw, 0)
	if i < 0 {
		return nil, "", false
	}
	return raw[i+1:], string(raw[:i]), true
}

// RedisCache backs the tile cache with Redis so entries survive restarts and
// are shared between replicas.
type RedisCache struct {
	client *platformredis.Client
}

func NewRedisCache(client *platformredis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, string, bool) {
	raw, err := c.client.Get(ctx, "tile:"+key).Bytes()
	if err != nil {
		return nil, "", false
	}
	return decodeEntry(raw)
}

func (c *RedisCache) Set(ctx context.Context, key string, contentType string, body []byte) {
	c.client.Set(ctx, "tile:"+key, encodeEntry(contentType, body), cacheTTL)
}

// MemoryCache is the in-process fallback used when Redis is not configured.
// Expiry is lazy; entries are dropped on the read that finds them stale.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	if time.Now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, "", false
	}
	return decodeEntry(entry.raw)
}

func (c *MemoryCache) Set(_ context.Context, key string, contentType string, body []byte) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{raw: encodeEntry(contentType, body), expires: time.Now().Add(cacheTTL)}
	c.mu.Unlock()
}
