// Package memory provides an in-process cache implementation used for
// development and tests. It keeps code paths easy to follow while allowing a
// shared backend to be plugged in later.
package memory

import (
	"context"
	"sync"
)

// Cache is a mutex-guarded map of snapshot values. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	values map[string]string
}

// New constructs an empty in-memory cache.
func New() *Cache {
	return &Cache{values: make(map[string]string)}
}

func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *Cache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.values, key)
	c.mu.Unlock()
	return nil
}

// Reset clears all values. Test helper.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.values = map[string]string{}
	c.mu.Unlock()
}
