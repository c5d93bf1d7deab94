/*
Package cache stores computed API responses keyed by their request.

PURPOSE:
  Every calculation is a pure function of its request and the active tax
  table, so identical requests can be answered from a cache. Requests that
  leave out a date or year are resolved against the day of the call, so the
  API keys entries with Key(operation, table year, day, request body) and
  stores the encoded response.

IMPLEMENTATIONS:
  - MemoryCache: process-local LRU with expiry, the default. Bounded by
    entry count; a janitor goroutine drops expired entries until Close.
  - RedisCache: shared cache for several server instances (-redis flag)

  Cache failures never fail a request; callers treat a Get error as a miss
  and log Set errors.
*/
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultTTL bounds how long an entry survives a tax-table reload.
	DefaultTTL = 24 * time.Hour

	// DefaultMaxEntries bounds the in-process cache.
	DefaultMaxEntries = 10000
)

// Repository is a string key/value cache.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key builds a cache key for an operation, the day it is evaluated on and
// its raw request body.
func Key(operation string, tableYear int, day string, body []byte) string {
	h := xxhash.New()
	_, _ = h.WriteString(operation)
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(strconv.Itoa(tableYear))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(day)
	_, _ = h.WriteString(":")
	_, _ = h.Write(body)
	return "payroll:" + operation + ":" + strconv.FormatUint(h.Sum64(), 16)
}

// =============================================================================
// MEMORY CACHE
// =============================================================================

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process Repository.
type MemoryCache struct {
	entries *lru.Cache[string, memoryEntry]
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMemoryCache creates a cache holding at most maxEntries (<= 0 means
// DefaultMaxEntries) whose entries expire after ttl (0 = never).
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, memoryEntry](maxEntries)

	c := &MemoryCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		c.startJanitor(max(ttl/4, time.Second))
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	if c.expired(e) {
		c.entries.Remove(key)
		return "", false
	}
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	e := memoryEntry{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// DeleteExpired removes every expired entry and returns how many were dropped.
func (c *MemoryCache) DeleteExpired() int {
	removed := 0
	for _, key := range c.entries.Keys() {
		if e, ok := c.entries.Peek(key); ok && c.expired(e) {
			c.entries.Remove(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// Flush removes every entry.
func (c *MemoryCache) Flush() {
	c.entries.Purge()
}

// Close stops the janitor. The cache stays readable.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
	return nil
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

func (c *MemoryCache) startJanitor(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.DeleteExpired()
			case <-c.stop:
				return
			}
		}
	}()
}
