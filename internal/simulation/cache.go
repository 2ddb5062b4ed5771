package simulation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// cacheEntry is one memoised engine run.
type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

// ResultCache memoises engine runs by input for a fixed TTL. A nil cache is
// valid and runs the engine every time.
type ResultCache struct {
	mu         sync.RWMutex
	store      map[string]*cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	lastSweep  time.Time
}

// NewResultCache returns nil when ttl <= 0, which disables caching.
func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	if ttl <= 0 {
		return nil
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &ResultCache{
		store:      make(map[string]*cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Run returns a cached result for in, or runs e and caches the outcome.
// Callers get a shallow copy they may reassign fields on.
func (c *ResultCache) Run(e *Engine, in Input) (*Result, error) {
	if c == nil {
		return e.Run(in)
	}
	key, err := CacheKey(in)
	if err != nil {
		return e.Run(in)
	}
	if res, ok := c.Get(key); ok {
		return res, nil
	}
	res, err := e.Run(in)
	if err != nil {
		return nil, err
	}
	c.Set(key, res)
	out := *res
	return &out, nil
}

// Get retrieves a cached result if available and not expired.
func (c *ResultCache) Get(key string) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	out := *entry.result
	return &out, true
}

// Set stores a result. Expired entries are swept at most once a minute; when
// the cache is still full the entry closest to expiry is dropped.
func (c *ResultCache) Set(key string, res *Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= time.Minute {
		c.lastSweep = now
		for k, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, k)
			}
		}
	}
	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		var oldest string
		for k, entry := range c.store {
			if oldest == "" || entry.expiresAt.Before(c.store[oldest].expiresAt) {
				oldest = k
			}
		}
		delete(c.store, oldest)
	}
	c.store[key] = &cacheEntry{result: res, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// CacheKey hashes the JSON form of in.
func CacheKey(in Input) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:]), nil
}
