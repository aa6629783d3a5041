package recurrence

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// cacheEntry represents a cached calculation result
type cacheEntry struct {
	Result     Result
	ExpiresAt  time.Time
	AccessedAt time.Time
}

// resultCache memoizes calculation results. The calculator is referentially
// transparent, so identical inputs can safely share one Result; the cache
// exists for callers that re-render upcoming occurrences repeatedly between
// completions.
type resultCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the result cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for result caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute, // Cache results for 15 minutes
	MaxEntries:      1000,             // Keep up to 1000 cached results
	CleanupInterval: 5 * time.Minute,  // Cleanup every 5 minutes
}

// newResultCache creates a new result cache with the given configuration
func newResultCache(config CacheConfig) *resultCache {
	cache := &resultCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanupLoop()

	return cache
}

// cacheKey hashes every input that feeds a calculation
func cacheKey(operation string, state OccurrenceState, completedAt time.Time, from RepeatFrom, end EndCondition, ruleParts ...string) string {
	hasher := sha256.New()

	hasher.Write([]byte(operation))
	hasher.Write([]byte(strconv.Itoa(state.Count)))
	if due, ok := state.DueDate.Get(); ok {
		hasher.Write([]byte(due.Format(time.RFC3339Nano)))
	}
	hasher.Write([]byte(completedAt.Format(time.RFC3339Nano)))
	hasher.Write([]byte(from))
	hasher.Write([]byte(endConditionKey(end)))
	for _, part := range ruleParts {
		hasher.Write([]byte(part))
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func endConditionKey(end EndCondition) string {
	switch e := end.(type) {
	case EndAfterOccurrences:
		return "after:" + strconv.Itoa(e.Count)
	case EndOnDate:
		return "until:" + e.Date.Format(time.RFC3339Nano)
	default:
		return "never"
	}
}

// get retrieves a cached result if it exists and hasn't expired
func (c *resultCache) get(key string) (Result, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return Result{}, false
	}

	now := time.Now()
	if now.After(entry.ExpiresAt) {
		// Entry expired, remove it
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return Result{}, false
	}

	c.mutex.Lock()
	entry.AccessedAt = now
	c.mutex.Unlock()

	return entry.Result, true
}

// set stores a result in the cache
func (c *resultCache) set(key string, result Result) {
	now := time.Now()

	entry := &cacheEntry{
		Result:     result,
		ExpiresAt:  now.Add(c.ttl),
		AccessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry

	// If we're over the limit, trigger cleanup
	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries and oldest entries if over limit
func (c *resultCache) cleanup() {
	now := time.Now()

	// Remove expired entries
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}

	// If still over limit, remove least recently accessed entries
	if len(c.entries) > c.maxEntries {
		type keyAccess struct {
			key        string
			accessedAt time.Time
		}

		var keyAccessList []keyAccess
		for key, entry := range c.entries {
			keyAccessList = append(keyAccessList, keyAccess{
				key:        key,
				accessedAt: entry.AccessedAt,
			})
		}

		// Sort by access time (oldest first)
		for i := 0; i < len(keyAccessList)-1; i++ {
			for j := i + 1; j < len(keyAccessList); j++ {
				if keyAccessList[i].accessedAt.After(keyAccessList[j].accessedAt) {
					keyAccessList[i], keyAccessList[j] = keyAccessList[j], keyAccessList[i]
				}
			}
		}

		entriesToRemove := len(c.entries) - c.maxEntries
		for i := 0; i < entriesToRemove && i < len(keyAccessList); i++ {
			delete(c.entries, keyAccessList[i].key)
		}
	}
}

// cleanupLoop runs periodic cleanup
func (c *resultCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// close stops the cleanup goroutine and clears the cache
func (c *resultCache) close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// stats returns cache statistics
func (c *resultCache) stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	now := time.Now()

	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
	}
}

// CacheStats provides information about cache performance
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
