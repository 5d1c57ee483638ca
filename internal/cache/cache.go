package cache

import (
	"sync"
	"time"

	"github.com/roninwatch/tokendash/internal/model"
)

// DefaultTTL bounds upstream call volume: within this window every
// /api/tokens request is served from the last computed batch.
const DefaultTTL = 45 * time.Second

// ResultCache holds the last full refresh result. The pipeline has no
// request parameters that vary its output, so a single slot is enough
// and there is deliberately no key space here.
type ResultCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	result   *model.TokenResponse
	storedAt time.Time
}

// New returns a ResultCache with the given TTL on the real clock.
// A non-positive TTL falls back to DefaultTTL.
func New(ttl time.Duration) *ResultCache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock returns a ResultCache on an injected clock, for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{ttl: ttl, now: now}
}

// Get returns the cached result set if it is still within the TTL.
func (c *ResultCache) Get() (*model.TokenResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil {
		return nil, false
	}
	if c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.result, true
}

// Put stores a result set, replacing any prior entry. Last writer wins
// under concurrent refreshes; staleness tolerance is coarse enough that
// this is acceptable.
func (c *ResultCache) Put(result *model.TokenResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = result
	c.storedAt = c.now()
}

// Clear drops the cached entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = nil
	c.storedAt = time.Time{}
}

// Age returns the age of the cached entry and whether one exists.
func (c *ResultCache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil {
		return 0, false
	}
	return c.now().Sub(c.storedAt), true
}

// TTL returns the configured time-to-live.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
