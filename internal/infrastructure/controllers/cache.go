package controllers

import (
	"sync"
	"time"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

type cachedAnalysis struct {
	items     []entities.ReportItem
	summary   entities.RiskSummary
	expiresAt time.Time
}

// resultCache keeps finished analyses for a fixed TTL so repeated API
// requests for the same repository and branch skip the scrape entirely.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedAnalysis
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cachedAnalysis),
	}
}

func (c *resultCache) get(key string) (cachedAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		return cachedAnalysis{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return cachedAnalysis{}, false
	}
	return entry, true
}

func (c *resultCache) put(key string, items []entities.ReportItem, summary entities.RiskSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cachedAnalysis{
		items:     items,
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}
