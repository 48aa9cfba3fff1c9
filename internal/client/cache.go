package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/jonathan/company-prep/internal/types"
)

// DefaultCacheTTL is how long cached lookups are reused
const DefaultCacheTTL = time.Minute

const (
	searchKeyPrefix = "search?q="
	recentKey       = "recent"
)

// QueryCache caches company lookups by exact query text and the recent-searches list.
// Search always reaches the server so every query is logged; it only refreshes entries.
// A successful research invalidates both.
type QueryCache struct {
	cache *bigcache.BigCache
}

// NewQueryCache creates a cache whose entries expire after ttl
func NewQueryCache(ctx context.Context, ttl time.Duration) (*QueryCache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 16
	cfg.CleanWindow = ttl
	cfg.MaxEntriesInWindow = 1024
	// company records are a few KB of JSON
	cfg.MaxEntrySize = 8 << 10
	cfg.Verbose = false

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	return &QueryCache{cache: c}, nil
}

type recentEntry struct {
	Limit    int      `json:"limit"`
	Searches []string `json:"searches"`
}

// Company returns the cached search result for query
func (q *QueryCache) Company(query string) (*types.Company, bool) {
	var c types.Company
	if !q.get(searchKeyPrefix+query, &c) {
		return nil, false
	}
	return &c, true
}

// SetCompany caches the search result for query
func (q *QueryCache) SetCompany(query string, c *types.Company) {
	q.set(searchKeyPrefix+query, c)
}

// Recent returns the cached recent searches when they were fetched with the same limit
func (q *QueryCache) Recent(limit int) ([]string, bool) {
	var e recentEntry
	if !q.get(recentKey, &e) || e.Limit != limit {
		return nil, false
	}
	return e.Searches, true
}

// SetRecent caches the recent searches fetched with limit
func (q *QueryCache) SetRecent(limit int, searches []string) {
	q.set(recentKey, recentEntry{Limit: limit, Searches: searches})
}

// InvalidateSearch drops the cached result for query
func (q *QueryCache) InvalidateSearch(query string) {
	q.delete(searchKeyPrefix + query)
}

// InvalidateRecent drops the cached recent searches
func (q *QueryCache) InvalidateRecent() {
	q.delete(recentKey)
}

// Close releases the cache
func (q *QueryCache) Close() error {
	return q.cache.Close()
}

func (q *QueryCache) get(key string, out any) bool {
	data, err := q.cache.Get(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (q *QueryCache) set(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = q.cache.Set(key, data)
}

// delete ignores bigcache.ErrEntryNotFound; a missing entry is already invalid.
func (q *QueryCache) delete(key string) {
	_ = q.cache.Delete(key)
}
