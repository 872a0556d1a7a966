package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stockfeed/internal/provider"
)

// entry stores a confirmed ticker reference with expiry.
type entry struct {
	expiresAt time.Time
	ref       provider.TickerRef
}

type lookupResult struct {
	ref provider.TickerRef
	ok  bool
}

// Resolver caches successful single-ticker lookups for a TTL. Absent
// lookups are never cached, and search results always go upstream.
// Concurrent lookups of the same symbol share one upstream call.
type Resolver struct {
	R        provider.TickerResolver
	TTL      time.Duration
	MaxItems int

	now   func() time.Time
	mu    sync.RWMutex
	items map[string]entry // key: symbol as requested
	group singleflight.Group
}

// NewResolver wraps r. A zero or negative ttl disables caching.
func NewResolver(r provider.TickerResolver, ttl time.Duration, maxItems int) *Resolver {
	return &Resolver{R: r, TTL: ttl, MaxItems: maxItems}
}

// SearchTickers is not cached.
func (c *Resolver) SearchTickers(ctx context.Context, query string) ([]provider.TickerRef, error) {
	return c.R.SearchTickers(ctx, query)
}

// LookupTicker returns a cached reference when one is still valid.
func (c *Resolver) LookupTicker(ctx context.Context, symbol string) (provider.TickerRef, bool) {
	if c.TTL <= 0 {
		return c.R.LookupTicker(ctx, symbol)
	}

	c.mu.RLock()
	e, ok := c.items[symbol]
	c.mu.RUnlock()
	if ok && c.clock().Before(e.expiresAt) {
		return e.ref, true
	}

	// The shared call outlives any one caller; each caller stops waiting
	// when its own ctx ends.
	ch := c.group.DoChan(symbol, func() (any, error) {
		ref, ok := c.R.LookupTicker(context.WithoutCancel(ctx), symbol)
		if ok {
			c.store(symbol, ref)
		}
		return lookupResult{ref: ref, ok: ok}, nil
	})
	select {
	case <-ctx.Done():
		return provider.TickerRef{}, false
	case r := <-ch:
		res := r.Val.(lookupResult)
		return res.ref, res.ok
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Resolver) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Resolver) store(symbol string, ref provider.TickerRef) {
	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[string]entry)
	}
	c.items[symbol] = entry{expiresAt: now.Add(c.TTL), ref: ref}

	// best-effort cap: expired entries go first, then arbitrary ones
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k, v := range c.items {
			if !now.Before(v.expiresAt) {
				delete(c.items, k)
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			if k == symbol {
				continue
			}
			delete(c.items, k)
		}
	}
}

func (c *Resolver) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
