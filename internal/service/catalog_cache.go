package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/tfidf"
	"golang.org/x/sync/singleflight"
)

// CatalogLister supplies the full current catalog snapshot.
type CatalogLister interface {
	List(ctx context.Context) ([]domain.FoodItem, error)
}

// Snapshot is an immutable vectorized view of the catalog. IDs and Vectors
// are index-aligned and the whole snapshot is replaced wholesale on refresh,
// never patched, so concurrent readers can never pair a vector row with the
// wrong identifier. Callers must not mutate a snapshot.
type Snapshot struct {
	IDs       []uint
	Vectors   []tfidf.Vector
	FetchedAt time.Time
}

// CatalogCache holds the vectorized catalog so repeated recommendation
// requests avoid re-vectorizing every item. Staleness is bounded by the TTL;
// items added after the last refresh stay invisible until the next one.
type CatalogCache struct {
	catalog    CatalogLister
	vectorizer *tfidf.Vectorizer
	ttl        time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	snap  *Snapshot
	group singleflight.Group
}

// NewCatalogCache creates a cache over the given catalog source.
// Parameters:
//   - catalog: store supplying the full catalog.
//   - vectorizer: fitted vectorizer used to build snapshots.
//   - ttl: snapshot lifetime; zero or negative falls back to one hour.
// Returns:
//   - *CatalogCache: empty cache; the first Get triggers a refresh.
func NewCatalogCache(catalog CatalogLister, vectorizer *tfidf.Vectorizer, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CatalogCache{
		catalog:    catalog,
		vectorizer: vectorizer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the current snapshot, lazily rebuilding it on first use or TTL
// expiry. Concurrent callers during a rebuild share a single refresh.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *Snapshot: shared read-only snapshot.
//   - error: non-nil if the catalog fetch fails.
func (c *CatalogCache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil && c.now().Sub(snap.FetchedAt) < c.ttl {
		return snap, nil
	}

	v, err, _ := c.group.Do("catalog", func() (interface{}, error) {
		// Re-check under the flight: another caller may have refreshed
		// between the staleness check and joining the group.
		c.mu.RLock()
		current := c.snap
		c.mu.RUnlock()
		if current != nil && c.now().Sub(current.FetchedAt) < c.ttl {
			return current, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate drops the current snapshot so the next Get refreshes.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// refresh fetches the catalog, vectorizes it, and swaps in the new snapshot
// in a single visible step.
func (c *CatalogCache) refresh(ctx context.Context) (*Snapshot, error) {
	items, err := c.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	ids := make([]uint, len(items))
	texts := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
		texts[i] = items[i].IngredientsText()
	}

	snap := &Snapshot{
		IDs:       ids,
		Vectors:   c.vectorizer.Transform(texts),
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return snap, nil
}
