package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/tfidf"
)

type fakeCatalog struct {
	items []domain.FoodItem
	err   error
	calls int
}

func (f *fakeCatalog) List(ctx context.Context) ([]domain.FoodItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func strptr(s string) *string { return &s }

func cacheFixture() (*fakeCatalog, *tfidf.Vectorizer) {
	catalog := &fakeCatalog{items: []domain.FoodItem{
		{ID: 1, Name: "Margherita", Ingredients: strptr("tomato basil mozzarella")},
		{ID: 2, Name: "Brownie", Ingredients: strptr("chocolate sugar flour")},
	}}
	vectorizer := tfidf.Fit([]string{
		"tomato basil mozzarella",
		"chocolate sugar flour",
	})
	return catalog, vectorizer
}

func TestCatalogCacheGet(t *testing.T) {
	catalog, vectorizer := cacheFixture()
	cache := NewCatalogCache(catalog, vectorizer, time.Minute)

	snap, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(snap.IDs) != 2 || len(snap.Vectors) != 2 {
		t.Fatalf("snapshot has %d ids and %d vectors, want 2 and 2", len(snap.IDs), len(snap.Vectors))
	}
	if snap.IDs[0] != 1 || snap.IDs[1] != 2 {
		t.Errorf("IDs = %v, want [1 2]", snap.IDs)
	}
	if len(snap.Vectors[0]) == 0 {
		t.Error("vector for item 1 is empty")
	}
}

func TestCatalogCacheReusesSnapshotWithinTTL(t *testing.T) {
	catalog, vectorizer := cacheFixture()
	cache := NewCatalogCache(catalog, vectorizer, time.Minute)

	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if first != second {
		t.Error("Get() within TTL should return the same snapshot instance")
	}
	if catalog.calls != 1 {
		t.Errorf("catalog fetched %d times, want 1", catalog.calls)
	}
}

func TestCatalogCacheRefreshesAfterTTL(t *testing.T) {
	catalog, vectorizer := cacheFixture()
	cache := NewCatalogCache(catalog, vectorizer, time.Minute)

	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	catalog.items = append(catalog.items, domain.FoodItem{ID: 3, Name: "Burger", Ingredients: strptr("beef onion")})

	second, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if first == second {
		t.Fatal("Get() after TTL expiry should rebuild the snapshot")
	}
	if len(second.IDs) != 3 {
		t.Errorf("refreshed snapshot has %d ids, want 3", len(second.IDs))
	}
	// The old snapshot must be untouched for readers still holding it.
	if len(first.IDs) != 2 {
		t.Errorf("original snapshot has %d ids, want 2", len(first.IDs))
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	catalog, vectorizer := cacheFixture()
	cache := NewCatalogCache(catalog, vectorizer, time.Hour)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if catalog.calls != 2 {
		t.Errorf("catalog fetched %d times, want 2", catalog.calls)
	}
}

func TestCatalogCacheFetchError(t *testing.T) {
	catalog, vectorizer := cacheFixture()
	catalog.err = errors.New("db down")
	cache := NewCatalogCache(catalog, vectorizer, time.Minute)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Fatal("Get() should surface the catalog fetch error")
	}

	// A later call retries instead of caching the failure.
	catalog.err = nil
	snap, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() after recovery error = %v", err)
	}
	if len(snap.IDs) != 2 {
		t.Errorf("snapshot has %d ids, want 2", len(snap.IDs))
	}
}
