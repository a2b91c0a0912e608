package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/tfidf"
)

type fakeStore struct {
	catalog []domain.FoodItem
	liked   []domain.FoodItem
}

func (f *fakeStore) GetLikedItems(ctx context.Context, userID uint) ([]domain.FoodItem, error) {
	return f.liked, nil
}

func (f *fakeStore) GetByIDs(ctx context.Context, ids []uint) ([]domain.FoodItem, error) {
	byID := make(map[uint]domain.FoodItem, len(f.catalog))
	for _, item := range f.catalog {
		byID[item.ID] = item
	}
	items := make([]domain.FoodItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeStore) List(ctx context.Context) ([]domain.FoodItem, error) {
	return f.catalog, nil
}

func recommendFixture(liked ...uint) (*fakeStore, *Artifacts, *CatalogCache) {
	catalog := []domain.FoodItem{
		{ID: 1, Name: "Pasta Pomodoro", Ingredients: strptr("tomato basil pasta")},
		{ID: 2, Name: "Chocolate Cake", Ingredients: strptr("chocolate cake sugar")},
		{ID: 3, Name: "Margherita", Ingredients: strptr("tomato basil pizza")},
		{ID: 4, Name: "Burger", Ingredients: strptr("beef burger onion")},
	}

	store := &fakeStore{catalog: catalog}
	for _, id := range liked {
		store.liked = append(store.liked, catalog[id-1])
	}

	texts := make([]string, len(catalog))
	for i := range catalog {
		texts[i] = catalog[i].IngredientsText()
	}
	vectorizer := tfidf.Fit(texts)

	artifacts := &Artifacts{
		FitID:      "fit-test",
		TrainedAt:  time.Now(),
		Vectorizer: vectorizer,
		Model:      FitNeighborModel(&InteractionMatrix{}),
	}
	cache := NewCatalogCache(store, vectorizer, time.Hour)
	return store, artifacts, cache
}

func TestRecommendIDsExcludesLikedItems(t *testing.T) {
	store, artifacts, cache := recommendFixture(1)
	svc := NewRecommendService(store, artifacts, cache, nil, nil)

	got, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}

	// Item 3 shares tomato and basil with the liked item, so it ranks first.
	// Items 2 and 4 score zero and keep catalog order. Item 1 is the liked
	// item itself and must not come back.
	want := []uint{3, 2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendIDs() = %v, want %v", got, want)
	}
}

func TestRecommendIDsTopKTruncation(t *testing.T) {
	store, artifacts, cache := recommendFixture(1)
	svc := NewRecommendService(store, artifacts, cache, nil, &RecommendConfig{TopK: 1})

	got, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}
	if !reflect.DeepEqual(got, []uint{3}) {
		t.Errorf("RecommendIDs() = %v, want [3]", got)
	}
}

func TestRecommendIDsNoLikes(t *testing.T) {
	store, artifacts, cache := recommendFixture()
	svc := NewRecommendService(store, artifacts, cache, nil, nil)

	got, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("RecommendIDs() = %v, want empty", got)
	}
}

func TestRecommendIDsArtifactsUnavailable(t *testing.T) {
	store, _, _ := recommendFixture(1)
	svc := NewRecommendService(store, nil, nil, nil, nil)

	if svc.ArtifactsLoaded() {
		t.Error("ArtifactsLoaded() = true, want false")
	}

	got, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("RecommendIDs() = %v, want empty", got)
	}
}

func TestRecommendIDsPerItemStrategy(t *testing.T) {
	store, artifacts, cache := recommendFixture(1, 2)
	svc := NewRecommendService(store, artifacts, cache, nil, &RecommendConfig{Strategy: StrategyPerItem})

	got, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}

	// Both liked items are excluded; item 3 still wins on the tomato/basil
	// overlap even after the cake query dilutes its average.
	want := []uint{3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendIDs() = %v, want %v", got, want)
	}
}

func TestRecommendIDsIdempotent(t *testing.T) {
	store, artifacts, cache := recommendFixture(1)
	svc := NewRecommendService(store, artifacts, cache, nil, nil)

	first, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}
	second, err := svc.RecommendIDs(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecommendIDs() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v then %v", first, second)
	}
}

func TestRecommendHydratesInRankOrder(t *testing.T) {
	store, artifacts, cache := recommendFixture(1)
	svc := NewRecommendService(store, artifacts, cache, nil, nil)

	items, err := svc.Recommend(context.Background(), 7)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	wantNames := []string{"Margherita", "Chocolate Cake", "Burger"}
	if len(items) != len(wantNames) {
		t.Fatalf("Recommend() returned %d items, want %d", len(items), len(wantNames))
	}
	for i, name := range wantNames {
		if items[i].Name != name {
			t.Errorf("item %d = %q, want %q", i, items[i].Name, name)
		}
	}
}
