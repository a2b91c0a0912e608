package service

import (
	"context"
	"strings"

	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/tfidf"
)

// RecommendStrategy selects how a user's liked items become query vectors.
type RecommendStrategy string

const (
	// StrategyConcat joins all liked ingredient text into one document and
	// vectorizes it once.
	StrategyConcat RecommendStrategy = "concat"
	// StrategyPerItem vectorizes each liked item separately and averages the
	// similarity scores per catalog column.
	StrategyPerItem RecommendStrategy = "peritem"
)

const defaultTopK = 10

// PreferenceStore supplies a user's interaction history and item records.
type PreferenceStore interface {
	GetLikedItems(ctx context.Context, userID uint) ([]domain.FoodItem, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.FoodItem, error)
}

// RecommendConfig holds configuration for the recommendation service.
type RecommendConfig struct {
	Strategy RecommendStrategy
	TopK     int
}

// RecommendService ranks catalog items by content similarity to the user's
// accumulated like signal. When the training artifacts are unavailable the
// service stays up and every request resolves to an explicit empty result.
type RecommendService struct {
	foods     PreferenceStore
	cache     *CatalogCache
	artifacts *Artifacts // nil means unavailable, checked at every call site
	strategy  RecommendStrategy
	topK      int
	logger    *logger.Logger
}

// NewRecommendService creates a new recommendation service.
// Parameters:
//   - foods: store for liked items and item hydration.
//   - artifacts: loaded artifact pair, or nil when loading failed at boot.
//   - cache: catalog vector cache; may be nil when artifacts is nil.
//   - log: logger instance.
//   - cfg: strategy and top-K settings; nil uses defaults.
// Returns:
//   - *RecommendService: initialized service.
func NewRecommendService(
	foods PreferenceStore,
	artifacts *Artifacts,
	cache *CatalogCache,
	log *logger.Logger,
	cfg *RecommendConfig,
) *RecommendService {
	strategy := StrategyConcat
	topK := defaultTopK
	if cfg != nil {
		if cfg.Strategy == StrategyPerItem {
			strategy = StrategyPerItem
		}
		if cfg.TopK > 0 {
			topK = cfg.TopK
		}
	}
	return &RecommendService{
		foods:     foods,
		cache:     cache,
		artifacts: artifacts,
		strategy:  strategy,
		topK:      topK,
		logger:    log,
	}
}

// ArtifactsLoaded reports whether the trained artifact pair is available.
func (s *RecommendService) ArtifactsLoaded() bool {
	return s.artifacts != nil
}

// RecommendIDs returns at most TopK catalog identifiers ranked by similarity
// to the user's liked items. Items the user already likes are excluded from
// the output after ranking. No like signal or unavailable artifacts yield an
// empty slice, never an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: user to recommend for.
// Returns:
//   - []uint: ranked item identifiers, possibly empty.
//   - error: non-nil only when a collaborator store fails.
func (s *RecommendService) RecommendIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.artifacts == nil {
		logger.CtxDebug(ctx, "Recommendation artifacts unavailable, returning empty result: user_id=%d", userID)
		return []uint{}, nil
	}

	liked, err := s.foods.GetLikedItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return []uint{}, nil
	}

	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	queries := s.buildQueries(liked)
	ranked := tfidf.Rank(queries, snap.Vectors)

	likedSet := make(map[uint]bool, len(liked))
	for _, item := range liked {
		likedSet[item.ID] = true
	}

	// Self-exclusion happens after ranking: pre-filtering the catalog would
	// skew the similarity statistics the scores are computed from.
	ids := make([]uint, 0, s.topK)
	for _, r := range ranked {
		id := snap.IDs[r.Index]
		if likedSet[id] {
			continue
		}
		ids = append(ids, id)
		if len(ids) == s.topK {
			break
		}
	}

	logger.CtxInfo(ctx, "Recommendation computed: user_id=%d, strategy=%s, liked=%d, catalog=%d, returned=%d",
		userID, s.strategy, len(liked), len(snap.IDs), len(ids))
	return ids, nil
}

// Recommend resolves RecommendIDs into full item records, preserving rank order.
func (s *RecommendService) Recommend(ctx context.Context, userID uint) ([]domain.FoodItem, error) {
	ids, err := s.RecommendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.FoodItem{}, nil
	}
	return s.foods.GetByIDs(ctx, ids)
}

// buildQueries turns the liked items into query vectors per the configured
// strategy. Items whose text vectorizes to all-zero are kept: they dilute a
// per-item average but never invalidate it.
func (s *RecommendService) buildQueries(liked []domain.FoodItem) []tfidf.Vector {
	if s.strategy == StrategyPerItem {
		queries := make([]tfidf.Vector, len(liked))
		for i := range liked {
			queries[i] = s.artifacts.Vectorizer.TransformOne(liked[i].IngredientsText())
		}
		return queries
	}

	texts := make([]string, len(liked))
	for i := range liked {
		texts[i] = liked[i].IngredientsText()
	}
	return []tfidf.Vector{s.artifacts.Vectorizer.TransformOne(strings.Join(texts, " "))}
}
