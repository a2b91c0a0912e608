package tfidf

import "sort"

// RankedItem is one catalog position with its similarity score.
type RankedItem struct {
	Index int
	Score float64
}

// Rank scores every catalog vector against the query vectors and returns the
// full catalog sorted by descending score. With multiple queries the scores
// are averaged per catalog column before sorting. The sort is stable, so
// ties keep the original catalog order, and the caller is expected to apply
// any filtering before truncating to its top K.
func Rank(queries []Vector, catalog []Vector) []RankedItem {
	ranked := make([]RankedItem, len(catalog))
	for i, cv := range catalog {
		var sum float64
		for _, q := range queries {
			sum += Cosine(q, cv)
		}
		score := 0.0
		if len(queries) > 0 {
			score = sum / float64(len(queries))
		}
		ranked[i] = RankedItem{Index: i, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
