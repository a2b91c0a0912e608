package service

import (
	"fmt"
	"math"
	"sort"
)

// NeighborModel is a brute-force cosine nearest-neighbor index over the rows
// of a user/item interaction matrix. Exact search is preferred over
// approximate structures at this scale. A persisted model is only valid
// against a matrix of the same shape it was fit on.
type NeighborModel struct {
	UserIDs []uint   `json:"user_ids"`
	FoodIDs []uint   `json:"food_ids"`
	Rows    [][]int8 `json:"rows"`
}

// Neighbor is one search hit: a user row and its cosine distance (1 - sim).
type Neighbor struct {
	UserID   uint
	Distance float64
}

// FitNeighborModel builds the index from an interaction matrix.
func FitNeighborModel(m *InteractionMatrix) *NeighborModel {
	return &NeighborModel{
		UserIDs: m.UserIDs,
		FoodIDs: m.FoodIDs,
		Rows:    m.Rows,
	}
}

// Shape returns the (users, items) dimensions the model was fit on.
func (m *NeighborModel) Shape() (int, int) {
	return len(m.UserIDs), len(m.FoodIDs)
}

// Validate checks internal shape consistency. A model whose rows do not
// match its identifier lists must be rejected before use.
func (m *NeighborModel) Validate() error {
	if len(m.Rows) != len(m.UserIDs) {
		return fmt.Errorf("row count %d does not match user count %d", len(m.Rows), len(m.UserIDs))
	}
	for i, row := range m.Rows {
		if len(row) != len(m.FoodIDs) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(m.FoodIDs))
		}
	}
	return nil
}

// RowForUser returns the interaction row for a user present at fit time.
func (m *NeighborModel) RowForUser(userID uint) ([]int8, bool) {
	for i, id := range m.UserIDs {
		if id == userID {
			return m.Rows[i], true
		}
	}
	return nil, false
}

// Kneighbors returns the k nearest user rows to the query row by cosine
// distance, brute force. Ties keep fit order so results are deterministic.
// Parameters:
//   - query: interaction row; its length must match the fitted item count.
//   - k: maximum number of neighbors to return.
// Returns:
//   - []Neighbor: up to k hits sorted by ascending distance.
//   - error: non-nil on a shape mismatch.
func (m *NeighborModel) Kneighbors(query []int8, k int) ([]Neighbor, error) {
	if len(query) != len(m.FoodIDs) {
		return nil, fmt.Errorf("query has %d cells, model was fit on %d items",
			len(query), len(m.FoodIDs))
	}

	neighbors := make([]Neighbor, len(m.Rows))
	for i, row := range m.Rows {
		neighbors[i] = Neighbor{
			UserID:   m.UserIDs[i],
			Distance: 1 - cosineRows(query, row),
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

func cosineRows(a, b []int8) float64 {
	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
