package service

import (
	"testing"
)

func testMatrix() *InteractionMatrix {
	return &InteractionMatrix{
		UserIDs: []uint{1, 2, 3},
		FoodIDs: []uint{10, 20, 30},
		Rows: [][]int8{
			{1, 1, 0},
			{1, 1, -1},
			{-1, 0, 1},
		},
	}
}

func TestNeighborModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NeighborModel)
		wantErr bool
	}{
		{"valid", func(m *NeighborModel) {}, false},
		{"row count mismatch", func(m *NeighborModel) { m.Rows = m.Rows[:2] }, true},
		{"cell count mismatch", func(m *NeighborModel) { m.Rows[1] = m.Rows[1][:1] }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FitNeighborModel(testMatrix())
			tt.mutate(m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKneighborsOrdering(t *testing.T) {
	m := FitNeighborModel(testMatrix())

	// Query matches user 1's row exactly, so user 1 must rank first.
	got, err := m.Kneighbors([]int8{1, 1, 0}, 2)
	if err != nil {
		t.Fatalf("Kneighbors() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Kneighbors() returned %d hits, want 2", len(got))
	}
	if got[0].UserID != 1 {
		t.Errorf("nearest user = %d, want 1", got[0].UserID)
	}
	if got[0].Distance > 1e-9 {
		t.Errorf("distance to identical row = %v, want 0", got[0].Distance)
	}
	if got[1].UserID != 2 {
		t.Errorf("second nearest user = %d, want 2", got[1].UserID)
	}
}

func TestKneighborsShapeMismatch(t *testing.T) {
	m := FitNeighborModel(testMatrix())
	if _, err := m.Kneighbors([]int8{1, 0}, 3); err == nil {
		t.Fatal("Kneighbors() with wrong query width should fail")
	}
}

func TestKneighborsZeroQuery(t *testing.T) {
	m := FitNeighborModel(testMatrix())
	got, err := m.Kneighbors([]int8{0, 0, 0}, 0)
	if err != nil {
		t.Fatalf("Kneighbors() error = %v", err)
	}
	// All-zero query has no direction: every distance is 1 and fit order holds.
	if len(got) != 3 {
		t.Fatalf("Kneighbors() returned %d hits, want 3", len(got))
	}
	for i, n := range got {
		if n.Distance != 1 {
			t.Errorf("hit %d distance = %v, want 1", i, n.Distance)
		}
		if n.UserID != m.UserIDs[i] {
			t.Errorf("hit %d user = %d, want %d", i, n.UserID, m.UserIDs[i])
		}
	}
}

func TestRowForUser(t *testing.T) {
	m := FitNeighborModel(testMatrix())

	row, ok := m.RowForUser(3)
	if !ok {
		t.Fatal("RowForUser(3) not found")
	}
	if row[2] != 1 {
		t.Errorf("row cell = %d, want 1", row[2])
	}

	if _, ok := m.RowForUser(99); ok {
		t.Error("RowForUser(99) should not be found")
	}
}
