package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plateful/plateful/internal/domain"
)

type fakeInteractionSource struct {
	records []domain.InteractionRecord
	err     error
}

func (f *fakeInteractionSource) ExportInteractions(ctx context.Context) ([]domain.InteractionRecord, error) {
	return f.records, f.err
}

func newTestTrainer(t *testing.T, source InteractionSource) (*TrainerService, string, string) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "recommendation_data.csv")
	artifactsDir := filepath.Join(dir, "models")
	trainer := NewTrainerService(source, NewReporter(""), nil, nil, &TrainerConfig{
		DataPath:     dataPath,
		ArtifactsDir: artifactsDir,
	})
	return trainer, dataPath, artifactsDir
}

func TestTrainerRun(t *testing.T) {
	source := &fakeInteractionSource{records: []domain.InteractionRecord{
		{UserID: 2, FoodID: 20, Kind: domain.InteractionDislike, Ingredients: "chocolate sugar flour"},
		{UserID: 1, FoodID: 10, Kind: domain.InteractionLike, Ingredients: "tomato basil"},
		{UserID: 1, FoodID: 20, Kind: domain.InteractionDislike, Ingredients: "chocolate sugar flour"},
		{UserID: 3, FoodID: 10, Kind: domain.InteractionOrder, Ingredients: "tomato basil"},
		{UserID: 3, FoodID: 30, Kind: domain.InteractionLike, Ingredients: "beef onion"},
		// Same pair rated both ways: the positive signal must win.
		{UserID: 2, FoodID: 30, Kind: domain.InteractionDislike, Ingredients: "beef onion"},
		{UserID: 2, FoodID: 30, Kind: domain.InteractionLike, Ingredients: "beef onion"},
	}}

	trainer, _, artifactsDir := newTestTrainer(t, source)

	report, err := trainer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.FailedStage != "" {
		t.Fatalf("FailedStage = %q, want empty", report.FailedStage)
	}
	if report.Rows != 7 {
		t.Errorf("Rows = %d, want 7", report.Rows)
	}
	if report.Users != 3 || report.Items != 3 {
		t.Errorf("shape = (%d, %d), want (3, 3)", report.Users, report.Items)
	}
	if report.FitID == "" {
		t.Error("FitID is empty")
	}

	artifacts, err := LoadArtifacts(artifactsDir)
	if err != nil {
		t.Fatalf("LoadArtifacts() error = %v", err)
	}
	if artifacts.FitID != report.FitID {
		t.Errorf("artifact fit id = %q, want %q", artifacts.FitID, report.FitID)
	}

	model := artifacts.Model
	wantUsers := []uint{1, 2, 3}
	wantFoods := []uint{10, 20, 30}
	for i, u := range wantUsers {
		if model.UserIDs[i] != u {
			t.Fatalf("UserIDs = %v, want %v", model.UserIDs, wantUsers)
		}
	}
	for i, f := range wantFoods {
		if model.FoodIDs[i] != f {
			t.Fatalf("FoodIDs = %v, want %v", model.FoodIDs, wantFoods)
		}
	}

	wantRows := [][]int8{
		{1, -1, 0},
		{0, -1, 1}, // user 2 liked and disliked item 30; like wins
		{1, 0, 1},  // order counts as positive
	}
	for i := range wantRows {
		for j := range wantRows[i] {
			if model.Rows[i][j] != wantRows[i][j] {
				t.Errorf("cell (%d,%d) = %d, want %d", i, j, model.Rows[i][j], wantRows[i][j])
			}
		}
	}

	if artifacts.Vectorizer.Size() == 0 {
		t.Error("vectorizer vocabulary is empty")
	}
}

func TestTrainerExportHeaderOnly(t *testing.T) {
	trainer, dataPath, _ := newTestTrainer(t, &fakeInteractionSource{})

	rows, err := trainer.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if rows != 0 {
		t.Errorf("Export() rows = %d, want 0", rows)
	}

	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("reading dataset: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "user_id,food_id,interaction,ingredients" {
		t.Errorf("dataset = %q, want header only", got)
	}
}

func TestTrainerFitEmptyDataset(t *testing.T) {
	trainer, _, artifactsDir := newTestTrainer(t, &fakeInteractionSource{})

	if _, err := trainer.Export(context.Background()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	report, err := trainer.Fit(context.Background())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if report.Users != 0 || report.Items != 0 {
		t.Errorf("shape = (%d, %d), want (0, 0)", report.Users, report.Items)
	}
	if _, err := LoadArtifacts(artifactsDir); err != nil {
		t.Errorf("LoadArtifacts() error = %v", err)
	}
}

func TestTrainerFitWithoutExport(t *testing.T) {
	trainer, _, _ := newTestTrainer(t, &fakeInteractionSource{})

	report, err := trainer.Fit(context.Background())
	if err == nil {
		t.Fatal("Fit() without a dataset should fail")
	}
	if report.FailedStage != "load" {
		t.Errorf("FailedStage = %q, want load", report.FailedStage)
	}
	if !strings.Contains(err.Error(), "run the export stage first") {
		t.Errorf("error = %v, want a hint to run export", err)
	}
}

func TestTrainerQuotedIngredientsSurviveRoundTrip(t *testing.T) {
	source := &fakeInteractionSource{records: []domain.InteractionRecord{
		{UserID: 1, FoodID: 10, Kind: domain.InteractionLike, Ingredients: `tomato, basil "fresh"` + "\nolive oil"},
	}}
	trainer, _, _ := newTestTrainer(t, source)

	if _, err := trainer.Export(context.Background()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	rows, err := trainer.loadDataset()
	if err != nil {
		t.Fatalf("loadDataset() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("loadDataset() returned %d rows, want 1", len(rows))
	}
	if rows[0].Ingredients != source.records[0].Ingredients {
		t.Errorf("ingredients = %q, want %q", rows[0].Ingredients, source.records[0].Ingredients)
	}
}
