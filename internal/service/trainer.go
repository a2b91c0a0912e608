package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/plateful/plateful/internal/domain"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/storage"
	"github.com/plateful/plateful/internal/tfidf"
)

// InteractionSource supplies the flattened interaction history for export.
type InteractionSource interface {
	ExportInteractions(ctx context.Context) ([]domain.InteractionRecord, error)
}

// TrainerConfig holds configuration for the offline training pipeline.
type TrainerConfig struct {
	DataPath     string // exported dataset location
	ArtifactsDir string // where the artifact pair is persisted
}

// TrainerService runs the offline training pipeline: export the interaction
// history to a flat dataset, load it back, fit the vectorizer and the
// interaction matrix, and persist the artifact pair. Every stage is
// independently re-runnable; a stage failure aborts the run and names the
// stage, and never clobbers the last good artifacts.
type TrainerService struct {
	interactions InteractionSource
	reporter     *Reporter
	mirror       storage.ObjectStorage
	logger       *logger.Logger
	dataPath     string
	artifactsDir string
}

// NewTrainerService creates a new trainer.
// Parameters:
//   - interactions: source of interaction records for the export stage.
//   - reporter: completion/failure report sink; may be disabled.
//   - mirror: optional object storage the artifacts are mirrored to; nil skips.
//   - log: logger instance.
//   - cfg: dataset and artifact paths.
// Returns:
//   - *TrainerService: initialized trainer.
func NewTrainerService(
	interactions InteractionSource,
	reporter *Reporter,
	mirror storage.ObjectStorage,
	log *logger.Logger,
	cfg *TrainerConfig,
) *TrainerService {
	return &TrainerService{
		interactions: interactions,
		reporter:     reporter,
		mirror:       mirror,
		logger:       log,
		dataPath:     cfg.DataPath,
		artifactsDir: cfg.ArtifactsDir,
	}
}

// TrainReport is the human-readable outcome of one pipeline run.
type TrainReport struct {
	FitID          string    `json:"fit_id,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Rows           int       `json:"rows"`
	Users          int       `json:"users"`
	Items          int       `json:"items"`
	VocabularySize int       `json:"vocabulary_size"`
	FailedStage    string    `json:"failed_stage,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// Summary renders the report as a single log-friendly line.
func (r *TrainReport) Summary() string {
	if r.FailedStage != "" {
		return fmt.Sprintf("training failed at stage %s: %s", r.FailedStage, r.Error)
	}
	return fmt.Sprintf("training complete: fit=%s rows=%d users=%d items=%d vocabulary=%d duration=%s",
		r.FitID, r.Rows, r.Users, r.Items, r.VocabularySize,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}

// datasetRow is one parsed line of the exported dataset.
type datasetRow struct {
	UserID      uint
	FoodID      uint
	Kind        domain.InteractionKind
	Ingredients string
}

var datasetHeader = []string{"user_id", "food_id", "interaction", "ingredients"}

// Export runs stage 1: flatten the interaction history into the CSV dataset.
// An empty history still produces a header-only dataset.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int: number of exported rows.
//   - error: non-nil if the scan or the write fails.
func (t *TrainerService) Export(ctx context.Context) (int, error) {
	records, err := t.interactions.ExportInteractions(ctx)
	if err != nil {
		return 0, fmt.Errorf("stage export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(datasetHeader); err != nil {
		return 0, fmt.Errorf("stage export: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatUint(uint64(rec.UserID), 10),
			strconv.FormatUint(uint64(rec.FoodID), 10),
			string(rec.Kind),
			rec.Ingredients,
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("stage export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("stage export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(t.dataPath), 0755); err != nil {
		return 0, fmt.Errorf("stage export: %w", err)
	}
	if err := writeAtomic(t.dataPath, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("stage export: %w", err)
	}

	logger.CtxInfo(ctx, "Interaction export complete: rows=%d, path=%s", len(records), t.dataPath)
	return len(records), nil
}

// Fit runs stages 2-4: load the dataset, fit the vectorizer and interaction
// matrix, fit the neighbor model, and persist the artifact pair.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *TrainReport: run outcome, also returned on failure with the stage set.
//   - error: non-nil if any stage failed.
func (t *TrainerService) Fit(ctx context.Context) (*TrainReport, error) {
	report := &TrainReport{StartedAt: time.Now()}

	rows, err := t.loadDataset()
	if err != nil {
		return t.fail(ctx, report, "load", err)
	}
	report.Rows = len(rows)

	corpus := make([]string, len(rows))
	for i := range rows {
		corpus[i] = rows[i].Ingredients
	}
	vectorizer := tfidf.Fit(corpus)
	matrix := buildInteractionMatrix(rows)
	report.Users = len(matrix.UserIDs)
	report.Items = len(matrix.FoodIDs)
	report.VocabularySize = vectorizer.Size()

	artifacts := &Artifacts{
		FitID:      uuid.New().String(),
		TrainedAt:  time.Now(),
		Vectorizer: vectorizer,
		Model:      FitNeighborModel(matrix),
	}
	if err := SaveArtifacts(t.artifactsDir, artifacts); err != nil {
		return t.fail(ctx, report, "persist", err)
	}
	report.FitID = artifacts.FitID

	if t.mirror != nil {
		if err := t.uploadArtifacts(ctx); err != nil {
			// The local pair is already good; a mirror failure is not fatal.
			logger.CtxWarn(ctx, "Failed to mirror artifacts: error=%v", err)
		}
	}

	report.FinishedAt = time.Now()
	logger.CtxInfo(ctx, "%s", report.Summary())
	t.sendReport(ctx, report)
	return report, nil
}

// Run executes the full pipeline, export included.
func (t *TrainerService) Run(ctx context.Context) (*TrainReport, error) {
	if _, err := t.Export(ctx); err != nil {
		report := &TrainReport{
			StartedAt:   time.Now(),
			FinishedAt:  time.Now(),
			FailedStage: "export",
			Error:       err.Error(),
		}
		t.sendReport(ctx, report)
		return report, err
	}
	return t.Fit(ctx)
}

func (t *TrainerService) fail(ctx context.Context, report *TrainReport, stage string, err error) (*TrainReport, error) {
	report.FailedStage = stage
	report.Error = err.Error()
	report.FinishedAt = time.Now()
	logger.CtxError(ctx, "%s", report.Summary())
	t.sendReport(ctx, report)
	return report, fmt.Errorf("stage %s: %w", stage, err)
}

func (t *TrainerService) sendReport(ctx context.Context, report *TrainReport) {
	if t.reporter == nil || !t.reporter.IsEnabled() {
		return
	}
	if err := t.reporter.Send(ctx, report); err != nil {
		logger.CtxWarn(ctx, "Failed to deliver training report: error=%v", err)
	}
}

// loadDataset reads the exported dataset back. A missing file is reported as
// an explicit "run export first" failure instead of surfacing later in the
// pipeline.
func (t *TrainerService) loadDataset() ([]datasetRow, error) {
	f, err := os.Open(t.dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dataset %s not found: run the export stage first", t.dataPath)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(datasetHeader)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", t.dataPath)
	}

	rows := make([]datasetRow, 0, len(all)-1)
	for _, rec := range all[1:] {
		userID, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad user_id %q: %w", rec[0], err)
		}
		foodID, err := strconv.ParseUint(rec[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad food_id %q: %w", rec[1], err)
		}
		rows = append(rows, datasetRow{
			UserID:      uint(userID),
			FoodID:      uint(foodID),
			Kind:        domain.InteractionKind(rec[2]),
			Ingredients: rec[3],
		})
	}
	return rows, nil
}

func (t *TrainerService) uploadArtifacts(ctx context.Context) error {
	for _, name := range []string{VectorizerArtifact, ModelArtifact} {
		path := filepath.Join(t.artifactsDir, name)
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}
		err = t.mirror.Upload(ctx, name, f, info.Size(), "application/json")
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
	}
	return nil
}

// InteractionMatrix is the user x item grid of preference polarity built
// from one export snapshot. Rows follow UserIDs, columns follow FoodIDs,
// both sorted ascending so repeated runs over the same data are identical.
type InteractionMatrix struct {
	UserIDs []uint
	FoodIDs []uint
	Rows    [][]int8
}

// buildInteractionMatrix pivots dataset rows into the matrix. For each
// (user, item) pair any like or order wins over a dislike; a dislike alone
// scores -1; no signal stays 0.
func buildInteractionMatrix(rows []datasetRow) *InteractionMatrix {
	userSet := make(map[uint]bool)
	foodSet := make(map[uint]bool)
	type pair struct{ user, food uint }
	positive := make(map[pair]bool)
	negative := make(map[pair]bool)

	for _, r := range rows {
		userSet[r.UserID] = true
		foodSet[r.FoodID] = true
		p := pair{r.UserID, r.FoodID}
		switch r.Kind {
		case domain.InteractionLike, domain.InteractionOrder:
			positive[p] = true
		case domain.InteractionDislike:
			negative[p] = true
		}
	}

	userIDs := sortedIDs(userSet)
	foodIDs := sortedIDs(foodSet)

	matrix := &InteractionMatrix{
		UserIDs: userIDs,
		FoodIDs: foodIDs,
		Rows:    make([][]int8, len(userIDs)),
	}
	for i, u := range userIDs {
		row := make([]int8, len(foodIDs))
		for j, f := range foodIDs {
			p := pair{u, f}
			switch {
			case positive[p]:
				row[j] = 1
			case negative[p]:
				row[j] = -1
			}
		}
		matrix.Rows[i] = row
	}
	return matrix
}

func sortedIDs(set map[uint]bool) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
