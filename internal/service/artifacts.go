package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/plateful/plateful/internal/tfidf"
)

// Artifact file names are fixed and well known: the trainer writes them and
// the online path loads them at startup.
const (
	VectorizerArtifact = "ingredient_vectorizer.json"
	ModelArtifact      = "recommendation_model.json"

	artifactVersion = 1
)

// Artifacts is the matched pair produced by one training run. The vectorizer
// and the interaction model are fit jointly against the same snapshot, so
// they are only valid together; FitID ties them to each other.
type Artifacts struct {
	FitID      string
	TrainedAt  time.Time
	Vectorizer *tfidf.Vectorizer
	Model      *NeighborModel
}

type vectorizerEnvelope struct {
	Version    int               `json:"version"`
	FitID      string            `json:"fit_id"`
	TrainedAt  time.Time         `json:"trained_at"`
	Vectorizer *tfidf.Vectorizer `json:"vectorizer"`
}

type modelEnvelope struct {
	Version   int            `json:"version"`
	FitID     string         `json:"fit_id"`
	TrainedAt time.Time      `json:"trained_at"`
	Model     *NeighborModel `json:"model"`
}

// SaveArtifacts persists the artifact pair under dir. Each file is written
// to a temp file and atomically renamed, so a failed run never clobbers the
// last good artifacts with a half-written one.
// Parameters:
//   - dir: artifact directory, created if missing.
//   - a: artifact pair to persist.
// Returns:
//   - error: non-nil if encoding or any write fails.
func SaveArtifacts(dir string, a *Artifacts) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	vecData, err := json.Marshal(&vectorizerEnvelope{
		Version:    artifactVersion,
		FitID:      a.FitID,
		TrainedAt:  a.TrainedAt,
		Vectorizer: a.Vectorizer,
	})
	if err != nil {
		return fmt.Errorf("failed to encode vectorizer: %w", err)
	}

	modelData, err := json.Marshal(&modelEnvelope{
		Version:   artifactVersion,
		FitID:     a.FitID,
		TrainedAt: a.TrainedAt,
		Model:     a.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, VectorizerArtifact), vecData); err != nil {
		return fmt.Errorf("failed to write vectorizer artifact: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, ModelArtifact), modelData); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// LoadArtifacts reads and validates the artifact pair from dir. Any failure
// (missing file, corrupt JSON, version or pairing mismatch, bad model shape)
// is returned as an error; callers treat that as "recommendations
// unavailable" rather than a crash.
// Parameters:
//   - dir: artifact directory to read from.
// Returns:
//   - *Artifacts: validated artifact pair.
//   - error: non-nil if the pair cannot be used.
func LoadArtifacts(dir string) (*Artifacts, error) {
	vecData, err := os.ReadFile(filepath.Join(dir, VectorizerArtifact))
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer artifact: %w", err)
	}
	var vec vectorizerEnvelope
	if err := json.Unmarshal(vecData, &vec); err != nil {
		return nil, fmt.Errorf("corrupt vectorizer artifact: %w", err)
	}

	modelData, err := os.ReadFile(filepath.Join(dir, ModelArtifact))
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	var model modelEnvelope
	if err := json.Unmarshal(modelData, &model); err != nil {
		return nil, fmt.Errorf("corrupt model artifact: %w", err)
	}

	if vec.Version != artifactVersion || model.Version != artifactVersion {
		return nil, fmt.Errorf("unsupported artifact version: vectorizer=%d model=%d",
			vec.Version, model.Version)
	}
	if vec.FitID == "" || vec.FitID != model.FitID {
		return nil, fmt.Errorf("artifact pair mismatch: vectorizer fit %q, model fit %q",
			vec.FitID, model.FitID)
	}
	if vec.Vectorizer == nil || model.Model == nil {
		return nil, fmt.Errorf("artifact payload missing")
	}
	if err := model.Model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	return &Artifacts{
		FitID:      vec.FitID,
		TrainedAt:  vec.TrainedAt,
		Vectorizer: vec.Vectorizer,
		Model:      model.Model,
	}, nil
}

// writeAtomic writes data to path via a temp file in the same directory and
// an atomic rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
