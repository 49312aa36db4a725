// Package artifact defines the immutable bundle handed from training to
// serving: the fitted model, the three fitted encoders, the feature name
// list and the holdout metrics. The on-disk layout (gob) is an internal
// contract between trainer and inference engine, not a public wire format.
// A published artifact is never mutated; retraining produces a new file
// that replaces the old one atomically.
package artifact

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"carbontrace/core/encoding"
	"carbontrace/core/forest"
	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// FeatureNames is the fixed feature order of the model input vector:
// [material_code, weight_kg, transport_code, distance_km, intensity_code]
var FeatureNames = []string{"Material", "Weight", "Transport Mode", "Distance", "Manufacturing"}

// Artifact is the sole hand-off between training and serving
type Artifact struct {
	Model *forest.Forest

	MaterialEncoder  *encoding.Encoder
	TransportEncoder *encoding.Encoder
	IntensityEncoder *encoding.Encoder

	FeatureNames []string
	Metrics      types.Metrics

	// Training provenance, for diagnostics
	TrainedAt   time.Time
	SampleCount int
	Seed        uint64
}

// Validate checks that the bundle is complete enough to serve
func (a *Artifact) Validate() error {
	if a.Model == nil || len(a.Model.Trees) == 0 {
		return errors.New(errors.TypeArtifactUnavailable, "artifact has no fitted model")
	}
	if a.MaterialEncoder == nil || a.MaterialEncoder.Len() == 0 {
		return errors.New(errors.TypeArtifactUnavailable, "artifact has no material encoder")
	}
	if a.TransportEncoder == nil || a.TransportEncoder.Len() == 0 {
		return errors.New(errors.TypeArtifactUnavailable, "artifact has no transport encoder")
	}
	if a.IntensityEncoder == nil || a.IntensityEncoder.Len() == 0 {
		return errors.New(errors.TypeArtifactUnavailable, "artifact has no intensity encoder")
	}
	if len(a.FeatureNames) != a.Model.NumFeatures {
		return errors.Newf(errors.TypeArtifactUnavailable, "feature name count %d does not match model width %d", len(a.FeatureNames), a.Model.NumFeatures)
	}
	return nil
}

// Save serializes the artifact to path. The write goes to a temp file in
// the same directory followed by a rename, so a failed training run never
// clobbers a good artifact.
func Save(a *Artifact, path string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(a); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Load deserializes and validates an artifact from path
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ArtifactUnavailable("opening artifact", err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, errors.ArtifactUnavailable("decoding artifact", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
