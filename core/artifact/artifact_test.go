package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrace/core/encoding"
	"carbontrace/core/forest"
	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// testArtifact builds a minimal but valid artifact around a single-leaf tree
func testArtifact() *Artifact {
	return &Artifact{
		Model: &forest.Forest{
			Trees:       []*forest.Tree{{Root: &forest.Node{Value: 7.5}}},
			NumFeatures: len(FeatureNames),
			Importances: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		},
		MaterialEncoder:  encoding.Fit("material", []string{"Cotton", "Steel"}),
		TransportEncoder: encoding.Fit("transport_mode", []string{"AIR", "SEA", "ROAD", "RAIL"}),
		IntensityEncoder: encoding.Fit("manufacturing_intensity", []string{"LOW", "MEDIUM", "HIGH"}),
		FeatureNames:     FeatureNames,
		Metrics:          types.Metrics{R2: 0.99, RMSE: 1.2, MAE: 0.8},
		TrainedAt:        time.Now().UTC().Truncate(time.Second),
		SampleCount:      100,
		Seed:             42,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	a := testArtifact()

	require.NoError(t, Save(a, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, a.FeatureNames, loaded.FeatureNames)
	assert.Equal(t, a.Metrics, loaded.Metrics)
	assert.Equal(t, a.SampleCount, loaded.SampleCount)
	assert.Equal(t, a.Seed, loaded.Seed)
	assert.Equal(t, a.MaterialEncoder.Vocabulary(), loaded.MaterialEncoder.Vocabulary())

	// The loaded model must predict identically
	probe := []float64{0, 1.5, 0, 8000, 1}
	assert.Equal(t, a.Model.Predict(probe), loaded.Model.Predict(probe))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeArtifactUnavailable))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeArtifactUnavailable))
}

func TestValidateRejectsIncompleteArtifacts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"nil model", func(a *Artifact) { a.Model = nil }},
		{"no trees", func(a *Artifact) { a.Model.Trees = nil }},
		{"nil material encoder", func(a *Artifact) { a.MaterialEncoder = nil }},
		{"empty transport encoder", func(a *Artifact) {
			a.TransportEncoder = encoding.Fit("transport_mode", nil)
		}},
		{"nil intensity encoder", func(a *Artifact) { a.IntensityEncoder = nil }},
		{"feature width mismatch", func(a *Artifact) { a.FeatureNames = []string{"just one"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := testArtifact()
			tc.mutate(a)
			assert.Error(t, a.Validate())
		})
	}
}

func TestSaveRefusesInvalidArtifact(t *testing.T) {
	a := testArtifact()
	a.Model = nil

	path := filepath.Join(t.TempDir(), "model.gob")
	require.Error(t, Save(a, path))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
