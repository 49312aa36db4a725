package inference

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrace/core/artifact"
	"carbontrace/core/encoding"
	"carbontrace/core/factors"
	"carbontrace/core/forest"
	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// leafArtifact builds an artifact whose model always predicts the same total,
// so every downstream figure can be checked exactly
func leafArtifact(total float64) *artifact.Artifact {
	table := factors.Builtin()
	return &artifact.Artifact{
		Model: &forest.Forest{
			Trees:       []*forest.Tree{{Root: &forest.Node{Value: total}}},
			NumFeatures: len(artifact.FeatureNames),
			Importances: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		},
		MaterialEncoder:  encoding.Fit("material", table.MaterialNames()),
		TransportEncoder: encoding.Fit("transport_mode", []string{"AIR", "SEA", "ROAD", "RAIL"}),
		IntensityEncoder: encoding.Fit("manufacturing_intensity", []string{"LOW", "MEDIUM", "HIGH"}),
		FeatureNames:     artifact.FeatureNames,
		Metrics:          types.Metrics{R2: 0.95, RMSE: 2.0, MAE: 1.5},
		TrainedAt:        time.Now().UTC(),
		SampleCount:      1000,
		Seed:             42,
	}
}

func leafService(t *testing.T, total float64) *Service {
	t.Helper()
	s, err := NewServiceWithArtifact(leafArtifact(total), nil)
	require.NoError(t, err)
	return s
}

func TestPredictFullResult(t *testing.T) {
	s := leafService(t, 40.0)

	result, err := s.Predict(context.Background(), Query{
		Material:      "Cotton",
		WeightKg:      0.5,
		TransportMode: "AIR",
		DistanceKm:    8000,
		Intensity:     "MEDIUM",
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, result.CO2Kg)
	assert.Equal(t, 36.8, result.ConfidenceInterval.Lower)
	assert.Equal(t, 43.2, result.ConfidenceInterval.Upper)

	// Formula breakdown: 0.5*5.5, 0.5*1.5*1.4, 0.5*(8000/1000)*0.95
	assert.Equal(t, 2.75, result.Breakdown.MaterialCO2)
	assert.Equal(t, 1.05, result.Breakdown.ManufacturingCO2)
	assert.Equal(t, 3.8, result.Breakdown.TransportCO2)
	assert.Equal(t, 36.2, result.Breakdown.MaterialsPercent)
	assert.Equal(t, 13.8, result.Breakdown.ManufacturingPercent)
	assert.Equal(t, 50.0, result.Breakdown.TransportPercent)
	assert.InDelta(t, 100.0,
		result.Breakdown.MaterialsPercent+result.Breakdown.ManufacturingPercent+result.Breakdown.TransportPercent,
		0.1)

	assert.Equal(t, 2.0, result.Compensation.TreesPerYear)
	assert.Equal(t, 2, result.Compensation.TreesDisplay)
	assert.Equal(t, 0.04, result.Compensation.RECCredits)
	assert.Equal(t, 16.0, result.Compensation.VeganDays)
	assert.Equal(t, "Plant 2 trees to offset this footprint", result.Compensation.Message)

	assert.Equal(t, 160.0, result.Equivalency.CarKm)
	assert.Equal(t, 5000, result.Equivalency.SmartphoneCharges)
	assert.Equal(t, "Driving a car for 160.0 km", result.Equivalency.Display)
}

func TestPredictIsIdempotent(t *testing.T) {
	s := leafService(t, 12.3)
	q := Query{Material: "Steel", WeightKg: 2, TransportMode: "SEA", DistanceKm: 15000, Intensity: "HIGH"}

	a, err := s.Predict(context.Background(), q)
	require.NoError(t, err)
	b, err := s.Predict(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPredictDefaultsIntensityToMedium(t *testing.T) {
	s := leafService(t, 10.0)

	blank, err := s.Predict(context.Background(), Query{
		Material: "Cotton", WeightKg: 1, TransportMode: "ROAD", DistanceKm: 500,
	})
	require.NoError(t, err)

	explicit, err := s.Predict(context.Background(), Query{
		Material: "Cotton", WeightKg: 1, TransportMode: "ROAD", DistanceKm: 500, Intensity: "MEDIUM",
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, blank)
}

func TestPredictUnknownCategories(t *testing.T) {
	s := leafService(t, 10.0)

	_, err := s.Predict(context.Background(), Query{
		Material: "Vibranium", WeightKg: 1, TransportMode: "AIR", DistanceKm: 100,
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownCategory))

	_, err = s.Predict(context.Background(), Query{
		Material: "Cotton", WeightKg: 1, TransportMode: "TELEPORT", DistanceKm: 100,
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownCategory))

	_, err = s.Predict(context.Background(), Query{
		Material: "Cotton", WeightKg: 1, TransportMode: "AIR", DistanceKm: 100, Intensity: "EXTREME",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownCategory))
}

func TestBuildCompensation(t *testing.T) {
	c := buildCompensation(40)
	assert.Equal(t, 2.0, c.TreesPerYear)
	assert.Equal(t, 2, c.TreesDisplay)
	assert.Equal(t, 0.04, c.RECCredits)
	assert.Equal(t, 16.0, c.VeganDays)
}

func TestBuildCompensationTinyFootprint(t *testing.T) {
	c := buildCompensation(0.1)
	assert.Equal(t, 0.01, c.TreesPerYear)
	assert.Equal(t, 1, c.TreesDisplay)
	assert.Equal(t, "Plant 1 tree to offset this footprint", c.Message)
}

func TestBuildEquivalency(t *testing.T) {
	e := buildEquivalency(25)
	assert.Equal(t, 100.0, e.CarKm)
	assert.Equal(t, 3125, e.SmartphoneCharges)
	assert.Equal(t, 41.7, e.WashingLoads)
	assert.Equal(t, "Driving a car for 100.0 km", e.Display)
}
