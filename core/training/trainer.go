// Package training fits the ensemble model on a synthetic dataset and emits
// the serving artifact. Training is an offline batch step: it encodes the
// categorical columns, holds out 20% of the data for evaluation, fits the
// forest, and reports R2/RMSE/MAE plus a feature-importance ranking.
package training

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"carbontrace/core/artifact"
	"carbontrace/core/encoding"
	"carbontrace/core/forest"
	"carbontrace/core/types"
	"carbontrace/internal/errors"
	"carbontrace/internal/logging"
)

// Config controls one training run
type Config struct {
	// Seed drives the train/holdout shuffle and the forest's randomness
	Seed uint64

	// HoldoutFraction is the share of records reserved for evaluation
	HoldoutFraction float64

	// Forest bounds the ensemble
	Forest forest.Config
}

// DefaultConfig returns the standard training setup for a given seed
func DefaultConfig(seed uint64) Config {
	fc := forest.DefaultConfig()
	fc.Seed = seed
	return Config{
		Seed:            seed,
		HoldoutFraction: 0.2,
		Forest:          fc,
	}
}

// Importance pairs a feature name with its normalized importance weight
type Importance struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Result is the output of one training run
type Result struct {
	Artifact    *artifact.Artifact
	Metrics     types.Metrics
	Importances []Importance
}

// Train fits the model on the dataset and returns the artifact plus holdout
// metrics. A failure anywhere aborts the run; no partial artifact escapes.
func Train(records []types.TrainingRecord, cfg Config) (*Result, error) {
	if len(records) < 10 {
		return nil, errors.Configf("dataset too small to split: %d records", len(records))
	}
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction >= 1 {
		return nil, errors.Configf("holdout fraction must be in (0,1), got %v", cfg.HoldoutFraction)
	}

	logDatasetStats(records)

	// Fit one encoder per categorical column from the observed values
	materials := make([]string, len(records))
	modes := make([]string, len(records))
	intensities := make([]string, len(records))
	for i, r := range records {
		materials[i] = r.Material
		modes[i] = r.TransportMode.String()
		intensities[i] = r.Intensity.String()
	}
	materialEnc := encoding.Fit("material", materials)
	transportEnc := encoding.Fit("transport_mode", modes)
	intensityEnc := encoding.Fit("manufacturing_intensity", intensities)

	// Build the fixed-order feature matrix:
	// [material_code, weight_kg, transport_code, distance_km, intensity_code]
	x := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		mc, err := materialEnc.Encode(r.Material)
		if err != nil {
			return nil, err
		}
		tc, err := transportEnc.Encode(r.TransportMode.String())
		if err != nil {
			return nil, err
		}
		ic, err := intensityEnc.Encode(r.Intensity.String())
		if err != nil {
			return nil, err
		}
		x[i] = []float64{float64(mc), r.WeightKg, float64(tc), r.DistanceKm, float64(ic)}
		y[i] = r.TotalCO2Kg
	}

	trainIdx, holdoutIdx := split(len(records), cfg.HoldoutFraction, cfg.Seed)

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainX[i] = x[idx]
		trainY[i] = y[idx]
	}

	model, err := forest.Fit(trainX, trainY, cfg.Forest)
	if err != nil {
		return nil, err
	}

	metrics := evaluate(model, x, y, holdoutIdx)

	importances := make([]Importance, len(artifact.FeatureNames))
	for i, name := range artifact.FeatureNames {
		importances[i] = Importance{Feature: name, Weight: model.Importances[i]}
	}
	sort.Slice(importances, func(a, b int) bool {
		return importances[a].Weight > importances[b].Weight
	})

	logging.Info("training complete",
		zap.Int("samples", len(records)),
		zap.Int("holdout", len(holdoutIdx)),
		zap.Float64("r2", metrics.R2),
		zap.Float64("rmse", metrics.RMSE),
		zap.Float64("mae", metrics.MAE),
		zap.Any("feature_importance", importances),
	)

	return &Result{
		Artifact: &artifact.Artifact{
			Model:            model,
			MaterialEncoder:  materialEnc,
			TransportEncoder: transportEnc,
			IntensityEncoder: intensityEnc,
			FeatureNames:     artifact.FeatureNames,
			Metrics:          metrics,
			TrainedAt:        time.Now().UTC(),
			SampleCount:      len(records),
			Seed:             cfg.Seed,
		},
		Metrics:     metrics,
		Importances: importances,
	}, nil
}

// split shuffles record indices with a seeded source and carves off the
// holdout tail, reproducible across runs with the same seed
func split(n int, holdout float64, seed uint64) (train, eval []int) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	cut := n - int(math.Round(float64(n)*holdout))
	if cut <= 0 || cut >= n {
		cut = n - 1
	}
	return perm[:cut], perm[cut:]
}

// evaluate computes holdout R2, RMSE and MAE
func evaluate(model *forest.Forest, x [][]float64, y []float64, holdout []int) types.Metrics {
	predicted := make([]float64, len(holdout))
	actual := make([]float64, len(holdout))

	sumSq, sumAbs := 0.0, 0.0
	for i, idx := range holdout {
		p := model.Predict(x[idx])
		predicted[i] = p
		actual[i] = y[idx]

		d := p - y[idx]
		sumSq += d * d
		sumAbs += math.Abs(d)
	}

	n := float64(len(holdout))
	return types.Metrics{
		R2:   stat.RSquaredFrom(predicted, actual, nil),
		RMSE: math.Sqrt(sumSq / n),
		MAE:  sumAbs / n,
	}
}

// logDatasetStats reports the target distribution of the generated data
func logDatasetStats(records []types.TrainingRecord) {
	min, max := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, r := range records {
		if r.TotalCO2Kg < min {
			min = r.TotalCO2Kg
		}
		if r.TotalCO2Kg > max {
			max = r.TotalCO2Kg
		}
		sum += r.TotalCO2Kg
	}
	logging.Info("dataset statistics",
		zap.Int("samples", len(records)),
		zap.Float64("co2_min", min),
		zap.Float64("co2_max", max),
		zap.Float64("co2_mean", sum/float64(len(records))),
	)
}
