package forest

import (
	"math"

	"golang.org/x/exp/rand"

	"carbontrace/internal/errors"
)

// Config bounds the ensemble to balance fit quality against overfitting
type Config struct {
	// Trees is the ensemble size
	Trees int

	// MaxDepth bounds tree depth
	MaxDepth int

	// MinSamplesSplit is the smallest node that may still be split
	MinSamplesSplit int

	// MinSamplesLeaf is the smallest allowed leaf
	MinSamplesLeaf int

	// MaxFeatures is the per-split random feature subset size; <=0 means
	// all features
	MaxFeatures int

	// Seed drives bootstrap sampling and feature subset draws
	Seed uint64
}

// DefaultConfig returns the standard ensemble bounds
func DefaultConfig() Config {
	return Config{
		Trees:           150,
		MaxDepth:        20,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		MaxFeatures:     4,
		Seed:            42,
	}
}

// Forest is a fitted bagged ensemble of regression trees
type Forest struct {
	Trees       []*Tree
	NumFeatures int

	// Importances is the normalized squared-error decrease credited to each
	// feature, averaged over trees; entries sum to 1
	Importances []float64
}

// Fit trains the ensemble on a feature matrix and target vector. Training
// is deterministic for a fixed Config.Seed and single-threaded.
func Fit(x [][]float64, y []float64, cfg Config) (*Forest, error) {
	if len(x) == 0 {
		return nil, errors.New(errors.TypeInternal, "empty training matrix")
	}
	if len(x) != len(y) {
		return nil, errors.Newf(errors.TypeInternal, "feature/target length mismatch: %d vs %d", len(x), len(y))
	}
	if cfg.Trees <= 0 {
		return nil, errors.Newf(errors.TypeInternal, "tree count must be positive, got %d", cfg.Trees)
	}

	numFeatures := len(x[0])
	for i, row := range x {
		if len(row) != numFeatures {
			return nil, errors.Newf(errors.TypeInternal, "row %d has %d features, want %d", i, len(row), numFeatures)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := len(x)

	f := &Forest{
		Trees:       make([]*Tree, 0, cfg.Trees),
		NumFeatures: numFeatures,
		Importances: make([]float64, numFeatures),
	}

	for t := 0; t < cfg.Trees; t++ {
		// Bootstrap: n draws with replacement
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}

		b := &treeBuilder{
			x:           x,
			y:           y,
			cfg:         cfg,
			rng:         rng,
			importances: make([]float64, numFeatures),
		}
		tree := &Tree{Root: b.grow(sample, 0)}
		f.Trees = append(f.Trees, tree)

		// Normalize this tree's impurity decreases before averaging so
		// deep trees do not dominate the ranking
		total := 0.0
		for _, v := range b.importances {
			total += v
		}
		if total > 0 {
			for i, v := range b.importances {
				f.Importances[i] += v / total
			}
		}
	}

	total := 0.0
	for _, v := range f.Importances {
		total += v
	}
	if total > 0 {
		for i := range f.Importances {
			f.Importances[i] /= total
		}
	}

	return f, nil
}

// Predict returns the ensemble mean for one feature vector
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(f.Trees))
}
