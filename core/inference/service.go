// Package inference turns raw user inputs into a learned total estimate, an
// independently computed formula-based breakdown, a heuristic confidence
// band, and derived compensation and equivalency figures.
//
// The service owns exactly one model artifact for the process lifetime. The
// artifact is loaded once (on first use), then shared read-only across all
// concurrent requests; Predict performs no I/O beyond that one-time load
// and needs no cross-request synchronization.
package inference

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"carbontrace/core/artifact"
	"carbontrace/core/factors"
	"carbontrace/core/types"
	"carbontrace/internal/errors"
	"carbontrace/internal/logging"
)

// Service serves predictions against a single loaded artifact
type Service struct {
	path     string
	formulas *factors.Table

	// current is the loaded artifact; nil until the first successful load.
	// Reads go through the atomic pointer so Predict never takes a lock.
	current atomic.Pointer[artifact.Artifact]

	// loadMu serializes the one-time load so racing first requests trigger
	// exactly one load
	loadMu sync.Mutex
}

// NewService creates a service that lazily loads the artifact at path on
// first use. The formulas table feeds the breakdown path only; nil selects
// the built-in table.
func NewService(artifactPath string, formulas *factors.Table) (*Service, error) {
	if formulas == nil {
		formulas = factors.Builtin()
	}
	if err := formulas.Validate(); err != nil {
		return nil, err
	}
	return &Service{path: artifactPath, formulas: formulas}, nil
}

// NewServiceWithArtifact creates a service around an already-trained
// artifact, bypassing the disk load
func NewServiceWithArtifact(a *artifact.Artifact, formulas *factors.Table) (*Service, error) {
	s, err := NewService("", formulas)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	s.current.Store(a)
	return s, nil
}

// Swap atomically replaces the served artifact with a newly trained one.
// In-flight predictions keep the artifact they started with.
func (s *Service) Swap(a *artifact.Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.current.Store(a)
	logging.Info("artifact swapped",
		zap.Time("trained_at", a.TrainedAt),
		zap.Int("samples", a.SampleCount),
	)
	return nil
}

// Artifact returns the loaded artifact, performing the one-time load if
// needed. The load is bounded by the caller's context; a failed or timed
// out load is NOT cached as a failure and is retried on the next call.
func (s *Service) Artifact(ctx context.Context) (*artifact.Artifact, error) {
	if a := s.current.Load(); a != nil {
		return a, nil
	}
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) (*artifact.Artifact, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Double-check: another request may have completed the load while we
	// waited on the mutex
	if a := s.current.Load(); a != nil {
		return a, nil
	}
	if s.path == "" {
		return nil, errors.New(errors.TypeArtifactUnavailable, "no artifact configured")
	}

	type loaded struct {
		a   *artifact.Artifact
		err error
	}
	ch := make(chan loaded, 1)
	start := time.Now()
	go func() {
		a, err := artifact.Load(s.path)
		ch <- loaded{a, err}
	}()

	select {
	case <-ctx.Done():
		// Fatal to this request only; the next request retries the load
		return nil, errors.ArtifactUnavailable("artifact load interrupted", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			logging.Warn("artifact load failed",
				zap.String("path", s.path),
				zap.Error(r.err),
			)
			return nil, r.err
		}
		s.current.Store(r.a)
		logging.Info("artifact loaded",
			zap.String("path", s.path),
			zap.Duration("took", time.Since(start)),
			zap.Float64("r2", r.a.Metrics.R2),
			zap.Int("samples", r.a.SampleCount),
		)
		return r.a, nil
	}
}

// ModelInfo is the metadata exposed without requiring a prediction
type ModelInfo struct {
	Metrics      types.Metrics `json:"metrics"`
	FeatureNames []string      `json:"feature_names"`
	TrainedAt    time.Time     `json:"trained_at"`
	SampleCount  int           `json:"sample_count"`
}

// Materials returns the material vocabulary of the loaded artifact
func (s *Service) Materials(ctx context.Context) ([]string, error) {
	a, err := s.Artifact(ctx)
	if err != nil {
		return nil, err
	}
	return a.MaterialEncoder.Vocabulary(), nil
}

// Info returns the loaded model's evaluation metrics and feature names
func (s *Service) Info(ctx context.Context) (*ModelInfo, error) {
	a, err := s.Artifact(ctx)
	if err != nil {
		return nil, err
	}
	return &ModelInfo{
		Metrics:      a.Metrics,
		FeatureNames: a.FeatureNames,
		TrainedAt:    a.TrainedAt,
		SampleCount:  a.SampleCount,
	}, nil
}
