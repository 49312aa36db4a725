// Package api - HTTP handler for carbon prediction
// This handler wraps the engine - it contains NO estimation logic.
// All logic is delegated to core packages.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbontrace/core/inference"
	"carbontrace/core/types"
	"carbontrace/db/history"
	"carbontrace/internal/errors"
	"carbontrace/internal/logging"
)

const defaultProductName = "Unknown Product"

// handlePredict handles POST /predict
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.NewString()

	// Parse request
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	// Validate before the engine runs
	if err := req.Validate(); err != nil {
		s.writeError(w, string(err.Type), err.Message, http.StatusBadRequest)
		return
	}

	// Execute engine (NO EMISSION LOGIC HERE)
	result, err := s.engine.Predict(ctx, inference.Query{
		Material:      req.Material,
		WeightKg:      req.WeightKg,
		TransportMode: req.TransportMode,
		DistanceKm:    req.TransportDistanceKm,
		Intensity:     req.ManufacturingIntensity,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	// Log the prediction best-effort; a storage failure never fails the request
	s.logPrediction(ctx, &req, result, requestID)

	s.writeJSON(w, PredictResponse{
		Success:          true,
		RequestID:        requestID,
		PredictionResult: result,
	}, http.StatusOK)
}

// writeDomainError maps engine error types to HTTP statuses
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		s.writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch e.Type {
	case errors.TypeUnknownCategory, errors.TypeRange:
		status = http.StatusBadRequest
	case errors.TypeArtifactUnavailable:
		status = http.StatusServiceUnavailable
	}
	s.writeError(w, string(e.Type), e.Message, status)
}

// logPrediction appends the query and its result to the prediction log
func (s *Server) logPrediction(ctx context.Context, req *PredictRequest, result *types.PredictionResult, requestID string) {
	if s.store == nil {
		return
	}

	name := req.ProductName
	if name == "" {
		name = defaultProductName
	}

	err := s.store.Insert(ctx, &history.Entry{
		ProductName:      name,
		Material:         req.Material,
		WeightKg:         req.WeightKg,
		TransportMode:    req.TransportMode,
		DistanceKm:       req.TransportDistanceKm,
		PredictedCO2Kg:   result.CO2Kg,
		MaterialCO2:      result.Breakdown.MaterialCO2,
		ManufacturingCO2: result.Breakdown.ManufacturingCO2,
		TransportCO2:     result.Breakdown.TransportCO2,
		TreesToOffset:    result.Compensation.TreesPerYear,
	})
	if err != nil {
		logging.Warn("prediction log insert failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}
