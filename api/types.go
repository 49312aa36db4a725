package api

import (
	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// Numeric bounds enforced at the request boundary. The engine itself never
// rejects out-of-range numbers; it extrapolates, so range policy lives here.
const (
	maxWeightKg   = 1000.0
	maxDistanceKm = 50000.0
)

// PredictRequest is the body of POST /predict
type PredictRequest struct {
	ProductName            string  `json:"product_name"`
	Material               string  `json:"material"`
	WeightKg               float64 `json:"weight_kg"`
	TransportMode          string  `json:"transport_mode"`
	TransportDistanceKm    float64 `json:"transport_distance_km"`
	ManufacturingIntensity string  `json:"manufacturing_intensity"`
}

// Validate enforces presence and numeric ranges before the engine runs
func (r *PredictRequest) Validate() *errors.Error {
	if r.Material == "" {
		return errors.New(errors.TypeRange, "material is required")
	}
	if r.TransportMode == "" {
		return errors.New(errors.TypeRange, "transport_mode is required")
	}
	if r.WeightKg <= 0 || r.WeightKg > maxWeightKg {
		return errors.Range("weight_kg", r.WeightKg, "must be between 0 and 1000 kg")
	}
	if r.TransportDistanceKm < 0 || r.TransportDistanceKm > maxDistanceKm {
		return errors.Range("transport_distance_km", r.TransportDistanceKm, "must be between 0 and 50000 km")
	}
	return nil
}

// PredictResponse is the body of a successful prediction
type PredictResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	*types.PredictionResult
}

// MaterialsResponse is the body of GET /materials
type MaterialsResponse struct {
	Success   bool     `json:"success"`
	Materials []string `json:"materials"`
}

// ErrorBody is the error envelope shared by all endpoints
type ErrorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
