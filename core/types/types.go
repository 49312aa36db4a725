// Package types defines core domain types shared across all layers.
// This package contains NO estimation logic - only type definitions.
package types

// TransportMode represents how a product is shipped
type TransportMode string

const (
	TransportAir  TransportMode = "AIR"
	TransportSea  TransportMode = "SEA"
	TransportRoad TransportMode = "ROAD"
	TransportRail TransportMode = "RAIL"
)

// String returns the string representation of the transport mode
func (m TransportMode) String() string {
	return string(m)
}

// IsValid checks if the mode is a known transport mode
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportAir, TransportSea, TransportRoad, TransportRail:
		return true
	default:
		return false
	}
}

// TransportModes returns all transport modes in canonical order
func TransportModes() []TransportMode {
	return []TransportMode{TransportAir, TransportSea, TransportRoad, TransportRail}
}

// ParseTransportMode parses a string into a TransportMode
func ParseTransportMode(s string) (TransportMode, bool) {
	m := TransportMode(s)
	return m, m.IsValid()
}

// Intensity is the coarse manufacturing-intensity bucket approximating
// process energy and chemical intensity
type Intensity string

const (
	IntensityLow    Intensity = "LOW"
	IntensityMedium Intensity = "MEDIUM"
	IntensityHigh   Intensity = "HIGH"
)

// String returns the string representation of the intensity
func (i Intensity) String() string {
	return string(i)
}

// IsValid checks if the intensity is a known bucket
func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

// Intensities returns all intensity buckets in canonical order
func Intensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh}
}

// ParseIntensity parses a string into an Intensity
func ParseIntensity(s string) (Intensity, bool) {
	i := Intensity(s)
	return i, i.IsValid()
}

// TrainingRecord is one labeled synthetic example. Records are created in
// bulk by the dataset generator, are immutable, and are consumed only by
// the trainer. TotalCO2Kg is the sum of the three components times a small
// multiplicative noise factor, so it is close to but not exactly the sum.
type TrainingRecord struct {
	Material         string        `json:"material"`
	WeightKg         float64       `json:"weight_kg"`
	TransportMode    TransportMode `json:"transport_mode"`
	DistanceKm       float64       `json:"transport_distance_km"`
	Intensity        Intensity     `json:"manufacturing_intensity"`
	MaterialCO2      float64       `json:"material_co2"`
	ManufacturingCO2 float64       `json:"manufacturing_co2"`
	TransportCO2     float64       `json:"transport_co2"`
	TotalCO2Kg       float64       `json:"total_co2_kg"`
}

// Metrics holds holdout evaluation results. These numbers are the only
// accuracy contract the system makes; accuracy for inputs far outside the
// synthetic training distribution is a known limitation.
type Metrics struct {
	R2   float64 `json:"r2_score"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}
