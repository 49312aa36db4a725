package inference

import (
	"context"
	"fmt"
	"math"

	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// Breakdown and offsetting constants. The confidence band is a fixed
// heuristic, not a statistical prediction interval.
const (
	breakdownManufacturingScale = 1.4

	confidenceLowerFactor = 0.92
	confidenceUpperFactor = 1.08

	treeAbsorptionKgPerYear = 20.0
	recCreditKg             = 1000.0
	veganDaySavingKg        = 2.5

	carKgPerKm         = 0.25
	smartphoneChargeKg = 0.008
	washingLoadKg      = 0.6
)

// Query is one raw prediction request. Intensity defaults to MEDIUM when
// empty. Numeric range validation is the caller's responsibility; the
// engine extrapolates on out-of-distribution weights and distances rather
// than rejecting them.
type Query struct {
	Material      string
	WeightKg      float64
	TransportMode string
	DistanceKm    float64
	Intensity     string
}

// Predict produces the full prediction result for one query, or a
// structured failure. Inference is deterministic: identical inputs against
// the same artifact yield identical output.
func (s *Service) Predict(ctx context.Context, q Query) (*types.PredictionResult, error) {
	a, err := s.Artifact(ctx)
	if err != nil {
		return nil, err
	}

	intensity := q.Intensity
	if intensity == "" {
		intensity = types.IntensityMedium.String()
	}

	// Unknown categories fail here, before any numbers are produced
	materialCode, err := a.MaterialEncoder.Encode(q.Material)
	if err != nil {
		return nil, err
	}
	transportCode, err := a.TransportEncoder.Encode(q.TransportMode)
	if err != nil {
		return nil, err
	}
	intensityCode, err := a.IntensityEncoder.Encode(intensity)
	if err != nil {
		return nil, err
	}

	// Fixed feature order:
	// [material_code, weight_kg, transport_code, distance_km, intensity_code]
	features := []float64{
		float64(materialCode),
		q.WeightKg,
		float64(transportCode),
		q.DistanceKm,
		float64(intensityCode),
	}

	// The learned total is the single authoritative point estimate
	total := a.Model.Predict(features)
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, errors.Internal("model produced a non-finite estimate", nil).
			WithContext("material", q.Material)
	}

	// The breakdown is a second, formula-only computation that never
	// consults the model; its total may differ from the learned one
	breakdown, err := s.breakdown(q.Material, q.WeightKg, q.TransportMode, q.DistanceKm, intensity)
	if err != nil {
		return nil, err
	}

	return &types.PredictionResult{
		CO2Kg:     types.Round2(total),
		Breakdown: breakdown,
		ConfidenceInterval: types.ConfidenceInterval{
			Lower: types.Round2(total * confidenceLowerFactor),
			Upper: types.Round2(total * confidenceUpperFactor),
		},
		Compensation: buildCompensation(total),
		Equivalency:  buildEquivalency(total),
	}, nil
}

// breakdown decomposes emissions with the formula table: material factor,
// per-intensity manufacturing base scaled by a fixed constant, and the
// per-mode transport factor applied to distance in thousands of km.
// Percentages are shares of the breakdown's own total.
func (s *Service) breakdown(material string, weight float64, modeStr string, distance float64, intensityStr string) (types.Breakdown, error) {
	// The encoders vouched for these values; a miss here means the factor
	// table and the artifact vocabulary have drifted apart
	mf, ok := s.formulas.Materials[material]
	if !ok {
		return types.Breakdown{}, errors.Internal(
			fmt.Sprintf("material %q absent from formula table", material), nil)
	}
	mode, ok := types.ParseTransportMode(modeStr)
	if !ok {
		return types.Breakdown{}, errors.Internal(
			fmt.Sprintf("transport mode %q absent from formula table", modeStr), nil)
	}
	intensity, ok := types.ParseIntensity(intensityStr)
	if !ok {
		return types.Breakdown{}, errors.Internal(
			fmt.Sprintf("intensity %q absent from formula table", intensityStr), nil)
	}

	materialCO2 := weight * mf.BaseKgCO2PerKg
	manufacturingCO2 := weight * s.formulas.ManufacturingBase[intensity] * breakdownManufacturingScale
	transportCO2 := weight * (distance / 1000) * s.formulas.Transport[mode]

	total := materialCO2 + manufacturingCO2 + transportCO2
	if total <= 0 {
		return types.Breakdown{}, errors.Internal("formula breakdown total is not positive", nil).
			WithContext("material", material)
	}

	return types.Breakdown{
		MaterialCO2:          types.Round2(materialCO2),
		ManufacturingCO2:     types.Round2(manufacturingCO2),
		TransportCO2:         types.Round2(transportCO2),
		MaterialsPercent:     types.Round1(materialCO2 / total * 100),
		ManufacturingPercent: types.Round1(manufacturingCO2 / total * 100),
		TransportPercent:     types.Round1(transportCO2 / total * 100),
	}, nil
}

// buildCompensation derives the offsetting plan from a total emissions figure
func buildCompensation(totalCO2Kg float64) types.Compensation {
	trees := totalCO2Kg / treeAbsorptionKgPerYear

	display := int(math.Ceil(trees))
	if display < 1 {
		display = 1
	}

	perYear := types.Round2(trees)
	if perYear < 0.01 {
		perYear = 0.01
	}

	plural := ""
	if trees > 1 {
		plural = "s"
	}

	return types.Compensation{
		TreesPerYear: perYear,
		TreesDisplay: display,
		RECCredits:   types.Round3(totalCO2Kg / recCreditKg),
		VeganDays:    types.Round1(totalCO2Kg / veganDaySavingKg),
		Message:      fmt.Sprintf("Plant %d tree%s to offset this footprint", display, plural),
	}
}

// buildEquivalency converts a total emissions figure to everyday units
func buildEquivalency(totalCO2Kg float64) types.Equivalency {
	carKm := types.Round1(totalCO2Kg / carKgPerKm)

	return types.Equivalency{
		CarKm:             carKm,
		SmartphoneCharges: int(totalCO2Kg / smartphoneChargeKg),
		WashingLoads:      types.Round1(totalCO2Kg / washingLoadKg),
		Display:           fmt.Sprintf("Driving a car for %.1f km", carKm),
	}
}
