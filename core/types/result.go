package types

// Breakdown is the formula-derived decomposition of total emissions into
// material, manufacturing and transport shares. It is computed independently
// of the learned model and may differ numerically from the learned total;
// the divergence is intentional. Percentages are each component's share of
// the breakdown's own total.
type Breakdown struct {
	MaterialCO2          float64 `json:"material_co2"`
	ManufacturingCO2     float64 `json:"manufacturing_co2"`
	TransportCO2         float64 `json:"transport_co2"`
	MaterialsPercent     float64 `json:"materials_percent"`
	ManufacturingPercent float64 `json:"manufacturing_percent"`
	TransportPercent     float64 `json:"transport_percent"`
}

// ConfidenceInterval is a fixed heuristic band of -8%/+8% around the learned
// total. It is NOT a statistical prediction interval derived from model
// variance; callers must not treat it as one.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Compensation is offsetting guidance derived from the learned total
type Compensation struct {
	// TreesPerYear assumes one mature tree absorbs ~20 kg CO2 per year
	TreesPerYear float64 `json:"trees_per_year"`

	// TreesDisplay is TreesPerYear rounded up, floored at one tree
	TreesDisplay int `json:"trees_display"`

	// RECCredits are renewable energy credits (1 credit ~ 1000 kg CO2)
	RECCredits float64 `json:"rec_credits"`

	// VeganDays assumes ~2.5 kg CO2 saved per vegan day
	VeganDays float64 `json:"days_vegan"`

	Message string `json:"message"`
}

// Equivalency converts a total emissions figure into everyday-activity units
type Equivalency struct {
	// CarKm assumes an average car emits 0.25 kg CO2 per km
	CarKm float64 `json:"car_km"`

	// SmartphoneCharges assumes 0.008 kg CO2 per charge
	SmartphoneCharges int `json:"smartphone_charges"`

	// WashingLoads assumes 0.6 kg CO2 per washing machine load
	WashingLoads float64 `json:"washing_loads"`

	Display string `json:"display"`
}

// PredictionResult is the full per-request output of the inference engine.
// CO2Kg is the single authoritative point estimate from the learned model;
// the breakdown components are not guaranteed to sum to it.
type PredictionResult struct {
	CO2Kg              float64            `json:"co2_kg"`
	Breakdown          Breakdown          `json:"breakdown"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	Compensation       Compensation       `json:"compensation"`
	Equivalency        Equivalency        `json:"equivalency"`
}
