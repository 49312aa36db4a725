// Package factors holds the parametric emission-factor tables the generator
// and the formula breakdown are built from. The tables are pure data: a
// built-in set derived from IPCC/EPA guideline figures, optionally replaced
// by an operator-supplied HCL file. Semantic correctness of the figures
// against external standards is not validated here; they are configuration.
package factors

import (
	"sort"

	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// IntensityProfile classifies how a material's manufacturing intensity is
// distributed when sampling synthetic records. Profiles are a closed set so
// an unknown profile is caught at table validation, not at sampling time.
type IntensityProfile string

const (
	// ProfileEnergyIntensive skews MEDIUM/HIGH (smelting, tanning)
	ProfileEnergyIntensive IntensityProfile = "energy_intensive"

	// ProfileLightIndustrial skews LOW/MEDIUM (textiles, commodity plastics)
	ProfileLightIndustrial IntensityProfile = "light_industrial"

	// ProfileHighEmissionFood splits MEDIUM/HIGH (ruminant meat, aquaculture)
	ProfileHighEmissionFood IntensityProfile = "high_emission_food"

	// ProfileLowProcessingFood skews LOW/MEDIUM (staples, produce)
	ProfileLowProcessingFood IntensityProfile = "low_processing_food"

	// ProfileUniform draws uniformly over the three buckets
	ProfileUniform IntensityProfile = "uniform"
)

// IsValid checks if the profile is a known profile
func (p IntensityProfile) IsValid() bool {
	switch p {
	case ProfileEnergyIntensive, ProfileLightIndustrial, ProfileHighEmissionFood,
		ProfileLowProcessingFood, ProfileUniform:
		return true
	default:
		return false
	}
}

// MaterialFactor is the per-material entry of the emission table
type MaterialFactor struct {
	// BaseKgCO2PerKg is kg CO2e released per kg of material
	BaseKgCO2PerKg float64

	// ManufacturingMultiplier scales the intensity base for this material
	ManufacturingMultiplier float64

	// Profile drives the material-conditioned intensity sampling
	Profile IntensityProfile
}

// Table is a complete emission-factor table
type Table struct {
	// Materials maps material name to its factors. Keys are unique by
	// construction (map) and must carry strictly positive factors.
	Materials map[string]MaterialFactor

	// Transport maps mode to kg CO2e per kg per 1000 km
	Transport map[types.TransportMode]float64

	// ManufacturingBase maps intensity bucket to its base emission value
	ManufacturingBase map[types.Intensity]float64
}

// MaterialNames returns the material vocabulary in sorted order
func (t *Table) MaterialNames() []string {
	names := make([]string, 0, len(t.Materials))
	for name := range t.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the table invariants: every factor strictly positive,
// every transport mode and intensity bucket present, every profile known.
// A bad table is fatal configuration, caught before any generation or
// serving starts.
func (t *Table) Validate() error {
	if len(t.Materials) == 0 {
		return errors.Config("emission table has no materials")
	}
	for name, mf := range t.Materials {
		if name == "" {
			return errors.Config("emission table has a material with an empty name")
		}
		if mf.BaseKgCO2PerKg <= 0 {
			return errors.Configf("material %q: base factor must be positive, got %v", name, mf.BaseKgCO2PerKg)
		}
		if mf.ManufacturingMultiplier <= 0 {
			return errors.Configf("material %q: manufacturing multiplier must be positive, got %v", name, mf.ManufacturingMultiplier)
		}
		if !mf.Profile.IsValid() {
			return errors.Configf("material %q: unknown intensity profile %q", name, mf.Profile)
		}
	}
	for _, mode := range types.TransportModes() {
		f, ok := t.Transport[mode]
		if !ok {
			return errors.Configf("transport table missing mode %s", mode)
		}
		if f <= 0 {
			return errors.Configf("transport mode %s: factor must be positive, got %v", mode, f)
		}
	}
	for _, in := range types.Intensities() {
		b, ok := t.ManufacturingBase[in]
		if !ok {
			return errors.Configf("manufacturing table missing intensity %s", in)
		}
		if b <= 0 {
			return errors.Configf("intensity %s: base must be positive, got %v", in, b)
		}
	}
	return nil
}

// Builtin returns the default emission-factor table
func Builtin() *Table {
	return &Table{
		Materials: map[string]MaterialFactor{
			// Manufacturing materials
			"Cotton":    {5.5, 1.3, ProfileLightIndustrial},
			"Polyester": {6.2, 1.5, ProfileLightIndustrial},
			"Wool":      {10.4, 1.4, ProfileUniform},
			"Leather":   {17.0, 2.0, ProfileEnergyIntensive},
			"Steel":     {2.8, 1.8, ProfileEnergyIntensive},
			"Aluminum":  {8.2, 2.5, ProfileEnergyIntensive},
			"Plastic":   {3.5, 1.6, ProfileLightIndustrial},
			"Glass":     {0.9, 1.2, ProfileUniform},
			"Paper":     {1.3, 1.0, ProfileUniform},
			"Wood":      {0.5, 0.8, ProfileUniform},

			// Animal products (ruminants dominate on methane)
			"Beef":    {27.0, 1.2, ProfileHighEmissionFood},
			"Lamb":    {24.0, 1.2, ProfileHighEmissionFood},
			"Pork":    {12.1, 1.1, ProfileHighEmissionFood},
			"Chicken": {6.9, 1.0, ProfileLowProcessingFood},
			"Turkey":  {10.9, 1.0, ProfileUniform},

			// Seafood
			"Fish_Farmed": {5.1, 0.9, ProfileLowProcessingFood},
			"Fish_Wild":   {2.9, 0.8, ProfileLowProcessingFood},
			"Shrimp":      {18.0, 1.3, ProfileHighEmissionFood},

			// Dairy and eggs
			"Milk":   {1.9, 0.7, ProfileUniform},
			"Cheese": {13.5, 1.0, ProfileHighEmissionFood},
			"Eggs":   {4.8, 0.9, ProfileUniform},
			"Butter": {12.0, 0.9, ProfileUniform},

			// Plant-based proteins
			"Tofu":    {2.0, 0.8, ProfileLowProcessingFood},
			"Lentils": {0.9, 0.6, ProfileLowProcessingFood},
			"Beans":   {1.0, 0.6, ProfileLowProcessingFood},
			"Nuts":    {2.3, 0.7, ProfileUniform},

			// Grains and staples
			"Rice":  {4.0, 0.8, ProfileLowProcessingFood},
			"Wheat": {1.4, 0.7, ProfileLowProcessingFood},
			"Oats":  {1.6, 0.7, ProfileUniform},
			"Corn":  {1.1, 0.7, ProfileUniform},

			// Vegetables and fruits
			"Tomatoes": {2.1, 0.6, ProfileUniform},
			"Potatoes": {0.5, 0.5, ProfileLowProcessingFood},
			"Lettuce":  {0.9, 0.5, ProfileUniform},
			"Apples":   {0.4, 0.5, ProfileLowProcessingFood},
			"Bananas":  {0.7, 0.5, ProfileLowProcessingFood},
		},
		Transport: map[types.TransportMode]float64{
			types.TransportAir:  0.95,
			types.TransportSea:  0.015,
			types.TransportRoad: 0.12,
			types.TransportRail: 0.025,
		},
		ManufacturingBase: map[types.Intensity]float64{
			types.IntensityLow:    0.5, // assembly, packaging
			types.IntensityMedium: 1.5, // standard manufacturing
			types.IntensityHigh:   3.5, // smelting, chemical processing
		},
	}
}
