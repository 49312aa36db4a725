package factors

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

// tableFile is the HCL schema for an operator-supplied emission table.
//
//	material "Cotton" {
//	  base_factor              = 5.5
//	  manufacturing_multiplier = 1.3
//	  intensity_profile        = "light_industrial"
//	}
//	transport "AIR" { factor = 0.95 }
//	manufacturing "LOW" { base = 0.5 }
type tableFile struct {
	Materials     []materialBlock  `hcl:"material,block"`
	Transport     []transportBlock `hcl:"transport,block"`
	Manufacturing []intensityBlock `hcl:"manufacturing,block"`
}

type materialBlock struct {
	Name       string  `hcl:"name,label"`
	BaseFactor float64 `hcl:"base_factor"`
	Multiplier float64 `hcl:"manufacturing_multiplier"`
	Profile    string  `hcl:"intensity_profile,optional"`
}

type transportBlock struct {
	Mode   string  `hcl:"mode,label"`
	Factor float64 `hcl:"factor"`
}

type intensityBlock struct {
	Level string  `hcl:"level,label"`
	Base  float64 `hcl:"base"`
}

// LoadHCL loads and validates a complete emission-factor table from an HCL
// file. The file replaces the built-in table wholesale; partial overrides
// are not supported, so a table is always internally consistent.
func LoadHCL(path string) (*Table, error) {
	var file tableFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parsing emission table", err)
	}

	t := &Table{
		Materials:         make(map[string]MaterialFactor, len(file.Materials)),
		Transport:         make(map[types.TransportMode]float64, len(file.Transport)),
		ManufacturingBase: make(map[types.Intensity]float64, len(file.Manufacturing)),
	}

	for _, m := range file.Materials {
		if _, dup := t.Materials[m.Name]; dup {
			return nil, errors.Configf("duplicate material %q", m.Name)
		}
		profile := IntensityProfile(m.Profile)
		if m.Profile == "" {
			profile = ProfileUniform
		}
		t.Materials[m.Name] = MaterialFactor{
			BaseKgCO2PerKg:          m.BaseFactor,
			ManufacturingMultiplier: m.Multiplier,
			Profile:                 profile,
		}
	}

	for _, tr := range file.Transport {
		mode, ok := types.ParseTransportMode(tr.Mode)
		if !ok {
			return nil, errors.Configf("unknown transport mode %q", tr.Mode)
		}
		if _, dup := t.Transport[mode]; dup {
			return nil, errors.Configf("duplicate transport mode %q", tr.Mode)
		}
		t.Transport[mode] = tr.Factor
	}

	for _, in := range file.Manufacturing {
		level, ok := types.ParseIntensity(in.Level)
		if !ok {
			return nil, errors.Configf("unknown manufacturing intensity %q", in.Level)
		}
		if _, dup := t.ManufacturingBase[level]; dup {
			return nil, errors.Configf("duplicate manufacturing intensity %q", in.Level)
		}
		t.ManufacturingBase[level] = in.Base
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load returns the table at path, or the built-in table when path is empty
func Load(path string) (*Table, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadHCL(path)
}
