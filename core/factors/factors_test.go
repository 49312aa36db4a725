package factors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrace/core/types"
	"carbontrace/internal/errors"
)

func TestBuiltinTableIsValid(t *testing.T) {
	table := Builtin()
	require.NoError(t, table.Validate())

	// Spot-check well-known entries
	assert.Equal(t, 5.5, table.Materials["Cotton"].BaseKgCO2PerKg)
	assert.Equal(t, 27.0, table.Materials["Beef"].BaseKgCO2PerKg)
	assert.Equal(t, 0.95, table.Transport[types.TransportAir])
	assert.Equal(t, 0.015, table.Transport[types.TransportSea])
	assert.Equal(t, 1.5, table.ManufacturingBase[types.IntensityMedium])
}

func TestMaterialNamesSorted(t *testing.T) {
	names := Builtin().MaterialNames()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Table)
	}{
		{"no materials", func(tb *Table) { tb.Materials = nil }},
		{"zero base factor", func(tb *Table) {
			tb.Materials["Cotton"] = MaterialFactor{0, 1.3, ProfileUniform}
		}},
		{"negative multiplier", func(tb *Table) {
			tb.Materials["Cotton"] = MaterialFactor{5.5, -1, ProfileUniform}
		}},
		{"unknown profile", func(tb *Table) {
			tb.Materials["Cotton"] = MaterialFactor{5.5, 1.3, "exotic"}
		}},
		{"missing transport mode", func(tb *Table) { delete(tb.Transport, types.TransportRail) }},
		{"zero transport factor", func(tb *Table) { tb.Transport[types.TransportSea] = 0 }},
		{"missing intensity", func(tb *Table) { delete(tb.ManufacturingBase, types.IntensityHigh) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := Builtin()
			tc.mutate(table)

			err := table.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig))
		})
	}
}

const testTableHCL = `
material "Cotton" {
  base_factor              = 5.5
  manufacturing_multiplier = 1.3
  intensity_profile        = "light_industrial"
}

material "Steel" {
  base_factor              = 2.8
  manufacturing_multiplier = 1.8
}

transport "AIR" { factor = 0.95 }
transport "SEA" { factor = 0.015 }
transport "ROAD" { factor = 0.12 }
transport "RAIL" { factor = 0.025 }

manufacturing "LOW" { base = 0.5 }
manufacturing "MEDIUM" { base = 1.5 }
manufacturing "HIGH" { base = 3.5 }
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "factors.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHCL(t *testing.T) {
	table, err := LoadHCL(writeTable(t, testTableHCL))
	require.NoError(t, err)

	assert.Equal(t, []string{"Cotton", "Steel"}, table.MaterialNames())
	assert.Equal(t, ProfileLightIndustrial, table.Materials["Cotton"].Profile)

	// Omitted profile defaults to uniform
	assert.Equal(t, ProfileUniform, table.Materials["Steel"].Profile)
}

func TestLoadHCLRejectsDuplicateMaterial(t *testing.T) {
	dup := testTableHCL + `
material "Cotton" {
  base_factor              = 1.0
  manufacturing_multiplier = 1.0
}
`
	_, err := LoadHCL(writeTable(t, dup))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadHCLRejectsIncompleteTable(t *testing.T) {
	// Missing RAIL and all manufacturing levels
	partial := `
material "Cotton" {
  base_factor              = 5.5
  manufacturing_multiplier = 1.3
}
transport "AIR" { factor = 0.95 }
transport "SEA" { factor = 0.015 }
transport "ROAD" { factor = 0.12 }
`
	_, err := LoadHCL(writeTable(t, partial))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadEmptyPathReturnsBuiltin(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Len(t, table.Materials, len(Builtin().Materials))
}
