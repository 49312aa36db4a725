package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrace/core/factors"
	"carbontrace/internal/errors"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(factors.Builtin())
	require.NoError(t, err)
	return g
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	g := newGenerator(t)

	a, err := g.Generate(1000, 42)
	require.NoError(t, err)
	b, err := g.Generate(1000, 42)
	require.NoError(t, err)

	var bufA, bufB bytes.Buffer
	require.NoError(t, WriteCSV(&bufA, a))
	require.NoError(t, WriteCSV(&bufB, b))
	assert.Equal(t, bufA.String(), bufB.String())
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	g := newGenerator(t)

	a, err := g.Generate(100, 1)
	require.NoError(t, err)
	b, err := g.Generate(100, 2)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGeneratedRecordsRespectBounds(t *testing.T) {
	g := newGenerator(t)

	records, err := g.Generate(2000, 42)
	require.NoError(t, err)
	require.Len(t, records, 2000)

	table := factors.Builtin()
	for _, r := range records {
		assert.GreaterOrEqual(t, r.WeightKg, weightMinKg)
		assert.LessOrEqual(t, r.WeightKg, weightMaxKg)

		require.True(t, r.TransportMode.IsValid())
		require.True(t, r.Intensity.IsValid())
		_, known := table.Materials[r.Material]
		assert.True(t, known, "unknown material %q", r.Material)

		dr := distanceRange[r.TransportMode]
		assert.GreaterOrEqual(t, r.DistanceKm, dr[0])
		assert.LessOrEqual(t, r.DistanceKm, dr[1])

		assert.Positive(t, r.TotalCO2Kg)
	}
}

func TestTotalIsNoisySumOfComponents(t *testing.T) {
	g := newGenerator(t)

	records, err := g.Generate(500, 7)
	require.NoError(t, err)

	for _, r := range records {
		sum := r.MaterialCO2 + r.ManufacturingCO2 + r.TransportCO2
		// Noise is N(1.0, 0.05); anything past +/-40% is a formula bug,
		// not an unlucky draw
		assert.InEpsilon(t, sum, r.TotalCO2Kg, 0.4)
	}
}

func TestAllModesAppearInLargeSample(t *testing.T) {
	g := newGenerator(t)

	records, err := g.Generate(5000, 42)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, r := range records {
		seen[r.TransportMode.String()]++
	}
	for _, mode := range []string{"AIR", "SEA", "ROAD", "RAIL"} {
		assert.Greater(t, seen[mode], 0, "mode %s never sampled", mode)
	}
	// ROAD carries the largest weight in the mode distribution
	assert.Greater(t, seen["ROAD"], seen["AIR"])
}

func TestGenerateRejectsBadCount(t *testing.T) {
	g := newGenerator(t)

	_, err := g.Generate(0, 42)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestWriteCSVHeaderAndShape(t *testing.T) {
	g := newGenerator(t)

	records, err := g.Generate(10, 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
}
