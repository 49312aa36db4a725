package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(name string, co2 float64) *Entry {
	return &Entry{
		ProductName:      name,
		Material:         "Cotton",
		WeightKg:         0.5,
		TransportMode:    "AIR",
		DistanceKm:       8000,
		PredictedCO2Kg:   co2,
		MaterialCO2:      2.75,
		ManufacturingCO2: 1.05,
		TransportCO2:     3.8,
		TreesToOffset:    co2 / 20,
	}
}

func TestInsertAssignsID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	e := testEntry("T-Shirt", 7.6)
	require.NoError(t, s.Insert(ctx, e))
	assert.Greater(t, e.ID, int64(0))
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.Insert(ctx, testEntry(name, float64(i+1))))
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].ProductName)
	assert.Equal(t, "second", entries[1].ProductName)
	assert.Equal(t, "Cotton", entries[0].Material)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRecentDefaultLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, s.Insert(ctx, testEntry("bulk", 1.0)))
	}

	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestSummarize(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	sum, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum.Count)
	assert.Equal(t, 0.0, sum.TotalCO2Kg)

	require.NoError(t, s.Insert(ctx, testEntry("a", 10)))
	require.NoError(t, s.Insert(ctx, testEntry("b", 30)))

	sum, err = s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Count)
	assert.Equal(t, 40.0, sum.TotalCO2Kg)
	assert.Equal(t, 20.0, sum.MeanCO2Kg)
}
