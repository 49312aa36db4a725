package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrace/internal/errors"
)

func TestFitAssignsCodesInSortedOrder(t *testing.T) {
	// Insertion order must not matter
	enc := Fit("material", []string{"Wool", "Cotton", "Steel", "Cotton", "Wool"})

	require.Equal(t, 3, enc.Len())
	assert.Equal(t, []string{"Cotton", "Steel", "Wool"}, enc.Vocabulary())

	code, err := enc.Encode("Cotton")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err = enc.Encode("Wool")
	require.NoError(t, err)
	assert.Equal(t, 2, code)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := Fit("transport_mode", []string{"ROAD", "AIR", "SEA", "RAIL"})

	for _, v := range enc.Vocabulary() {
		code, err := enc.Encode(v)
		require.NoError(t, err)

		back, err := enc.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestEncodeUnknownValueFails(t *testing.T) {
	enc := Fit("material", []string{"Cotton", "Steel"})

	_, err := enc.Encode("Vibranium")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownCategory))

	e := err.(*errors.Error)
	assert.Equal(t, "material", e.Context["field"])
	assert.Equal(t, "Vibranium", e.Context["value"])
}

func TestDecodeOutOfRangeFails(t *testing.T) {
	enc := Fit("manufacturing_intensity", []string{"LOW", "MEDIUM", "HIGH"})

	_, err := enc.Decode(-1)
	assert.Error(t, err)

	_, err = enc.Decode(3)
	assert.Error(t, err)
}

func TestVocabularyIsACopy(t *testing.T) {
	enc := Fit("material", []string{"Cotton", "Steel"})

	v := enc.Vocabulary()
	v[0] = "mutated"

	code, err := enc.Encode("Cotton")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
