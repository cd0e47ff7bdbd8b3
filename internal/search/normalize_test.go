package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxNormalizeSpreadsToUnitRange(t *testing.T) {
	out := minMaxNormalize(map[string]float64{"a": 1, "b": 3, "c": 5})
	assert.Equal(t, 0.0, out["a"])
	assert.Equal(t, 0.5, out["b"])
	assert.Equal(t, 1.0, out["c"])
}

func TestMinMaxNormalizeEmptyInput(t *testing.T) {
	out := minMaxNormalize(map[string]float64{})
	assert.Empty(t, out)
}

func TestMinMaxNormalizeFlatNonZeroScoresAllOne(t *testing.T) {
	out := minMaxNormalize(map[string]float64{"a": 2, "b": 2})
	assert.Equal(t, 1.0, out["a"])
	assert.Equal(t, 1.0, out["b"])
}
