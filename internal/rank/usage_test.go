package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxNormalizeUsageSpread(t *testing.T) {
	out := minMaxNormalize(map[string]float64{"a": 0, "b": 1, "c": 2})
	assert.Equal(t, 0.0, out["a"])
	assert.Equal(t, 0.5, out["b"])
	assert.Equal(t, 1.0, out["c"])
}

func TestMinMaxNormalizeUsageAllZero(t *testing.T) {
	out := minMaxNormalize(map[string]float64{"a": 0, "b": 0})
	assert.Equal(t, 0.0, out["a"])
	assert.Equal(t, 0.0, out["b"])
}
