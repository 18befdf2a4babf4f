package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimationModeEstimated(t *testing.T) {
	assert.False(t, Constant.Estimated())
	assert.True(t, FixedEffects.Estimated())
	assert.True(t, RandomEffects.Estimated())
}

func TestLogNaturalLogRoundTrip(t *testing.T) {
	for _, v := range []float64{0.01, 1, 10, 1000} {
		logV := math.Log(v)
		roundTrip := math.Exp(logV)
		assert.False(t, different(roundTrip, v, 1e-14))
	}
}

func TestParameterVectorForceScalarValue(t *testing.T) {
	pv := NewParameterVector[Float64](1, 1)
	pv.Set(0, NewParameter[Float64](2, 5))
	assert.Equal(t, Float64(5), pv.ForceScalarValue(3))
}
