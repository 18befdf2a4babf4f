package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogistic(t *testing.T) {
	// At the inflection point the curve is exactly 0.5.
	got := Logistic(Float64(2), Float64(2), Float64(2))
	assert.False(t, different(float64(got), 0.5, 1e-12))
}

func TestSmoothMaxApproachesOrdinaryMax(t *testing.T) {
	got := SmoothMax(Float64(5), Float64(1))
	assert.False(t, different(float64(got), 5, 1e-3))

	got = SmoothMax(Float64(1), Float64(5))
	assert.False(t, different(float64(got), 5, 1e-3))
}

func TestErfMatchesMathErf(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0, 0.5, 2} {
		got := Erf(Float64(x))
		want := math.Erf(x)
		assert.False(t, different(float64(got), want, 1e-6), "erf(%v): got %v want %v", x, got, want)
	}
}

func TestNormalCDFAtMean(t *testing.T) {
	got := NormalCDF(Float64(0), Float64(0), Float64(1))
	assert.False(t, different(float64(got), 0.5, 1e-6))
}

func TestFloat64Arithmetic(t *testing.T) {
	a, b := Float64(3), Float64(4)
	assert.Equal(t, Float64(7), a.Add(b))
	assert.Equal(t, Float64(-1), a.Sub(b))
	assert.Equal(t, Float64(12), a.Mul(b))
	assert.Equal(t, Float64(0.75), a.Div(b))
}
