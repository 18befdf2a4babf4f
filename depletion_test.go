package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPellaTomlinsonRoundTrip is scenario S5: r = 0.2, K = 645, m = 2.0,
// d_{t-1} = 0.88, C_{t-1} = 10 => d_t ~= 0.8856161 to 1e-6.
func TestPellaTomlinsonRoundTrip(t *testing.T) {
	pt := NewPellaTomlinson[Float64](mkParam(math.Log(0.2)), mkParam(math.Log(645)), mkParam(math.Log(2.0)))

	got := pt.EvaluateMean(Float64(0.88), Float64(10))
	assert.False(t, different(float64(got), 0.8856161, 1e-6))
}

func TestClampDepletionKeepsNaturalScaleAboveEpsilon(t *testing.T) {
	for _, d := range []Float64{-1, 0, 0.0001, 0.001, 1} {
		got := ClampDepletion(d)
		assert.GreaterOrEqual(t, float64(got), 1e-3-1e-6)
	}
}
