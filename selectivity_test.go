package stockassess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogisticSelectivityAtInflection(t *testing.T) {
	s := NewLogisticSelectivity[Float64](mkParam(2), mkParam(2))
	got := s.Selectivity(Float64(2))
	assert.False(t, different(float64(got), 0.5, 1e-12))
}

func TestDoubleLogisticSelectivityIsDomeShaped(t *testing.T) {
	s := NewDoubleLogisticSelectivity[Float64](mkParam(2), mkParam(2), mkParam(6), mkParam(2))
	low := s.Selectivity(Float64(1))
	peak := s.Selectivity(Float64(4))
	high := s.Selectivity(Float64(10))
	assert.Less(t, float64(low), float64(peak))
	assert.Less(t, float64(high), float64(peak))
}
