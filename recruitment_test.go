package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestBevertonHolt(r0, h float64, years int) *BevertonHolt[Float64] {
	return NewBevertonHolt[Float64](
		mkParam(math.Log(r0)),
		mkParam(h),
		NewParameterVector[Float64](0, years).TypedVector,
		NewParameterVector[Float64](0, years).TypedVector,
	)
}

func TestBevertonHoltEvaluateMean(t *testing.T) {
	bh := newTestBevertonHolt(1000, 0.75, 5)
	sb := Float64(500)
	phi0 := Float64(2)

	got := bh.EvaluateMean(sb, phi0)

	r0, h := 1000.0, 0.75
	want := (0.8 * r0 * h * 500) / (0.2*r0*float64(phi0)*(1-h) + 500*(h-0.2))
	assert.False(t, different(float64(got), want, 1e-9))
}

func TestBevertonHoltEvaluateProcessAddsDeviation(t *testing.T) {
	bh := newTestBevertonHolt(1000, 0.75, 3)
	bh.LogExpectedRecruitment.Set(1, mkParam(2))
	bh.RecordLogExpectedRecruitment(1, Float64(2)) // idempotent re-record
	bh.RecruitDev.Set(1, mkParam(0.1))

	got := bh.EvaluateProcess(1)
	assert.False(t, different(float64(got), 2.1, 1e-12))
}

func TestBevertonHoltR0(t *testing.T) {
	bh := newTestBevertonHolt(1000, 0.75, 1)
	assert.False(t, different(float64(bh.R0()), 1000, 1e-9))
}
