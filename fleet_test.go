package stockassess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func newTestFleet(years, ages int) *Fleet[Float64] {
	return &Fleet[Float64]{
		Identity:    1,
		Years:       years,
		Ages:        ages,
		Selectivity: NewLogisticSelectivity[Float64](mkParam(2), mkParam(2)),
		LogFmort:    NewParameterVector[Float64](0, years).TypedVector,
		LogQ:        TypedVectorOf[Parameter[Float64]](0, []Parameter[Float64]{mkParam(0)}),
	}
}

func TestFleetValidateRejectsMissingSelectivity(t *testing.T) {
	f := newTestFleet(3, 4)
	f.Selectivity = nil
	assert.Error(t, f.Validate())
}

func TestFleetValidateRejectsLengthMismatch(t *testing.T) {
	f := newTestFleet(3, 4)
	f.LogFmort = NewParameterVector[Float64](0, 1).TypedVector
	assert.Error(t, f.Validate())
}

func TestFleetValidateRequiresConversionMatrixWhenLengthBinsSet(t *testing.T) {
	f := newTestFleet(3, 4)
	f.LengthBins = 5
	assert.Error(t, f.Validate())

	f.ConversionMatrix = mat.NewDense(4, 5, nil)
	assert.NoError(t, f.Validate())
}

func TestFleetHasLandingsIndex(t *testing.T) {
	f := newTestFleet(3, 4)
	assert.False(t, f.HasLandings())
	f.ObservedLandings = &ObservedSeries{Values: []float64{1, 2, 3}}
	assert.True(t, f.HasLandings())
}

func TestIsNA(t *testing.T) {
	assert.True(t, IsNA(NASentinel))
	assert.False(t, IsNA(0))
}
