package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildS5 constructs scenario S5 from spec.md §8: r = 0.2, K = 645, m = 2.0,
// d_0 = 0.88, C_0 = 10, expecting d_1 ~= 0.8856161 to 1e-6.
func buildS5(t *testing.T) *Population[Float64] {
	t.Helper()
	const Y, A = 1, 1

	pop := newTestPopulation(Y, A)
	pop.Depletion = NewPellaTomlinson[Float64](
		mkParam(math.Log(0.2)),
		mkParam(math.Log(645)),
		mkParam(math.Log(2.0)),
	)
	pop.LogInitDepletion = mkParam(math.Log(0.88))

	fleet := newTestFleet(Y, A)
	fleet.ObservedLandings = &ObservedSeries{Values: []float64{10}}
	pop.Fleets = []*Fleet[Float64]{fleet}

	return pop
}

func TestS5SurplusProductionDepletionStep(t *testing.T) {
	pop := buildS5(t)

	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	depletion := e.Store().Get(pop.Identity, "expected_depletion")
	assert.False(t, different(float64(depletion.At(1)), 0.8856161, 1e-6))

	k := pop.Depletion.(*PellaTomlinson[Float64]).K()
	biomass := e.Store().Get(pop.Identity, "biomass")
	want := float64(depletion.At(1)) * float64(k)
	assert.False(t, different(float64(biomass.At(1)), want, 1e-9))
}

func TestS5ObservedCatchMatchesLandings(t *testing.T) {
	pop := buildS5(t)

	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	observedCatch := e.Store().Get(pop.Identity, "observed_catch")
	assert.Equal(t, Float64(10), observedCatch.At(0))
}

func TestDepletionClampKeepsBiomassPositive(t *testing.T) {
	pop := buildS5(t)
	pop.Fleets[0].ObservedLandings = &ObservedSeries{Values: []float64{10000}} // catch far larger than K

	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	depletion := e.Store().Get(pop.Identity, "expected_depletion")
	assert.GreaterOrEqual(t, float64(depletion.At(1)), 1e-3-1e-6)
}

func TestReferencePointsSanity(t *testing.T) {
	pop := buildS5(t)

	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	fMsy, bMsy, msy, err := e.ReferencePoints(pop)
	require.NoError(t, err)

	pt := pop.Depletion.(*PellaTomlinson[Float64])
	r, k := float64(pt.R()), float64(pt.K())

	// For Pella-Tomlinson with m = 2 (the Schaefer special case),
	// F_msy = r/2 and B_msy = K/2.
	assert.False(t, different(float64(fMsy), r/2, 1e-9))
	assert.False(t, different(float64(bMsy), k/2, 1e-9))
	assert.False(t, different(float64(msy), float64(fMsy)*float64(bMsy), 1e-9))
}

func TestSurplusProductionEvaluateIsIdempotent(t *testing.T) {
	pop := buildS5(t)
	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))

	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))
	first := append([]Float64{}, e.Store().Get(pop.Identity, "expected_depletion").Slice()...)

	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))
	second := e.Store().Get(pop.Identity, "expected_depletion").Slice()

	assert.Equal(t, first, second)
}

func TestSurplusProductionFinalizeWarnsOnSecondCall(t *testing.T) {
	pop := buildS5(t)
	e := NewSurplusProductionEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	e.Finalize()
	assert.True(t, e.finalized)
	e.Finalize()
}
