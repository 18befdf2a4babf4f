package stockassess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistencyPropertiesAgainstRealEvaluator(t *testing.T) {
	pop, fleet := buildS1(t)
	Y, A := pop.Years, pop.Ages

	obs := make([]float64, Y*A)
	for i := range obs {
		obs[i] = 5
	}
	fleet.ObservedAgeComp = &ObservedMatrix{Years: Y, Bins: A, Cells: obs}

	e := NewCatchAtAgeEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	landingsAtAge := e.Store().Get(fleet.Identity, "landings_numbers_at_age")
	landingsTotal := e.Store().Get(fleet.Identity, "landings_numbers")

	floatAtAge := make([]float64, Y*A)
	for i := range floatAtAge {
		floatAtAge[i] = float64(landingsAtAge.At(i))
	}
	floatTotal := make([]float64, Y)
	for i := range floatTotal {
		floatTotal[i] = float64(landingsTotal.At(i))
	}
	assert.True(t, ConsistentTotals(floatTotal, floatAtAge, Y, A, 1e-9))

	proportion := e.Store().Get(fleet.Identity, "agecomp_proportion")
	expected := e.Store().Get(fleet.Identity, "agecomp_expected")
	floatProp := make([]float64, Y*A)
	floatExp := make([]float64, Y*A)
	for i := 0; i < Y*A; i++ {
		floatProp[i] = float64(proportion.At(i))
		floatExp[i] = float64(expected.At(i))
	}
	assert.True(t, CompositionNormalized(floatProp, floatExp, Y, A, 1e-9))
}

// TestUnfishedRecursionMatchesClosedForm checks spec.md §8 property 4: with
// M constant across age, the unfished numbers-at-age in year 0 must equal
// the closed-form geometric decay R0*exp(-Σ_{k<a}M), independent of the
// recursive per-age accumulation the evaluator actually performs.
func TestUnfishedRecursionMatchesClosedForm(t *testing.T) {
	pop, _ := buildS1(t)
	A := pop.Ages

	e := NewCatchAtAgeEvaluator[Float64](0)
	require.NoError(t, e.Initialize(pop))
	e.Prepare(pop)
	require.NoError(t, e.Evaluate(pop))

	unaa := e.Store().Get(pop.Identity, "unfished_numbers_at_age")
	r0 := float64(pop.Recruitment.R0())
	const m = 0.2 // buildS1's constant M

	for a := 0; a < A; a++ {
		want := r0 * math.Exp(-m*float64(a))
		assert.False(t, different(float64(unaa.At(a)), want, 1e-9))
	}
}
