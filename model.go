/*
Copyright © 2024 the stockassess authors.
This file is part of stockassess.

stockassess is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

stockassess is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with stockassess.  If not, see <http://www.gnu.org/licenses/>.
*/

package stockassess

import "fmt"

// EvaluatorKind selects which traversal a Model dispatches: the full
// age-structured catch-at-age engine, or the simpler biomass-dynamics
// (Pella-Tomlinson) evaluator. Both share the Population/Fleet/DQStore
// abstractions; only the traversal differs (spec.md §4.5 vs §4.6).
type EvaluatorKind int

const (
	CatchAtAge EvaluatorKind = iota
	SurplusProduction
)

// paramSetter is one registered estimable parameter: a human-readable
// owner label for diagnostics, and a closure that writes a new final value
// back into the Parameter's storage slot in place.
type paramSetter[T any] struct {
	Owner string
	set   func(T)
}

// EvaluatorHandle is the result of Model.Build: the registered parameter
// order fixed at build time, and the populations/evaluator it was built
// from. It is the sole object set_parameters/evaluate/report operate on
// (spec.md §6).
type EvaluatorHandle[T Scalar[T]] struct {
	Kind        EvaluatorKind
	Populations []*Population[T]

	catchAtAge        *CatchAtAgeEvaluator[T]
	surplusProduction *SurplusProductionEvaluator[T]

	registry []paramSetter[T]
}

// EvaluationResult is what evaluate(handle) returns (spec.md §6).
// ObjectiveContribution is always the type's zero value: assembling an
// objective from derived quantities is the likelihood layer's job (out of
// scope, §1); this field exists only so the facade's return shape matches
// the external interface the likelihood layer is written against.
type EvaluationResult[T Scalar[T]] struct {
	ObjectiveContribution T
	DerivedQuantities     *DQStore[T]
}

// Model owns the identity allocator callers use to assign stable identities
// at construction time (spec.md §4.7, §9 -- the allocator is an explicit
// facade-owned object, not a process-global registry). The population/fleet
// collection is passed to Build and held by the returned EvaluatorHandle.
type Model[T Scalar[T]] struct {
	Identities *IdentityAllocator
	zero       T
}

// NewModel returns an empty Model. zero is this build's representation of
// the Scalar value 0.
func NewModel[T Scalar[T]](zero T) *Model[T] {
	return &Model[T]{Identities: NewIdentityAllocator(), zero: zero}
}

// Build constructs an EvaluatorHandle for the given populations: it
// allocates every derived-quantity vector (Initialize) and fixes the
// parameter registration order (spec.md §6, detailed in SPEC_FULL §7):
// population-major, then fleet-major (in population's owned-fleet order),
// then submodule-major (growth, maturity, selectivity per fleet,
// recruitment, depletion), appending only fixed_effects/random_effects
// parameters.
func (m *Model[T]) Build(kind EvaluatorKind, populations []*Population[T]) (*EvaluatorHandle[T], error) {
	h := &EvaluatorHandle[T]{Kind: kind, Populations: populations}

	switch kind {
	case CatchAtAge:
		h.catchAtAge = NewCatchAtAgeEvaluator[T](m.zero)
		for _, p := range populations {
			if err := h.catchAtAge.Initialize(p); err != nil {
				return nil, err
			}
		}
	case SurplusProduction:
		h.surplusProduction = NewSurplusProductionEvaluator[T](m.zero)
		for _, p := range populations {
			if err := h.surplusProduction.Initialize(p); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("stockassess: unknown evaluator kind %d", kind)
	}

	for _, p := range populations {
		h.registerPopulation(p)
		for _, f := range p.Fleets {
			h.registerFleetOwned(f)
		}
		h.registerSubmodules(p)
	}
	return h, nil
}

func registerParam[T any](registry *[]paramSetter[T], owner string, p *Parameter[T]) {
	if !p.EstimationMode.Estimated() {
		return
	}
	*registry = append(*registry, paramSetter[T]{Owner: owner, set: func(v T) { p.FinalValue = v }})
}

func registerParamVector[T any](registry *[]paramSetter[T], owner string, v TypedVector[Parameter[T]]) {
	slice := v.Slice()
	for i := range slice {
		if !slice[i].EstimationMode.Estimated() {
			continue
		}
		idx := i
		*registry = append(*registry, paramSetter[T]{
			Owner: fmt.Sprintf("%s[%d]", owner, idx),
			set:   func(val T) { slice[idx].FinalValue = val },
		})
	}
}

func (h *EvaluatorHandle[T]) registerPopulation(p *Population[T]) {
	owner := fmt.Sprintf("population[%d]", p.Identity)
	registerParamVector(&h.registry, owner+".log_init_naa", p.LogInitNAA)
	registerParamVector(&h.registry, owner+".log_M", p.LogM)
	registerParamVector(&h.registry, owner+".log_f_multiplier", p.LogFMultiplier)
	registerParamVector(&h.registry, owner+".proportion_female", p.ProportionFemale)
	registerParam(&h.registry, owner+".log_init_depletion", &p.LogInitDepletion)
}

func (h *EvaluatorHandle[T]) registerFleetOwned(f *Fleet[T]) {
	owner := fmt.Sprintf("fleet[%d]", f.Identity)
	registerParamVector(&h.registry, owner+".log_Fmort", f.LogFmort)
	registerParamVector(&h.registry, owner+".log_q", f.LogQ)
}

func (h *EvaluatorHandle[T]) registerSubmodules(p *Population[T]) {
	popOwner := fmt.Sprintf("population[%d]", p.Identity)

	// Growth coefficients (EmpiricalWeightAtAge, VonBertalanffy) are plain
	// Scalar values rather than Parameters: §3 gives growth a single
	// operation, weight_at_age(age) -> T, with no identity/estimation_mode
	// threaded through it the way every other submodule family's
	// contract carries Parameter-typed fields. There is therefore nothing
	// to register here; this is a deliberate scope decision, recorded in
	// DESIGN.md, not an oversight.

	if lm, ok := p.Maturity.(*LogisticMaturity[T]); ok {
		registerParamVector(&h.registry, popOwner+".maturity.inflection", lm.Inflection)
		registerParamVector(&h.registry, popOwner+".maturity.slope", lm.Slope)
	}

	for _, f := range p.Fleets {
		fleetOwner := fmt.Sprintf("fleet[%d].selectivity", f.Identity)
		switch sel := f.Selectivity.(type) {
		case *LogisticSelectivity[T]:
			registerParam(&h.registry, fleetOwner+".inflection", &sel.Inflection)
			registerParam(&h.registry, fleetOwner+".slope", &sel.Slope)
		case *DoubleLogisticSelectivity[T]:
			registerParam(&h.registry, fleetOwner+".inflection_asc", &sel.InflectionAsc)
			registerParam(&h.registry, fleetOwner+".slope_asc", &sel.SlopeAsc)
			registerParam(&h.registry, fleetOwner+".inflection_desc", &sel.InflectionDesc)
			registerParam(&h.registry, fleetOwner+".slope_desc", &sel.SlopeDesc)
		}
	}

	if bh, ok := p.Recruitment.(*BevertonHolt[T]); ok {
		registerParam(&h.registry, popOwner+".recruitment.log_r0", &bh.LogR0)
		registerParam(&h.registry, popOwner+".recruitment.steepness", &bh.Steepness)
		registerParamVector(&h.registry, popOwner+".recruitment.recruit_dev", bh.RecruitDev)
	}

	if pt, ok := p.Depletion.(*PellaTomlinson[T]); ok {
		registerParam(&h.registry, popOwner+".depletion.log_r", &pt.LogR)
		registerParam(&h.registry, popOwner+".depletion.log_k", &pt.LogK)
		registerParam(&h.registry, popOwner+".depletion.log_m", &pt.LogM)
	}
}

// NumParameters returns the number of estimable parameters registered at
// build time -- the length set_parameters expects.
func (h *EvaluatorHandle[T]) NumParameters() int { return len(h.registry) }

// SetParameters writes values into the registered parameter positions in
// the order fixed at build time (spec.md §6).
func (h *EvaluatorHandle[T]) SetParameters(values []T) error {
	if len(values) != len(h.registry) {
		return fmt.Errorf("stockassess: set_parameters: got %d values, want %d", len(values), len(h.registry))
	}
	for i, v := range values {
		h.registry[i].set(v)
	}
	return nil
}

// Evaluate runs Prepare then Evaluate for every population in build order
// (spec.md §6). Each call fully overwrites the derived-quantity store, so
// results never depend on a previous call (spec.md §5).
func (h *EvaluatorHandle[T]) Evaluate() (EvaluationResult[T], error) {
	switch h.Kind {
	case CatchAtAge:
		for _, p := range h.Populations {
			h.catchAtAge.Prepare(p)
			if err := h.catchAtAge.Evaluate(p); err != nil {
				return EvaluationResult[T]{}, err
			}
		}
		return EvaluationResult[T]{ObjectiveContribution: h.catchAtAge.zero, DerivedQuantities: h.catchAtAge.Store()}, nil
	case SurplusProduction:
		for _, p := range h.Populations {
			h.surplusProduction.Prepare(p)
			if err := h.surplusProduction.Evaluate(p); err != nil {
				return EvaluationResult[T]{}, err
			}
		}
		return EvaluationResult[T]{ObjectiveContribution: h.surplusProduction.zero, DerivedQuantities: h.surplusProduction.Store()}, nil
	default:
		return EvaluationResult[T]{}, fmt.Errorf("stockassess: evaluate: unknown evaluator kind %d", h.Kind)
	}
}

// Report flattens the derived-quantity store into a ReportBundle (spec.md
// §4.7, §6).
func (h *EvaluatorHandle[T]) Report() ReportBundle {
	switch h.Kind {
	case CatchAtAge:
		return reportStore(h.catchAtAge.Store())
	case SurplusProduction:
		return reportStore(h.surplusProduction.Store())
	default:
		return ReportBundle{}
	}
}

// Finalize invokes the underlying evaluator's at-most-once diagnostic call
// (spec.md §7).
func (h *EvaluatorHandle[T]) Finalize() {
	switch h.Kind {
	case CatchAtAge:
		h.catchAtAge.Finalize()
	case SurplusProduction:
		h.surplusProduction.Finalize()
	}
}
