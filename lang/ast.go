package lang

import "iter"

// Identifier namespaces are distinct wrapper types over their source
// spelling (sigil included). Equality is exact text equality; the
// parser never interns or deduplicates.
type (
	// Region is a lifetime-like identifier ('a).
	Region string

	// Loan identifies a single borrow event (L0).
	Loan string

	// Variable identifies a tracked program variable (V0).
	Variable string

	// BlockName identifies a basic block (B0), as a declaration site
	// or a goto target.
	BlockName string
)

// FactKind discriminates the closed set of fact variants.
type FactKind int

const (
	// FactOutlives asserts region A outlives region B.
	FactOutlives FactKind = iota

	// FactBorrowRegionAt associates a borrow region with a loan.
	FactBorrowRegionAt

	// FactInvalidates marks a loan as invalidated at this point.
	FactInvalidates

	// FactKill kills a loan at this point.
	FactKill

	// FactRegionLiveAt marks a region as live at this point.
	FactRegionLiveAt

	// FactDefineVariable marks a variable definition.
	FactDefineVariable

	// FactUseVariable marks a variable use. Both the var_used and the
	// var_drop_used surface forms construct this variant.
	FactUseVariable
)

// String returns the surface keyword of the fact kind.
func (k FactKind) String() string {
	switch k {
	case FactOutlives:
		return "outlives"
	case FactBorrowRegionAt:
		return "borrow_region_at"
	case FactInvalidates:
		return "invalidates"
	case FactKill:
		return "kill"
	case FactRegionLiveAt:
		return "region_live_at"
	case FactDefineVariable:
		return "var_defined"
	case FactUseVariable:
		return "var_used"
	default:
		return "unknown"
	}
}

// Fact is one atomic borrow-checking assertion. Kind selects which of
// the identifier fields are meaningful; the rest are zero.
type Fact struct {
	Kind FactKind

	A, B     Region   // FactOutlives
	Region   Region   // FactBorrowRegionAt, FactRegionLiveAt
	Loan     Loan     // FactBorrowRegionAt, FactInvalidates, FactKill
	Variable Variable // FactUseVariable, FactDefineVariable
}

// NewOutlives constructs an outlives(a: b) fact.
func NewOutlives(a, b Region) Fact {
	return Fact{Kind: FactOutlives, A: a, B: b}
}

// NewBorrowRegionAt constructs a borrow_region_at(region, loan) fact.
func NewBorrowRegionAt(region Region, loan Loan) Fact {
	return Fact{Kind: FactBorrowRegionAt, Region: region, Loan: loan}
}

// NewInvalidates constructs an invalidates(loan) fact.
func NewInvalidates(loan Loan) Fact {
	return Fact{Kind: FactInvalidates, Loan: loan}
}

// NewKill constructs a kill(loan) fact.
func NewKill(loan Loan) Fact {
	return Fact{Kind: FactKill, Loan: loan}
}

// NewRegionLiveAt constructs a region_live_at(region) fact.
func NewRegionLiveAt(region Region) Fact {
	return Fact{Kind: FactRegionLiveAt, Region: region}
}

// NewDefineVariable constructs a var_defined(variable) fact.
func NewDefineVariable(variable Variable) Fact {
	return Fact{Kind: FactDefineVariable, Variable: variable}
}

// NewUseVariable constructs a var_used(variable) fact. The
// var_drop_used surface form constructs the identical value.
func NewUseVariable(variable Variable) Fact {
	return Fact{Kind: FactUseVariable, Variable: variable}
}

// EffectKind discriminates the two effect forms.
type EffectKind int

const (
	// EffectFact is a single Fact effect.
	EffectFact EffectKind = iota

	// EffectUse is the use(...) effect listing regions used at this
	// point. Distinct from the var_used fact.
	EffectUse
)

// Effect is a statement-level element: either a fact or a use(...)
// region list.
type Effect struct {
	Kind    EffectKind
	Fact    Fact     // EffectFact
	Regions []Region // EffectUse, ordered as written
}

// NewFactEffect wraps a fact as an effect.
func NewFactEffect(f Fact) Effect {
	return Effect{Kind: EffectFact, Fact: f}
}

// NewUseEffect constructs a use(regions...) effect.
func NewUseEffect(regions []Region) Effect {
	return Effect{Kind: EffectUse, Regions: regions}
}

// Statement is an ordered effect sequence, split between the effects
// emitted at the statement's start point and those emitted at its mid
// point.
type Statement struct {
	// Start holds effects destined for the statement's start point.
	// It is nil for an unpartitioned statement with no region_live_at
	// facts, and non-nil (possibly empty) whenever the source used the
	// "/" partitioned form.
	Start []Effect

	// Effects holds effects destined for the statement's mid point.
	Effects []Effect
}

// NewStatement builds a statement from the unpartitioned form.
// Anything live on entry to the mid point is also live on entry to the
// start point, so region_live_at facts are copied into Start.
func NewStatement(effects []Effect) *Statement {
	var start []Effect

	for _, e := range effects {
		if e.Kind == EffectFact && e.Fact.Kind == FactRegionLiveAt {
			start = append(start, e)
		}
	}

	return &Statement{
		Start:   start,
		Effects: effects,
	}
}

// NewStatementWithStart builds a statement from the "/" partitioned
// form, taking both effect groups exactly as written.
func NewStatementWithStart(start, effects []Effect) *Statement {
	return &Statement{
		Start:   start,
		Effects: effects,
	}
}

// Block is a basic block: a name, its statements in execution order,
// and its successor blocks in goto priority order.
type Block struct {
	Name       BlockName
	Statements []*Statement
	Goto       []BlockName
}

// VarRegion is one (variable, region) pair from a var_uses_region or
// var_drops_region section.
type VarRegion struct {
	Variable Variable
	Region   Region
}

// Input is the top-level program description.
type Input struct {
	UniversalRegions []Region
	VarUsesRegion    []VarRegion // empty when the section is absent
	VarDropsRegion   []VarRegion // empty when the section is absent
	Blocks           []*Block
}

// NewInput assembles the top-level program value. Nil uses or drops
// stand for an omitted section.
func NewInput(
	universalRegions []Region,
	varUsesRegion []VarRegion,
	varDropsRegion []VarRegion,
	blocks []*Block,
) *Input {
	return &Input{
		UniversalRegions: universalRegions,
		VarUsesRegion:    varUsesRegion,
		VarDropsRegion:   varDropsRegion,
		Blocks:           blocks,
	}
}

// GetBlock retrieves a block by name. When duplicate names exist, the
// first declaration wins. Returns (nil, false) if no block matches.
func (in *Input) GetBlock(name BlockName) (*Block, bool) {
	for _, b := range in.Blocks {
		if b.Name == name {
			return b, true
		}
	}

	return nil, false
}

// AllFacts returns an iterator over every fact in the program, in
// block, statement, and effect order. Start-point effects of each
// statement precede its mid-point effects.
func (in *Input) AllFacts() iter.Seq[Fact] {
	return func(yield func(Fact) bool) {
		for _, b := range in.Blocks {
			for _, s := range b.Statements {
				for _, group := range [][]Effect{s.Start, s.Effects} {
					for _, e := range group {
						if e.Kind != EffectFact {
							continue
						}

						if !yield(e.Fact) {
							return
						}
					}
				}
			}
		}
	}
}
