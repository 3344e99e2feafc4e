package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Input.
func (in *Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.ToMap())
}

// ToMap converts the program to a native Go map structure. The same
// rendering backs JSON and YAML output and the query environment, so
// every sequence keeps its textual order.
func (in *Input) ToMap() map[string]any {
	return map[string]any{
		"universal_regions": regionList(in.UniversalRegions),
		"var_uses_region":   pairList(in.VarUsesRegion),
		"var_drops_region":  pairList(in.VarDropsRegion),
		"blocks":            blockList(in.Blocks),
	}
}

func regionList(regions []Region) []any {
	list := make([]any, len(regions))
	for i, r := range regions {
		list[i] = string(r)
	}

	return list
}

func pairList(pairs []VarRegion) []any {
	list := make([]any, len(pairs))
	for i, p := range pairs {
		list[i] = map[string]any{
			"variable": string(p.Variable),
			"region":   string(p.Region),
		}
	}

	return list
}

func blockList(blocks []*Block) []any {
	list := make([]any, len(blocks))
	for i, b := range blocks {
		statements := make([]any, len(b.Statements))
		for j, s := range b.Statements {
			statements[j] = statementMap(s)
		}

		successors := make([]any, len(b.Goto))
		for j, name := range b.Goto {
			successors[j] = string(name)
		}

		list[i] = map[string]any{
			"name":       string(b.Name),
			"statements": statements,
			"goto":       successors,
		}
	}

	return list
}

func statementMap(s *Statement) map[string]any {
	return map[string]any{
		"start":   effectList(s.Start),
		"effects": effectList(s.Effects),
	}
}

func effectList(effects []Effect) []any {
	list := make([]any, len(effects))
	for i, e := range effects {
		list[i] = effectMap(e)
	}

	return list
}

func effectMap(e Effect) map[string]any {
	if e.Kind == EffectUse {
		return map[string]any{"use": regionList(e.Regions)}
	}

	return factMap(e.Fact)
}

func factMap(f Fact) map[string]any {
	m := map[string]any{"fact": f.Kind.String()}

	switch f.Kind {
	case FactOutlives:
		m["a"] = string(f.A)
		m["b"] = string(f.B)
	case FactBorrowRegionAt:
		m["region"] = string(f.Region)
		m["loan"] = string(f.Loan)
	case FactInvalidates, FactKill:
		m["loan"] = string(f.Loan)
	case FactRegionLiveAt:
		m["region"] = string(f.Region)
	case FactDefineVariable, FactUseVariable:
		m["variable"] = string(f.Variable)
	}

	return m
}
