package lang

// Kind classifies a lexical token.
type Kind int

const (
	// KindEOF marks the end of the token stream.
	KindEOF Kind = iota

	// Identifier classes, each a sigil followed by one or more word
	// characters.

	// KindRegion is a region identifier ('a).
	KindRegion

	// KindBlock is a block-name identifier (B0).
	KindBlock

	// KindLoan is a loan identifier (L0).
	KindLoan

	// KindVariable is a variable identifier (V0).
	KindVariable

	// Keywords.

	KindUniversalRegions
	KindVarUsesRegion
	KindVarDropsRegion
	KindKwBlock
	KindGoto
	KindOutlives
	KindBorrowRegionAt
	KindInvalidates
	KindKill
	KindVarUsed
	KindVarDefined
	KindRegionLiveAt
	KindVarDropUsed
	KindUse

	// Punctuation.

	KindLBrace
	KindRBrace
	KindLParen
	KindRParen
	KindComma
	KindSemi
	KindColon
	KindSlash
)

// String returns a human-readable description of the token kind,
// suitable for error messages.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindRegion:
		return "region"
	case KindBlock:
		return "block name"
	case KindLoan:
		return "loan"
	case KindVariable:
		return "variable"
	case KindUniversalRegions:
		return `"universal_regions"`
	case KindVarUsesRegion:
		return `"var_uses_region"`
	case KindVarDropsRegion:
		return `"var_drops_region"`
	case KindKwBlock:
		return `"block"`
	case KindGoto:
		return `"goto"`
	case KindOutlives:
		return `"outlives"`
	case KindBorrowRegionAt:
		return `"borrow_region_at"`
	case KindInvalidates:
		return `"invalidates"`
	case KindKill:
		return `"kill"`
	case KindVarUsed:
		return `"var_used"`
	case KindVarDefined:
		return `"var_defined"`
	case KindRegionLiveAt:
		return `"region_live_at"`
	case KindVarDropUsed:
		return `"var_drop_used"`
	case KindUse:
		return `"use"`
	case KindLBrace:
		return `"{"`
	case KindRBrace:
		return `"}"`
	case KindLParen:
		return `"("`
	case KindRParen:
		return `")"`
	case KindComma:
		return `","`
	case KindSemi:
		return `";"`
	case KindColon:
		return `":"`
	case KindSlash:
		return `"/"`
	default:
		return "unknown"
	}
}

// keywords maps keyword spellings to their token kinds.
var keywords = map[string]Kind{
	"universal_regions": KindUniversalRegions,
	"var_uses_region":   KindVarUsesRegion,
	"var_drops_region":  KindVarDropsRegion,
	"block":             KindKwBlock,
	"goto":              KindGoto,
	"outlives":          KindOutlives,
	"borrow_region_at":  KindBorrowRegionAt,
	"invalidates":       KindInvalidates,
	"kill":              KindKill,
	"var_used":          KindVarUsed,
	"var_defined":       KindVarDefined,
	"region_live_at":    KindRegionLiveAt,
	"var_drop_used":     KindVarDropUsed,
	"use":               KindUse,
}

// Position locates a token or error within the source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number, starting at 1
}

// Token is a single classified span of source text.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String returns the token text for identifiers and the kind
// description otherwise.
func (t Token) String() string {
	switch t.Kind {
	case KindRegion, KindBlock, KindLoan, KindVariable:
		return t.Text
	default:
		return t.Kind.String()
	}
}
