// Package lang parses the textual format used to describe borrow-fact
// programs: a control-flow graph of basic blocks annotated with the
// region, loan, and variable facts consumed by a Datalog-style borrow
// checker.
//
// The grammar is simple enough for a hand-written recursive descent
// parser. One generic comma-list helper covers every list form, each
// of which permits a trailing comma.
//
// # Grammar
//
// Informal EBNF:
//
//	Input     → "universal_regions" "{" Comma<Region> "}"
//	            VarUsesRegion? VarDropsRegion? Block*
//	VarUsesRegion  → "var_uses_region"  "{" Comma<Pair> "}"
//	VarDropsRegion → "var_drops_region" "{" Comma<Pair> "}"
//	Pair      → "(" Variable "," Region ")"
//	Block     → "block" BlockName "{" Statement* Goto? "}"
//	Goto      → "goto" Comma<BlockName> ";"
//	Statement → Comma<Effect> ";"
//	          | Comma<Effect> "/" Comma<Effect> ";"
//	Effect    → Fact | "use" "(" Comma<Region> ")"
//	Fact      → "outlives" "(" Region ":" Region ")"
//	          | "borrow_region_at" "(" Region "," Loan ")"
//	          | "invalidates" "(" Loan ")"
//	          | "kill" "(" Loan ")"
//	          | "region_live_at" "(" Region ")"
//	          | "var_used" "(" Variable ")"
//	          | "var_defined" "(" Variable ")"
//	          | "var_drop_used" "(" Variable ")"
//
// Identifiers are sigil-prefixed words: regions ('a), block names (B0),
// loans (L0), and variables (V0). Line comments (// ...) are discarded
// by the lexer. Whitespace is insignificant.
//
// # Example
//
//	universal_regions { 'a, 'b }
//	block B0 {
//	    outlives('a: 'b);
//	    use('a, 'b);
//	    goto B1;
//	}
//	block B1 {
//	}
//
// Parsing performs no semantic validation: duplicate block names,
// goto targets that are never declared, and undeclared variables are
// all structurally permitted and left to downstream consumers.
//
// The resulting [Input] is immutable after parsing. Parse calls share
// no mutable state, so concurrent parses require no synchronization.
package lang
