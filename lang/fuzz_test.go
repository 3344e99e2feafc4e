package lang

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzLex tests the lexer with random inputs to find edge cases.
func FuzzLex(f *testing.F) {
	// Seed corpus with known valid inputs
	f.Add("'a")
	f.Add("B0 L1 V2")
	f.Add("universal_regions { 'a, 'b }")
	f.Add("outlives('a: 'b)")
	f.Add("borrow_region_at('a, L0)")
	f.Add("// comment\n'a")
	f.Add("{ } ( ) , ; : /")
	f.Add("use('a,'b);")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// Lexer should not panic on any input
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("lexer panicked on input %q: %v", input, r)
			}
		}()

		toks, err := lex(input)
		if err != nil {
			return
		}

		// A successful stream always ends with EOF and every token has
		// a valid position.
		if len(toks) == 0 || toks[len(toks)-1].Kind != KindEOF {
			t.Errorf("token stream not EOF-terminated: %v", toks)
		}

		for i, tok := range toks {
			if tok.Pos.Line < 1 || tok.Pos.Column < 1 || tok.Pos.Offset < 0 {
				t.Errorf("token %d has invalid position: %+v", i, tok.Pos)
			}
		}
	})
}

// FuzzParse tests the parser with random inputs to find edge cases.
func FuzzParse(f *testing.F) {
	// Seed corpus with known valid programs
	f.Add("universal_regions { }")
	f.Add("universal_regions { 'a, 'b }")
	f.Add("universal_regions { 'a, }\nvar_uses_region { (V1, 'a) }")
	f.Add("universal_regions { }\nvar_uses_region { }\nvar_drops_region { }")
	f.Add("universal_regions { }\nblock B0 { }")
	f.Add("universal_regions { }\nblock B0 { kill(L0); goto B1; }\nblock B1 { }")
	f.Add("universal_regions { }\nblock B0 { outlives('a: 'b) / use('a); }")
	f.Add("universal_regions { }\nblock B0 { ; / ; region_live_at('a); }")
	f.Add("universal_regions { }\nblock B0 { var_used(V0), var_drop_used(V1); }")

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// Parser should not panic on any input
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", input, r)
			}
		}()

		parsed, err := ParseString(context.Background(), input)

		// It's OK for parsing to fail, but it shouldn't panic and
		// errors should carry a position.
		if err != nil {
			if !strings.Contains(err.Error(), "line") {
				t.Errorf("error without position for %q: %v", input, err)
			}
			return
		}

		if parsed == nil {
			t.Fatalf("nil AST without error for %q", input)
		}

		// A successful parse always round-trips through the canonical
		// formatter.
		var buf strings.Builder
		if err := parsed.Format(context.Background(), &buf, 4); err != nil {
			t.Fatalf("format failed for %q: %v", input, err)
		}

		if _, err := ParseString(context.Background(), buf.String()); err != nil {
			t.Errorf("canonical output does not reparse for %q:\n%s\n%v",
				input, buf.String(), err)
		}
	})
}
