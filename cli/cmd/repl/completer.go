package repl

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/polir/lang"
)

// envNames are the top-level identifiers of the query environment.
var envNames = []string{
	"universal_regions",
	"var_uses_region",
	"var_drops_region",
	"blocks",
}

// fieldNames are the member keys reachable from the environment.
var fieldNames = []string{
	"name", "statements", "goto",
	"start", "effects", "use",
	"fact", "region", "loan", "variable", "a", "b",
}

// builtinNames are the expr-lang builtins most useful for querying
// fact programs.
var builtinNames = []string{
	"all", "any", "count", "filter", "first", "last",
	"len", "map", "max", "min", "none", "one", "sort", "sum",
}

// candidates builds the completion candidate list for a program:
// environment names, member fields, builtins, and every block name
// quoted for use in comparisons.
func candidates(in *lang.Input) []string {
	list := make([]string, 0,
		len(envNames)+len(fieldNames)+len(builtinNames)+len(in.Blocks))

	list = append(list, envNames...)
	list = append(list, fieldNames...)
	list = append(list, builtinNames...)

	for _, b := range in.Blocks {
		name := `"` + string(b.Name) + `"`
		if !slices.Contains(list, name) {
			list = append(list, name)
		}
	}

	slices.Sort(list)

	return slices.Compact(list)
}

// currentWord locates the identifier-like token surrounding the cursor
// and returns it with its byte offsets.
func currentWord(text string, cursor int) (word string, start, end int) {
	if cursor > len(text) {
		cursor = len(text)
	}

	start = cursor
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}

	end = cursor
	for end < len(text) && isWordByte(text[end]) {
		end++
	}

	return text[start:end], start, end
}

func isWordByte(c byte) bool {
	return c == '_' || c == '"' ||
		('0' <= c && c <= '9') ||
		('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z')
}

// match ranks candidates against the given word prefix.
func match(word string, list []string) fuzzy.Matches {
	if word == "" {
		return nil
	}

	return fuzzy.Find(word, list)
}
