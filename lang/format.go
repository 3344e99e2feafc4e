package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in canonical fact-program syntax to the
// writer. Indent is the number of spaces used for statements inside
// block bodies. Reparsing the output yields a structurally identical
// AST.
func (in *Input) Format(_ context.Context, w io.Writer, indent int) error {
	pad := strings.Repeat(" ", max(indent, 0))

	if err := formatRegionSection(w, in.UniversalRegions); err != nil {
		return err
	}

	if in.VarUsesRegion != nil {
		if err := formatPairSection(
			w, "var_uses_region", in.VarUsesRegion,
		); err != nil {
			return err
		}
	}

	if in.VarDropsRegion != nil {
		if err := formatPairSection(
			w, "var_drops_region", in.VarDropsRegion,
		); err != nil {
			return err
		}
	}

	for _, b := range in.Blocks {
		if _, err := fmt.Fprintf(w, "block %s {\n", b.Name); err != nil {
			return err
		}

		for _, s := range b.Statements {
			if _, err := fmt.Fprintf(
				w, "%s%s;\n", pad, formatStatement(s),
			); err != nil {
				return err
			}
		}

		if len(b.Goto) > 0 {
			if _, err := fmt.Fprintf(
				w, "%sgoto %s;\n", pad, joinBlockNames(b.Goto),
			); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program as JSON to the writer.
func (in *Input) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(in, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(in)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (in *Input) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, in.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

func formatRegionSection(w io.Writer, regions []Region) error {
	_, err := fmt.Fprintf(
		w, "universal_regions { %s}\n", joinRegions(regions),
	)

	return err
}

func formatPairSection(
	w io.Writer,
	keyword string,
	pairs []VarRegion,
) error {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("(%s, %s)", p.Variable, p.Region)
	}

	body := strings.Join(parts, ", ")
	if body != "" {
		body += " "
	}

	_, err := fmt.Fprintf(w, "%s { %s}\n", keyword, body)

	return err
}

// formatStatement renders one statement without its terminating
// semicolon. The partitioned form is emitted only when the start group
// is not simply the auto-copied region_live_at subset of the mid
// effects, so formatting never changes what a reparse would build.
func formatStatement(s *Statement) string {
	effects := formatEffects(s.Effects)

	if !s.partitioned() {
		return effects
	}

	start := formatEffects(s.Start)
	if start == "" {
		return "/ " + effects
	}

	if effects == "" {
		return start + " /"
	}

	return start + " / " + effects
}

// partitioned reports whether the statement must be rendered with the
// "/" form to round-trip its start effects.
func (s *Statement) partitioned() bool {
	if s.Start == nil {
		return false
	}

	return !reflect.DeepEqual(s.Start, NewStatement(s.Effects).Start)
}

func formatEffects(effects []Effect) string {
	parts := make([]string, len(effects))
	for i, e := range effects {
		parts[i] = formatEffect(e)
	}

	return strings.Join(parts, ", ")
}

func formatEffect(e Effect) string {
	if e.Kind == EffectUse {
		return fmt.Sprintf("use(%s)", strings.TrimSuffix(
			joinRegions(e.Regions), " ",
		))
	}

	return formatFact(e.Fact)
}

func formatFact(f Fact) string {
	switch f.Kind {
	case FactOutlives:
		return fmt.Sprintf("outlives(%s: %s)", f.A, f.B)
	case FactBorrowRegionAt:
		return fmt.Sprintf("borrow_region_at(%s, %s)", f.Region, f.Loan)
	case FactInvalidates:
		return fmt.Sprintf("invalidates(%s)", f.Loan)
	case FactKill:
		return fmt.Sprintf("kill(%s)", f.Loan)
	case FactRegionLiveAt:
		return fmt.Sprintf("region_live_at(%s)", f.Region)
	case FactDefineVariable:
		return fmt.Sprintf("var_defined(%s)", f.Variable)
	case FactUseVariable:
		return fmt.Sprintf("var_used(%s)", f.Variable)
	default:
		return ""
	}
}

func joinRegions(regions []Region) string {
	var buf strings.Builder

	for i, r := range regions {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.WriteString(string(r))
	}

	if buf.Len() > 0 {
		buf.WriteString(" ")
	}

	return buf.String()
}

func joinBlockNames(names []BlockName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}

	return strings.Join(parts, ", ")
}
