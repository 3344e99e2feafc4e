package cmd_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/polir/cli/cmd"
	"github.com/ardnew/polir/lang"
)

const sampleProgram = `universal_regions { 'a, 'b }
block B0 {
    outlives('a: 'b);
    use('a, 'b);
    goto B1;
}
block B1 {
}
`

type harness struct {
	root struct {
		Fmt   cmd.Fmt   `cmd:""`
		Query cmd.Query `cmd:""`
	}
	stdout strings.Builder
	ctx    context.Context
}

// run parses args through Kong and executes the selected command with
// captured stdout.
func run(t *testing.T, args ...string) (*harness, error) {
	t.Helper()
	t.Cleanup(lang.ClearCache)

	h := &harness{}

	parser, err := kong.New(&h.root,
		kong.Writers(&h.stdout, &h.stdout),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	if err != nil {
		t.Fatalf("kong error: %v", err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse args error: %v", err)
	}

	h.ctx = cmd.WithContext(context.Background(), ktx)

	switch {
	case strings.HasPrefix(ktx.Command(), "fmt native"):
		return h, h.root.Fmt.Native.Run(h.ctx)
	case strings.HasPrefix(ktx.Command(), "fmt json"):
		return h, h.root.Fmt.JSON.Run(h.ctx)
	case strings.HasPrefix(ktx.Command(), "fmt yaml"):
		return h, h.root.Fmt.YAML.Run(h.ctx)
	case strings.HasPrefix(ktx.Command(), "query"):
		return h, h.root.Query.Run(h.ctx)
	default:
		t.Fatalf("unexpected command %q", ktx.Command())

		return nil, nil
	}
}

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte(sampleProgram), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	return path
}

func TestFmt_Native(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "fmt", "native", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	// Canonical output of the already canonical sample is identical.
	if h.stdout.String() != sampleProgram {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s",
			h.stdout.String(), sampleProgram)
	}
}

func TestFmt_NativeIndent(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "fmt", "native", "-i", "2", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	if !strings.Contains(h.stdout.String(), "\n  outlives") {
		t.Errorf("expected two-space indent:\n%s", h.stdout.String())
	}
}

func TestFmt_JSON(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "fmt", "json", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(h.stdout.String()), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, h.stdout.String())
	}

	if _, ok := decoded["blocks"]; !ok {
		t.Errorf("JSON output missing blocks:\n%s", h.stdout.String())
	}
}

func TestFmt_YAML(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "fmt", "yaml", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	for _, want := range []string{"universal_regions", "B0", "outlives"} {
		if !strings.Contains(h.stdout.String(), want) {
			t.Errorf("YAML output missing %q:\n%s", want, h.stdout.String())
		}
	}
}

func TestFmt_MissingFile(t *testing.T) {
	_, err := run(t, "fmt", "native",
		filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFmt_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path,
		[]byte("universal_regions { 'a 'b }"), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	_, err := run(t, "fmt", "native", path)
	if err == nil {
		t.Fatal("expected parse error")
	}

	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error lacks position: %v", err)
	}
}

func TestQuery_Scalar(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "query", "len(blocks)", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	if strings.TrimSpace(h.stdout.String()) != "2" {
		t.Errorf("query output = %q, want 2", h.stdout.String())
	}
}

func TestQuery_String(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "query", "blocks[1].name", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	if strings.TrimSpace(h.stdout.String()) != "B1" {
		t.Errorf("query output = %q, want B1", h.stdout.String())
	}
}

func TestQuery_Structured(t *testing.T) {
	path := writeSample(t)

	h, err := run(t, "query", "blocks[0].goto", path)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}

	var decoded []any
	if err := json.Unmarshal([]byte(h.stdout.String()), &decoded); err != nil {
		t.Fatalf("structured output is not JSON: %v\n%s",
			err, h.stdout.String())
	}

	if len(decoded) != 1 || decoded[0] != "B1" {
		t.Errorf("unexpected result: %v", decoded)
	}
}

func TestQuery_BadExpression(t *testing.T) {
	path := writeSample(t)

	_, err := run(t, "query", "len(", path)
	if err == nil {
		t.Fatal("expected compile error")
	}
}
