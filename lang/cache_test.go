package lang

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestParseStringCached_SharesResult(t *testing.T) {
	t.Cleanup(ClearCache)

	const source = "universal_regions { 'a }\nblock B0 { kill(L0); }"

	first, err := ParseStringCached(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseStringCached(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first != second {
		t.Error("expected cache hit to return the shared AST")
	}
}

func TestParseStringCached_DistinctSources(t *testing.T) {
	t.Cleanup(ClearCache)

	a, err := ParseStringCached(context.Background(),
		"universal_regions { 'a }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, err := ParseStringCached(context.Background(),
		"universal_regions { 'b }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if a == b {
		t.Error("distinct sources must not share an AST")
	}
}

func TestParseStringCached_ErrorsCached(t *testing.T) {
	t.Cleanup(ClearCache)

	const source = "universal_regions { 'a 'b }"

	_, first := ParseStringCached(context.Background(), source)
	if !errors.Is(first, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", first)
	}

	_, second := ParseStringCached(context.Background(), source)
	if !errors.Is(second, ErrSyntax) {
		t.Errorf("expected cached ErrSyntax, got %v", second)
	}
}

func TestParseStringCached_Concurrent(t *testing.T) {
	t.Cleanup(ClearCache)

	const source = "universal_regions { 'a }\nblock B0 { use('a); }"

	results := make([]*Input, 8)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			input, err := ParseStringCached(context.Background(), source)
			if err != nil {
				t.Errorf("parse error: %v", err)
				return
			}

			results[i] = input
		}()
	}

	wg.Wait()

	for i, input := range results {
		if input != results[0] {
			t.Errorf("goroutine %d received a different AST", i)
		}
	}
}

func TestClearCache(t *testing.T) {
	t.Cleanup(ClearCache)

	const source = "universal_regions { 'a }"

	first, err := ParseStringCached(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	ClearCache()

	second, err := ParseStringCached(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first == second {
		t.Error("expected a fresh parse after clearing the cache")
	}
}

func TestParseReader(t *testing.T) {
	t.Cleanup(ClearCache)

	const source = `
universal_regions { 'a, 'b }
block B0 {
    outlives('a: 'b);
    goto B1;
}
block B1 {
}
`

	input, err := ParseReader(context.Background(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(input.Blocks) != 2 || input.Blocks[0].Name != "B0" {
		t.Errorf("unexpected blocks: %+v", input.Blocks)
	}

	direct, err := ParseStringCached(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if input != direct {
		t.Error("reader and string parses of identical source must share the AST")
	}
}

func TestParseReader_ReadError(t *testing.T) {
	t.Cleanup(ClearCache)

	_, err := ParseReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
