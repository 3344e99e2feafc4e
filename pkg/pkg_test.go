package pkg

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := strings.TrimSpace(Version)
	if v == "" {
		t.Fatal("embedded version is empty")
	}

	if strings.Count(v, ".") != 2 {
		t.Errorf("version %q is not semantic", v)
	}
}

func TestPrefix(t *testing.T) {
	p := Prefix()
	if p == "" {
		t.Fatal("prefix is empty")
	}

	if strings.HasPrefix(p, ".") {
		t.Errorf("prefix %q retains leading dot", p)
	}
}

func TestCacheDir(t *testing.T) {
	dir := CacheDir()
	if dir == "" {
		t.Fatal("cache dir is empty")
	}

	if !strings.HasSuffix(dir, Prefix()) {
		t.Errorf("cache dir %q does not end with prefix %q", dir, Prefix())
	}
}
