package profile

import "testing"

func TestConfig_Options(t *testing.T) {
	var cfg Config = func() (string, string, bool) {
		return "", "", false
	}

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath("/tmp/profiles")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/profiles" || !quiet {
		t.Errorf("config = (%q, %q, %v), want (cpu, /tmp/profiles, true)",
			mode, path, quiet)
	}
}

func TestConfig_StartDisabled(t *testing.T) {
	var cfg Config = func() (string, string, bool) {
		return "", "", false
	}

	// Unset mode must yield a safely stoppable no-op.
	cfg.Start().Stop()
}
