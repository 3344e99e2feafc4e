// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling is compiled in only under the "pprof" build tag. Without
// the tag every operation is a no-op, so callers never need their own
// build constraints:
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", true
//	}
//	defer cfg.Start().Stop()
//
// Use [Modes] for the list of supported mode names ("cpu", "heap",
// "trace", ...); it is empty when profiling is compiled out. Profile
// files are written to the configured directory with names matching
// the mode (cpu.pprof, mem.pprof). Analyze them with go tool pprof.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
