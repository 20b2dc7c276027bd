// Package profile starts an optional [github.com/pkg/profile] session.
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Profiler.Start] always returns a no-op stopper, so
// callers never need to check the tag themselves:
//
//	p := profile.Profiler{Mode: "cpu", Dir: "/tmp/chatgram"}
//	defer p.Start().Stop()
//
// Profiles are written to Dir under the mode's file name (cpu.pprof,
// mem.pprof, and so on) and can be read with "go tool pprof".
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
