package profile

import "slices"

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler selects a profiling mode and the directory its output is written
// to. The zero value profiles nothing.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Enabled reports whether p names a mode supported by this build.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && slices.Contains(Modes(), p.Mode)
}

// Start begins profiling and returns the Stopper that ends it.
// Start returns a no-op Stopper if p is not [Profiler.Enabled].
// Stop is always safe to call, including more than once.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return &once{s: start(p)}
}

type ignore struct{}

func (ignore) Stop() {}

type once struct{ s Stopper }

func (o *once) Stop() {
	if o.s != nil {
		o.s.Stop()
		o.s = nil
	}
}
