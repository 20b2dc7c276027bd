package profile

import (
	"slices"
	"testing"
)

func TestProfilerDisabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    Profiler
	}{
		{"zero", Profiler{}},
		{"unknown", Profiler{Mode: "bogus", Dir: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.p.Enabled() {
				t.Fatalf("Enabled() = true for %+v", tt.p)
			}

			s := tt.p.Start()
			s.Stop()
			s.Stop()
		})
	}
}

func TestModesSorted(t *testing.T) {
	t.Parallel()

	m := Modes()
	if !slices.IsSorted(m) {
		t.Errorf("Modes() = %v, not sorted", m)
	}

	for _, mode := range m {
		if !(Profiler{Mode: mode}).Enabled() {
			t.Errorf("Profiler{Mode: %q}.Enabled() = false", mode)
		}
	}
}
