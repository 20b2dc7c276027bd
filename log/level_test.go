package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" Info ", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"warn+2", Level(6)},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	t.Parallel()

	names := slices.Collect(Levels())
	if len(names) != 5 || names[0] != "trace" {
		t.Fatalf("Levels() = %v", names)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range slices.Collect(Formats()) {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}

	if got := ParseFormat("xml"); got != DefaultFormat {
		t.Errorf("ParseFormat(xml) = %v, want default", got)
	}
}

func TestResolveLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"RFC3339Nano", time.RFC3339Nano},
		{"stamp-milli", time.StampMilli},
		{"Kitchen", time.Kitchen},
		{"none", ""},
		{"  ", ""},
		{"2006/01/02", "2006/01/02"},
	}

	for _, tt := range tests {
		if got := resolveLayout(tt.in); got != tt.want {
			t.Errorf("resolveLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
