package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	t.Parallel()

	logger := Make(&bytes.Buffer{})

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}

	if got := logger.Format(); got != DefaultFormat {
		t.Errorf("Format() = %v, want %v", got, DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	t.Parallel()

	var logger Logger

	// Must not panic.
	logger.Info("ignored", slog.Int("n", 1))
	logger.TraceContext(context.Background(), "ignored")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if got := logger.With(slog.String("k", "v")); got.sl != nil {
		t.Error("With on zero Logger created a handler")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level Level
		write func(Logger)
		want  bool
	}{
		{"trace hidden at debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"trace shown at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"info hidden at error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"error shown at error", LevelError, func(l Logger) { l.Error("msg") }, true},
		{"warn shown at info", LevelInfo, func(l Logger) { l.Warn("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.write(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	).With(slog.String("component", "grammar"))

	logger.Trace("parse complete", slog.Int("consumed", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	if _, ok := rec[slog.TimeKey]; ok {
		t.Error("time written with layout none")
	}

	want := map[string]any{
		"level":     "TRACE",
		"msg":       "parse complete",
		"component": "grammar",
		"consumed":  float64(3),
	}

	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	base.Debug("dropped")
	wrapped.Debug("kept")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "kept") {
		t.Errorf("wrapped logger wrote %q", second.String())
	}

	if base.Level() != LevelError {
		t.Error("Wrap changed the receiver")
	}
}

func TestLogger_Caller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithFormat(FormatJSON)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller is not this file: %s", buf.String())
	}
}

func TestLogger_Pretty(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			Make(&buf, WithPretty(true), WithFormat(format)).
				With(slog.String("grammar", "!f")).
				WithGroup("parse").
				Info("done", slog.Bool("matched", true))

			out := buf.String()

			for _, want := range []string{"done", "!f", "parse.matched", ansiGreen} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %q", want, out)
				}
			}
		})
	}
}

func TestLogger_Concurrent(t *testing.T) {
	t.Parallel()

	var buf safeBuffer

	logger := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(slog.Int("worker", i)).Info("tick")
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Errorf("wrote %d records, want 16", got)
	}
}

func TestPackageFunctions(t *testing.T) {
	var buf bytes.Buffer

	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Trace, "TRACE"},
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) ||
				!strings.Contains(out, `"key":"value"`) {
				t.Errorf("unexpected record: %s", out)
			}
		})
	}

	Config(WithLevel(LevelError))
	buf.Reset()
	Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("Config did not raise level: %q", buf.String())
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
