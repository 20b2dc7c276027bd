package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler writes colorized records for a terminal. In text format a
// record is one line of key=value pairs; in JSON format it is an indented
// object. Either way string values are unquoted, so the output is for
// people, not parsers.
type prettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	format Format
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	prefix string
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{mu: &sync.Mutex{}, w: w, format: format, opts: *opts}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, h.replace(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})

		return true
	})

	var buf bytes.Buffer

	sep, open, end := " ", "", "\n"
	if h.format == FormatJSON {
		sep, open, end = ",\n  ", "{\n  ", "\n}\n"
	}

	buf.WriteString(open)

	n := 0

	for _, a := range fields {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if n > 0 {
			buf.WriteString(sep)
		}

		n++

		h.writeAttr(&buf, a)
	}

	buf.WriteString(end)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	buf.WriteString(ansiGray)
	buf.WriteString(a.Key)
	buf.WriteString(ansiReset)

	if h.format == FormatJSON {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	color, text := paint(a.Key, a.Value.Resolve())

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(ansiReset)
}

// paint returns the color and text of a value.
func paint(key string, v slog.Value) (string, string) {
	switch v.Kind() {
	case slog.KindInt64:
		return ansiYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return ansiYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return ansiYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		if v.Bool() {
			return ansiGreen, "true"
		}

		return ansiRed, "false"
	case slog.KindDuration:
		return ansiMagenta, v.Duration().String()
	case slog.KindTime:
		return ansiBlue, v.Time().Format(time.RFC3339)
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			_, s := paint(a.Key, a.Value.Resolve())
			parts = append(parts, a.Key+"="+s)
		}

		return ansiCyan, "{" + strings.Join(parts, " ") + "}"
	}

	if key == slog.LevelKey {
		return levelColor(v.String()), v.String()
	}

	if l, ok := v.Any().(slog.Level); ok {
		return levelColor(l.String()), strings.ToUpper(Level(l).String())
	}

	return ansiCyan, v.String()
}

func levelColor(name string) string {
	switch strings.ToLower(name) {
	case "error":
		return ansiRed
	case "warn":
		return ansiYellow
	case "info":
		return ansiGreen
	default:
		return ansiBlue
	}
}
