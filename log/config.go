package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Option configures a [Logger].
type Option func(*settings)

// DefaultTimeLayout is the timestamp layout of loggers created without
// [WithTimeLayout].
const DefaultTimeLayout = time.RFC3339

const (
	DefaultCaller = false
	DefaultPretty = false
)

// settings is fixed once a Logger is made; changing it means making a new
// Logger with [Logger.Wrap].
type settings struct {
	output io.Writer
	layout string
	level  Level
	format Format
	caller bool
	pretty bool
}

func makeSettings(w io.Writer, opts ...Option) settings {
	s := settings{}
	WithDefaults(w)(&s)

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithDefaults resets every setting to its default and writes to w.
func WithDefaults(w io.Writer) Option {
	return func(s *settings) {
		*s = settings{
			layout: DefaultTimeLayout,
			level:  DefaultLevel,
			format: DefaultFormat,
			caller: DefaultCaller,
			pretty: DefaultPretty,
		}
		WithOutput(w)(s)
	}
}

// WithOutput sets the destination of log records. A nil writer discards
// them.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}

		s.output = w
	}
}

// WithLevel discards records below level.
func WithLevel(level Level) Option {
	return func(s *settings) { s.level = level }
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(s *settings) { s.format = format }
}

// WithCaller adds the source file and line of the logging call.
func WithCaller(enable bool) Option {
	return func(s *settings) { s.caller = enable }
}

// WithPretty colorizes records for a terminal.
func WithPretty(enable bool) Option {
	return func(s *settings) { s.pretty = enable }
}

// WithTimeLayout sets the timestamp layout.
//
// The layout may name one of the [time] package layouts, ignoring case and
// punctuation ("RFC3339Nano", "kitchen", "stamp-milli"), or be a layout
// string for [time.Time.Format]. "none" or a blank layout omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(s *settings) { s.layout = resolveLayout(layout) }
}

var namedLayouts = map[string]string{
	"none":        "",
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
}

func resolveLayout(layout string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, strings.ToLower(layout))

	if key == "" {
		return ""
	}

	if std, ok := namedLayouts[key]; ok {
		return std
	}

	return layout
}

func (s settings) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: s.caller,
		Level:     slog.Level(s.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				if s.layout == "" {
					return slog.Attr{}
				}

				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(s.layout))
				}

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}
}

func (s settings) handler() slog.Handler {
	opts := s.handlerOptions()

	switch {
	case s.pretty:
		return newPrettyHandler(s.output, s.format, opts)
	case s.format == FormatJSON:
		return slog.NewJSONHandler(s.output, opts)
	case s.format == FormatText:
		return slog.NewTextHandler(s.output, opts)
	default:
		return slog.DiscardHandler
	}
}
