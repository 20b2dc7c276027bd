package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled, structured records through [log/slog].
//
// Logger is a small value that may be copied and shared between
// goroutines. The zero Logger discards everything, so it can be embedded
// in other types without being configured.
type Logger struct {
	sl *slog.Logger
	settings
}

// Make returns a Logger writing to w, configured by opts.
func Make(w io.Writer, opts ...Option) Logger {
	s := makeSettings(w, opts...)

	return Logger{sl: slog.New(s.handler()), settings: s}
}

// Discard returns a Logger that writes nothing.
func Discard() Logger { return Logger{} }

// Wrap returns a Logger with l's settings changed by opts. Attributes
// added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	s := l.settings
	if l.sl == nil {
		s = makeSettings(nil)
	}

	for _, opt := range opts {
		opt(&s)
	}

	return Logger{sl: slog.New(s.handler()), settings: s}
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.sl == nil || len(attrs) == 0 {
		return l
	}

	l.sl = slog.New(l.sl.Handler().WithAttrs(attrs))

	return l
}

// WithGroup returns a Logger that qualifies later attributes with name.
func (l Logger) WithGroup(name string) Logger {
	if l.sl == nil {
		return l
	}

	l.sl = slog.New(l.sl.Handler().WithGroup(name))

	return l
}

// Level returns the minimum level written.
func (l Logger) Level() Level {
	if l.sl == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.sl == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.sl != nil && l.sl.Enabled(ctx, slog.Level(level))
}

// Handler returns the underlying handler, or [slog.DiscardHandler] for the
// zero Logger.
func (l Logger) Handler() slog.Handler {
	if l.sl == nil {
		return slog.DiscardHandler
	}

	return l.sl.Handler()
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.write(ctx, LevelTrace, msg, attrs)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.write(ctx, LevelDebug, msg, attrs)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.write(ctx, LevelInfo, msg, attrs)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.write(ctx, LevelWarn, msg, attrs)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.write(ctx, LevelError, msg, attrs)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.write(context.Background(), LevelTrace, msg, attrs)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.write(context.Background(), LevelDebug, msg, attrs)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.write(context.Background(), LevelInfo, msg, attrs)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.write(context.Background(), LevelWarn, msg, attrs)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.write(context.Background(), LevelError, msg, attrs)
}

// callerSkip counts the frames above writeSkip that belong to this
// package: write and the exported method or function that called it.
const callerSkip = 3

func (l Logger) write(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l.writeSkip(ctx, callerSkip, level, msg, attrs)
}

func (l Logger) writeSkip(
	ctx context.Context,
	skip int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.caller {
		var pcs [1]uintptr

		runtime.Callers(skip+1, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.sl.Handler().Handle(ctx, r)
}
