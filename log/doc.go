// Package log writes leveled, structured records through [log/slog].
//
// A [Logger] is made once with functional options and never changes:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("grammar loaded", slog.String("path", path))
//
// [Logger.Wrap] derives a Logger with different settings and [Logger.With]
// one that adds attributes to every record. The zero Logger discards all
// records, which lets libraries accept a Logger without requiring one.
//
// Levels extend slog's with [LevelTrace], below debug, for per-input
// diagnostics such as the outcome of each parse.
//
// With [WithPretty], records are colorized for a terminal in either format.
//
// The package-level functions ([Info], [Debug], ...) write through a
// default Logger on standard error, adjusted with [Config].
package log
