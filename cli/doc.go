// Package cli contains the command line interface for chatgram.
//
// # Usage
//
// With no command, chatgram parses its arguments (or stdin lines) against
// the grammar and prints each result:
//
//	chatgram '!f talk join'
//	chatgram parse --format tree --analyze '!f talk dance'
//	chatgram --grammar mybot.yaml repl
//
// # Configuration
//
// Flags may also be set in config.yaml under the user configuration
// directory, a flat YAML mapping of flag names to values. Run
// "chatgram init" to write the current flags there. Command-line flags
// override config file values.
//
// # Grammar files
//
// A relative --grammar is looked up in the working directory, then in the
// grammars directory under the configuration directory, then in each
// directory listed in $CHATGRAM_PATH.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir.
package cli
