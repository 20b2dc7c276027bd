package cmd

import (
	"bufio"
	"context"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/chatgram/commands"
	"github.com/ardnew/chatgram/grammar"
	"github.com/ardnew/chatgram/log"
	"github.com/ardnew/chatgram/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings are the global flags shared by every command.
type Settings struct {
	// GrammarFile names a YAML grammar declaration. It is resolved against
	// SearchPath. Empty selects the built-in command grammar.
	GrammarFile string

	// SearchPath lists the directories searched for GrammarFile.
	SearchPath []string

	// MaxInput is the length in bytes above which input lines are ignored.
	// Zero disables the limit.
	MaxInput int

	// Input is read when a command is given no text arguments.
	// Nil selects os.Stdin.
	Input io.Reader
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	return s
}

// LoadGrammar compiles the grammar selected by the [Settings] in ctx.
// The grammar traces its parses to the default logger.
func LoadGrammar(ctx context.Context) (*grammar.Grammar, error) {
	s := settingsFrom(ctx)
	opt := grammar.WithLogger(log.Default().WithGroup("grammar"))

	if s.GrammarFile == "" {
		return grammar.New(commands.Root(), opt)
	}

	path, ok := pkg.FindGrammar(s.GrammarFile, s.SearchPath)
	if !ok {
		return nil, ErrGrammarNotFound.With(
			slog.String("grammar", s.GrammarFile),
			slog.Any("path", s.SearchPath),
		)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrLoadGrammar.Wrap(err).With(slog.String("file", path))
	}
	defer file.Close()

	g, err := grammar.LoadDecl(ctx, file, opt)
	if err != nil {
		return nil, ErrLoadGrammar.Wrap(err).With(slog.String("file", path))
	}

	log.DebugContext(ctx, "loaded grammar",
		slog.String("file", path),
		slog.String("root", g.Root().Name()),
	)

	return g, nil
}

// maxLineBuffer bounds the line reader; longer lines stop the scan.
const maxLineBuffer = 1 << 20

// inputLines yields each element of args, or each line of the settings'
// input when args is empty. Lines longer than the configured limit are
// logged and skipped. The error, if any, is yielded last.
func inputLines(ctx context.Context, args []string) iter.Seq2[string, error] {
	s := settingsFrom(ctx)

	return func(yield func(string, error) bool) {
		accept := func(line string) bool {
			if s.MaxInput > 0 && len(line) > s.MaxInput {
				log.WarnContext(ctx, "input too long",
					slog.Int("length", len(line)),
					slog.Int("limit", s.MaxInput),
				)

				return true
			}

			return yield(line, nil)
		}

		if len(args) > 0 {
			for _, arg := range args {
				if !accept(arg) {
					return
				}
			}

			return
		}

		r := s.Input
		if r == nil {
			r = os.Stdin
		}

		ra := readahead.NewReader(r)
		defer ra.Close()

		scanner := bufio.NewScanner(ra)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBuffer)

		for scanner.Scan() {
			if !accept(scanner.Text()) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", ErrReadInput.Wrap(err))
		}
	}
}

// stdout returns the writer commands print their output to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
