package grammar

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/chatgram/log"
)

// Grammar is a validated token tree ready for parsing.
//
// A Grammar never changes after [New] returns and may be shared by any
// number of goroutines without synchronization.
type Grammar struct {
	root      Token
	tokenizer Tokenizer
	logger    log.Logger
}

// Option configures a [Grammar].
type Option func(*Grammar)

// WithLogger sets the logger used to trace parses.
func WithLogger(logger log.Logger) Option {
	return func(g *Grammar) {
		g.logger = logger
	}
}

// WithEscape sets the escape character used to tokenize input.
// A zero rune disables escaping.
func WithEscape(escape rune) Option {
	return func(g *Grammar) {
		g.tokenizer.Escape = escape
	}
}

// New validates root and compiles it into a [Grammar].
//
// All configuration errors found anywhere in the tree are returned together.
// Each wraps [ErrConfig] and one of the narrower sentinels, and carries the
// slash-separated path of the offending token as a "token" attribute.
func New(root Token, opts ...Option) (*Grammar, error) {
	if err := validate(root); err != nil {
		return nil, err
	}

	g := &Grammar{
		root:      root,
		tokenizer: Tokenizer{Escape: DefaultEscape},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// MustNew is like [New] but panics if root is not a valid grammar.
func MustNew(root Token, opts ...Option) *Grammar {
	g, err := New(root, opts...)
	if err != nil {
		panic(err)
	}

	return g
}

// Root returns the root token.
func (g *Grammar) Root() Token { return g.root }

// Tokenize splits text into words the way [Grammar.Parse] does.
func (g *Grammar) Tokenize(text string) []string {
	return g.tokenizer.Tokenize(text)
}

// Parse tokenizes text and matches the words against the grammar.
//
// Parse never fails: a token that does not match is simply absent from the
// Result. If the first word is rejected by the root token, the Result is
// empty.
func (g *Grammar) Parse(text string) Result {
	return g.ParseWords(g.Tokenize(text))
}

// ParseWords matches already tokenized words against the grammar.
// The words slice is not modified.
func (g *Grammar) ParseWords(words []string) Result {
	m := matcher{words: words}
	result := Result{}

	m.match(g.root, result)

	g.logger.TraceContext(context.Background(), "parse complete",
		slog.String("root", g.root.name),
		slog.Int("words", len(words)),
		slog.Int("consumed", m.pos),
		slog.Bool("matched", result.Has(g.root.name)),
	)

	return result
}

// validate walks the token tree and collects configuration errors.
func validate(root Token) error {
	var errs []error

	var walk func(t Token, path []string)

	walk = func(t Token, path []string) {
		path = append(path, t.name)
		at := slog.String("token", strings.Join(path, "/"))

		fail := func(e *Error, attrs ...slog.Attr) {
			errs = append(errs, ErrConfig.Wrap(e.With(append(attrs, at)...)))
		}

		if t.name == "" {
			fail(ErrEmptyName)
		}

		if t.recognizer == nil {
			fail(ErrNilRecognizer)
		}

		if t.chain < ChainBranch || t.chain > ChainSingle {
			fail(ErrInvalidChain, slog.Int("chain", int(t.chain)))
		}

		if t.store < StoreSubtree || t.store > StoreVarArg {
			fail(ErrInvalidStore, slog.Int("store", int(t.store)))
		}

		if t.chain == ChainSingle && len(t.children) != 1 {
			fail(ErrSingleArity, slog.Int("children", len(t.children)))
		}

		seen := make(map[string]struct{}, len(t.children))

		for _, child := range t.children {
			if _, dup := seen[child.name]; dup && child.name != "" {
				fail(ErrDuplicateName, slog.String("name", child.name))
			}

			seen[child.name] = struct{}{}
		}

		for _, child := range t.children {
			walk(child, path)
		}
	}

	walk(root, make([]string, 0, 8))

	return errors.Join(errs...)
}
