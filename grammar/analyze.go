package grammar

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Analysis describes how far a parse got and what could have come next.
type Analysis struct {
	// Result is the same Result [Grammar.Parse] returns.
	Result Result

	// Words is the tokenized input.
	Words []string

	// Consumed is the number of leading words that were matched.
	Consumed int

	// Expected lists, in grammar order and without duplicates, the tokens
	// that were tried at Words[Consumed] and rejected it (or found no word
	// there). Literal tokens are listed by their literal word, all others as
	// "<name>".
	Expected []string

	literals []string
}

// Analyze parses text like [Grammar.Parse] and also records where matching
// stopped.
func (g *Grammar) Analyze(text string) Analysis {
	return g.analyzeWords(g.Tokenize(text))
}

func (g *Grammar) analyzeWords(words []string) Analysis {
	m := matcher{words: words, trace: &trace{}}
	result := Result{}

	m.match(g.root, result)

	a := Analysis{
		Result:   result,
		Words:    words,
		Consumed: m.pos,
	}

	if m.trace.pos != m.pos {
		return a
	}

	for _, t := range m.trace.failed {
		shown := t.display()
		if slices.Contains(a.Expected, shown) {
			continue
		}

		a.Expected = append(a.Expected, shown)

		if lit, ok := literalOf(t.recognizer); ok {
			a.literals = append(a.literals, lit)
		}
	}

	return a
}

// Complete reports whether every word was consumed.
func (a Analysis) Complete() bool {
	return a.Consumed == len(a.Words)
}

// Remaining returns the words that were not consumed.
func (a Analysis) Remaining() []string {
	return slices.Clone(a.Words[a.Consumed:])
}

// Suggest ranks the literal words in Expected by how closely they match
// the first word that was not consumed. It returns nil if every word was
// consumed.
func (a Analysis) Suggest() []string {
	if a.Complete() {
		return nil
	}

	return rank(a.Words[a.Consumed], a.literals)
}

// Complete returns candidates for the word being typed at the end of
// prefix. If prefix ends with whitespace, or is empty, every literal word
// that may follow is returned in grammar order; otherwise the candidates
// are fuzzy-ranked against the partial last word.
//
// Nothing is returned when an earlier word in prefix is not accepted by
// the grammar.
func (g *Grammar) Complete(prefix string) []string {
	words := g.Tokenize(prefix)

	partial := ""
	if len(words) > 0 && !endsWithSpace(prefix) {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	a := g.analyzeWords(words)
	if !a.Complete() {
		return nil
	}

	if partial == "" {
		return slices.Clone(a.literals)
	}

	return rank(partial, a.literals)
}

func rank(pattern string, candidates []string) []string {
	matches := fuzzy.Find(pattern, candidates)
	if len(matches) == 0 {
		return nil
	}

	ranked := make([]string, len(matches))
	for i, match := range matches {
		ranked[i] = match.Str
	}

	return ranked
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}
