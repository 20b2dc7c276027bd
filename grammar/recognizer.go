package grammar

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Recognizer decides whether a single word can be consumed by a [Token].
//
// Recognizers must be safe for concurrent use; a compiled [Grammar] calls
// them from every goroutine that parses with it.
type Recognizer interface {
	Recognize(word string) bool
}

// RecognizerFunc adapts an ordinary function to [Recognizer].
type RecognizerFunc func(word string) bool

// Recognize calls f(word).
func (f RecognizerFunc) Recognize(word string) bool { return f(word) }

func (RecognizerFunc) String() string { return "func" }

// Exact matches a word equal to s.
func Exact(s string) Recognizer { return exact(s) }

// Fold matches a word equal to s under Unicode case-folding.
func Fold(s string) Recognizer { return fold(s) }

// Regexp compiles expr and returns a recognizer matching any word that
// contains a match. Anchor the expression with ^ and $ to match whole words.
func Regexp(expr string) (Recognizer, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, ErrPattern.Wrap(err).With(slog.String("pattern", expr))
	}

	return pattern{re}, nil
}

// MustRegexp is like [Regexp] but panics if expr cannot be compiled.
func MustRegexp(expr string) Recognizer {
	r, err := Regexp(expr)
	if err != nil {
		panic(err)
	}

	return r
}

// IntegerWord matches an optionally negative run of decimal digits.
var IntegerWord Recognizer = integer{}

// AnyWord matches every word.
var AnyWord Recognizer = anyWord{}

// All matches a word accepted by every recognizer in rs.
func All(rs ...Recognizer) Recognizer { return all(rs) }

// OneOf matches a word accepted by at least one recognizer in rs.
func OneOf(rs ...Recognizer) Recognizer { return oneOf(rs) }

type exact string

func (e exact) Recognize(word string) bool { return word == string(e) }
func (e exact) String() string             { return strconv.Quote(string(e)) }

type fold string

func (f fold) Recognize(word string) bool { return strings.EqualFold(word, string(f)) }
func (f fold) String() string             { return "~" + strconv.Quote(string(f)) }

type pattern struct{ re *regexp.Regexp }

func (p pattern) Recognize(word string) bool { return p.re.MatchString(word) }
func (p pattern) String() string             { return "/" + p.re.String() + "/" }

var integerPattern = regexp.MustCompile(`^-?\d+$`)

type integer struct{}

func (integer) Recognize(word string) bool { return integerPattern.MatchString(word) }
func (integer) String() string             { return "<integer>" }

type anyWord struct{}

func (anyWord) Recognize(word string) bool { return word != "" }
func (anyWord) String() string             { return "<any>" }

type all []Recognizer

func (a all) Recognize(word string) bool {
	for _, r := range a {
		if !r.Recognize(word) {
			return false
		}
	}

	return true
}

func (a all) String() string { return joinRecognizers("all", a) }

type oneOf []Recognizer

func (o oneOf) Recognize(word string) bool {
	for _, r := range o {
		if r.Recognize(word) {
			return true
		}
	}

	return false
}

func (o oneOf) String() string { return joinRecognizers("oneof", o) }

func joinRecognizers(op string, rs []Recognizer) string {
	part := make([]string, len(rs))
	for i, r := range rs {
		part[i] = describe(r)
	}

	return op + "(" + strings.Join(part, ", ") + ")"
}

// describe renders r for grammar listings.
func describe(r Recognizer) string {
	if s, ok := r.(interface{ String() string }); ok {
		return s.String()
	}

	return "func"
}

// literalOf returns the word r accepts when r is a literal recognizer.
func literalOf(r Recognizer) (string, bool) {
	switch v := r.(type) {
	case exact:
		return string(v), true
	case fold:
		return string(v), true
	default:
		return "", false
	}
}
