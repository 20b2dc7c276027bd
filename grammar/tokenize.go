package grammar

import "strings"

// DefaultEscape is the escape character used by [Tokenize].
const DefaultEscape = '\\'

// Tokenizer splits chat input into words.
//
// The character following Escape is appended to the current word verbatim,
// so it never acts as a separator or as a second escape. A zero Escape
// disables escaping.
type Tokenizer struct {
	Escape rune
}

// Tokenize splits input into words using [DefaultEscape].
func Tokenize(input string) []string {
	return Tokenizer{Escape: DefaultEscape}.Tokenize(input)
}

// Tokenize splits input into words.
//
// Runs of whitespace are collapsed into a single space and the result is
// trimmed before any escape is interpreted, so an escaped tab or newline
// yields a literal space. An escape at the very end of input has nothing
// to make literal and is dropped. Empty words are never returned, and input
// containing only whitespace yields nil.
func (t Tokenizer) Tokenize(input string) []string {
	normal := strings.Join(strings.Fields(input), " ")
	if normal == "" {
		return nil
	}

	var (
		words   []string
		word    strings.Builder
		escaped bool
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, r := range normal {
		switch {
		case escaped:
			word.WriteRune(r)

			escaped = false

		case t.Escape != 0 && r == t.Escape:
			escaped = true

		case r == ' ':
			flush()

		default:
			word.WriteRune(r)
		}
	}

	flush()

	return words
}
