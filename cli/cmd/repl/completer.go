package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/chatgram/grammar"
)

// ctrlPrefix introduces a control command such as ":help".
const ctrlPrefix = ":"

// ctrlCommands are the available control commands.
var ctrlCommands = []string{
	ctrlPrefix + "help",
	ctrlPrefix + "grammar",
	ctrlPrefix + "format",
	ctrlPrefix + "clear",
	ctrlPrefix + "quit",
}

// isWordBoundary reports whether the rune ending input[:i] separates words.
// Whitespace separates words unless it is escaped.
func isWordBoundary(input string, i int) bool {
	r, size := utf8.DecodeLastRuneInString(input[:i])
	if !unicode.IsSpace(r) {
		return false
	}

	esc, _ := utf8.DecodeLastRuneInString(input[:i-size])

	return esc != grammar.DefaultEscape
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor follows
// whitespace or sits at the start of the line.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 && !isWordBoundary(input, start) {
		_, size := utf8.DecodeLastRuneInString(input[:start])
		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		_, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(input, end+size) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// byteOffset converts the rune position pos within s to a byte offset.
func byteOffset(s string, pos int) int {
	for i := range s {
		if pos <= 0 {
			return i
		}

		pos--
	}

	return len(s)
}

// candidates returns the words that may appear at wordStart in input.
func candidates(g *grammar.Grammar, input string, wordStart int) []string {
	if strings.HasPrefix(input, ctrlPrefix) {
		if wordStart > 0 {
			return nil
		}

		return ctrlCommands
	}

	return g.Complete(input[:wordStart])
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word after other input lists every candidate in grammar
// order; an empty line lists nothing so the hint stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, byteOffset(input, m.input.Position()))

	names := candidates(m.grammar, input, wordStart)
	if len(names) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		if strings.TrimSpace(input) == "" {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(names))
		for i, name := range names {
			matches[i] = fuzzy.Match{Str: name, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, names), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, markStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, markStyle = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(markStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
