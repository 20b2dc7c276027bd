package repl

import (
	"context"
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/ardnew/chatgram/commands"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"second_word", "!f tal", 6, "tal", 3, 6},
		{"mid_word", "!f talk", 4, "talk", 3, 7},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"after_space", "!f ", 3, "", 3, 3},
		{"escaped_space", `a\ b`, 4, `a\ b`, 0, 4},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"empty", "", 0, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCursorWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int // rune position
		wantStart int
		wantEnd   int
	}{
		{"ascii", "ab cd", 4, 3, 5},
		{"after_multibyte", "ñ ñ", 2, 3, 5},
		{"inside_multibyte_word", "héllo wörld", 8, 7, 13},
		{"end", "añb", 3, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newModel(context.Background(), commands.Grammar(), NewHistory(""), Config{})
			m.input.SetValue(tt.input)
			m.input.SetCursor(tt.cursor)

			_, start, end := m.computeMatches()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("computeMatches(%q) bounds = (%d, %d), want (%d, %d)",
					tt.input, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"!f ", []string{"talk", "poll", "help"}},
		{"!f t", []string{"talk"}},
		{"!f talk voice se", []string{"set"}},
		{"!f talk voice set ", nil},
		{"hello ", nil},
		{":he", []string{":help"}},
		{":format ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			m := newModel(context.Background(), commands.Grammar(), NewHistory(""), Config{})
			m.input.SetValue(tt.input)
			m.input.SetCursor(utf8.RuneCountInString(tt.input))

			matches, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("computeMatches(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	t.Parallel()

	m := newModel(context.Background(), commands.Grammar(), NewHistory(""), Config{})
	m.setLine("!f ")

	if bar := renderCandidateBar(m.matches, -1, false, 0); bar != "" {
		t.Errorf("zero width bar = %q, want empty", bar)
	}

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("bar without matches = %q, want empty", bar)
	}

	if bar := renderCandidateBar(m.matches, -1, false, 80); bar == "" {
		t.Error("bar with matches is empty")
	}
}
