package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/chatgram/commands"
	"github.com/ardnew/chatgram/grammar"
)

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(context.Background(), commands.Grammar(), NewHistory(""), Config{
		Format: grammar.FormatJSON,
	})
}

func TestTabCycling(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.setLine("!f ")

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyTab, "!f talk"},
		{tea.KeyTab, "!f poll"},
		{tea.KeyTab, "!f help"},
		{tea.KeyTab, "!f talk"},
		{tea.KeyShiftTab, "!f help"},
		{tea.KeyEsc, "!f "},
	}

	for i, step := range steps {
		next, _ := m.Update(tea.KeyMsg{Type: step.key})
		m = next.(model)

		if got := m.input.Value(); got != step.want {
			t.Fatalf("step %d (%v): input = %q, want %q", i, step.key, got, step.want)
		}
	}
}

func TestExecuteInput(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.setLine("!f talk join")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	if got := m.input.Value(); got != "" {
		t.Errorf("input after Enter = %q, want empty", got)
	}

	if got := m.history.Entries(); len(got) != 1 || got[0] != "!f talk join" {
		t.Errorf("history = %q", got)
	}

	if m.historyIdx != 1 {
		t.Errorf("historyIdx = %d, want 1", m.historyIdx)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(model)

	if got := m.input.Value(); got != "!f talk join" {
		t.Errorf("input after Up = %q", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)

	if got := m.input.Value(); got != "" {
		t.Errorf("input after Down = %q, want empty", got)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"!f talk join", []string{`{"root":{"talk":{"join":{}}}}`}},
		{"!f talk dance", []string{`{"root":{"talk":{}}}`, "ignored: dance", "expected: join, leave"}},
		{"!f tak", []string{`{"root":{}}`, "did you mean: talk"}},
		{"hello", []string{"no match", "expected: !f"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := testModel(t).evaluate(tt.input)

			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("evaluate(%q) = %q, missing %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestExecuteCommand(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	m, _ = m.executeCommand(":format yaml")
	if m.format != grammar.FormatYAML {
		t.Errorf("format = %q, want yaml", m.format)
	}

	m, _ = m.executeCommand(":format bogus")
	if m.format != grammar.FormatYAML {
		t.Errorf("format after bad :format = %q, want yaml", m.format)
	}

	m, cmd := m.executeCommand(":quit")
	if !m.quitting || cmd == nil {
		t.Errorf(":quit: quitting = %v, cmd = %v", m.quitting, cmd)
	}

	if v := m.View(); v != "" {
		t.Errorf("View() after quit = %q, want empty", v)
	}
}

func TestCtrlC(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.setLine("!f poll")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(model)

	if m.quitting || m.input.Value() != "" {
		t.Fatalf("first Ctrl+C: quitting = %v, input = %q", m.quitting, m.input.Value())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(model).quitting {
		t.Error("second Ctrl+C did not quit")
	}
}
