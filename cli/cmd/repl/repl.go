package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/chatgram/grammar"
	"github.com/ardnew/chatgram/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help            Print this cruft
  :grammar         Print the grammar
  :format FORMAT   Set the result format (` + strings.Join(grammar.Formats, ", ") + `)
  :clear           Clear screen
  :quit            Exit REPL

Usage:
  Type a line to parse it against the grammar
  Completions for the next word appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to cancel cycling, or to clear the line
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// Config configures a REPL session.
type Config struct {
	// CacheDir holds the history file. Empty keeps history in memory.
	CacheDir string

	// Format is the result format; empty selects tree.
	Format string

	// MaxInput limits the length of a line in bytes. Zero uses the
	// textinput default.
	MaxInput int

	Logger log.Logger
}

// Run starts an interactive session parsing lines with g. It returns when
// the user quits or ctx is done.
func Run(ctx context.Context, g *grammar.Grammar, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.String("root", g.Root().Name()),
	)

	var historyPath string
	if cfg.CacheDir != "" {
		historyPath = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, g, history, cfg), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	grammar      *grammar.Grammar
	cache        *grammar.Cache
	format       string
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int
	quitting     bool
}

func newModel(
	ctx context.Context,
	g *grammar.Grammar,
	history *History,
	cfg Config,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = strings.Join(g.Complete(""), " ")
	ti.Focus()
	ti.Width = defaultWidth

	if cfg.MaxInput > 0 {
		ti.CharLimit = cfg.MaxInput
	}

	format := cfg.Format
	if format == "" {
		format = grammar.FormatTree
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		grammar:    g,
		cache:      grammar.NewCache(g, 0),
		format:     format,
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-1, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if bar := renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width); bar != "" {
		b.WriteString(bar)
	} else {
		b.WriteString(hintStyle.Render(":help for commands, Ctrl+D to exit"))
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyEnter:
		m.tabActive = false

		return m.executeInput()

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		} else {
			m.input.SetValue("")
		}

		refreshMatches(&m, false)

		return m, nil

	}

	// Any other key accepts the selected candidate.
	m.tabActive = false

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	refreshMatches(&m, msg.Type == tea.KeyRunes)

	return m, cmd
}

// handleTab selects the next (dir > 0) or previous candidate and writes it
// into the input in place of the current word.
func (m model) handleTab(dir int) (tea.Model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = -1

		if dir < 0 {
			m.suggIdx = 0
		}
	}

	n := len(m.matches)
	m.suggIdx = ((m.suggIdx+dir)%n + n) % n

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(utf8.RuneCountInString(newInput[:newCursor]))

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true and the typed word already equals the sole
// remaining candidate, the candidate bar is cleared.
func refreshMatches(m *model, autoConfirm bool) {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	_, _ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	if strings.HasPrefix(input, ctrlPrefix) {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl parse",
		slog.String("input", input),
	)

	return m, tea.Sequence(
		tea.Println(formatCommand(input)),
		tea.Println(m.evaluate(input)),
	)
}

// evaluate parses input and renders its result followed by any words the
// grammar did not consume.
func (m model) evaluate(input string) string {
	result := m.cache.Parse(input)
	if len(result) == 0 {
		a := m.grammar.Analyze(input)

		return errorStyle.Render("no match") + m.diagnose(a)
	}

	var b strings.Builder

	if err := grammar.FormatResult(&b, result, m.format, 0); err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	out := resultStyle.Render(strings.TrimRight(b.String(), "\n"))

	if a := m.grammar.Analyze(input); !a.Complete() {
		out += m.diagnose(a)
	}

	return out
}

// diagnose explains where matching stopped.
func (m model) diagnose(a grammar.Analysis) string {
	var b strings.Builder

	if rest := a.Remaining(); len(rest) > 0 {
		b.WriteString("\n" + hintStyle.Render("ignored: "+strings.Join(rest, " ")))
	}

	if len(a.Expected) > 0 {
		b.WriteString("\n" + hintStyle.Render("expected: "+strings.Join(a.Expected, ", ")))
	}

	if s := a.Suggest(); len(s) > 0 {
		b.WriteString("\n" + suggestionStyle.Render("did you mean: "+strings.Join(s, ", ")))
	}

	return b.String()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(strings.TrimPrefix(input, ctrlPrefix))
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCommand(input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "g", "grammar":
		var b strings.Builder

		if err := m.grammar.Format(&b); err != nil {
			return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd, tea.Println(strings.TrimRight(b.String(), "\n")))

	case "f", "format":
		if len(args) != 1 || !slices.Contains(grammar.Formats, args[0]) {
			return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(
				fmt.Sprintf("usage: :format {%s} (current: %s)",
					strings.Join(grammar.Formats, "|"), m.format),
			)))
		}

		m.format = args[0]

		return m, echoCmd

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try :help)"),
		)
	}
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if line, err := m.history.Line(m.historyIdx); err == nil {
			m.setLine(line)
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if line, err := m.history.Line(m.historyIdx); err == nil {
			m.setLine(line)
		}
	} else {
		m.historyIdx = m.history.Len()
		m.setLine("")
	}

	return m, nil
}

func (m *model) setLine(line string) {
	m.tabActive = false
	m.input.SetValue(line)
	m.input.SetCursor(utf8.RuneCountInString(line))
	refreshMatches(m, false)
}
