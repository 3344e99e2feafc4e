package repl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/polir/lang"
	"github.com/ardnew/polir/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help      Print this cruft
  :blocks    List block names and successors
  :regions   List universal regions
  :program   Print the program in canonical syntax
  :clear     Clear screen
  :quit      Exit REPL

Usage:
  Type an expression to evaluate it against the program, e.g.
    len(blocks)
    filter(blocks, len(.goto) == 0)
    blocks[0].statements[0].effects
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on an empty line or Ctrl+D to exit
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
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatEcho formats the echo line for an executed input.
func formatEcho(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	program      *lang.Input
	logger       log.Logger
	history      *History
	historyIdx   int
	candidates   []string // backing candidate list
	matchNames   []string // current fuzzy match results
	wordStart    int      // byte offset of current word start
	wordEnd      int      // byte offset of current word end
	suggIdx      int      // selected candidate index
	tabActive    bool     // whether user is tab-cycling
	preTabText   string   // input text before tab-cycling began
	preTabCursor int      // cursor position before tab-cycling began
	width        int      // terminal width
	quitting     bool
}

// Run starts the REPL over the given parsed program.
func Run(
	ctx context.Context,
	program *lang.Input,
	cacheDir string,
	logger log.Logger,
) error {
	if program == nil {
		return ErrNoProgram
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("block_count", len(program.Blocks)),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	m := newModel(ctx, program, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	program *lang.Input,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		program:    program,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		candidates: candidates(program),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

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

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matchNames) > 0:
		b.WriteString(m.renderSuggestions())

	default:
		b.WriteString(hintStyle.Render(":help for commands"))
	}

	b.WriteString("\n")

	return b.String()
}

// renderSuggestions renders the candidate row, highlighting the
// current selection, ellipsized to the terminal width.
func (m model) renderSuggestions() string {
	var b strings.Builder

	for i, name := range m.matchNames {
		if b.Len() > m.width {
			b.WriteString(hintStyle.Render("…"))

			break
		}

		if i > 0 {
			b.WriteString(" ")
		}

		if m.tabActive && i == m.suggIdx {
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString(suggestionStyle.Render(name))
		}
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m = m.resetCompletion()

		return m, nil

	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		return m.execute()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.navigateHistory(-1), nil

	case tea.KeyDown:
		return m.navigateHistory(1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.tabActive = false
	m = m.refreshCompletion()

	return m, cmd
}

// execute runs the current line as a command or query and echoes the
// result above the input.
func (m model) execute() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m = m.resetCompletion()

	if line == "" {
		return m, nil
	}

	if _, err := m.history.Write(line); err != nil {
		m.logger.TraceContext(m.ctxFunc(), "history write failed",
			slog.String("error", err.Error()),
		)
	}

	m.historyIdx = m.history.Len()

	if strings.HasPrefix(line, ":") {
		return m.runCommand(line)
	}

	echo := formatEcho(line)

	result, err := m.program.Query(m.ctxFunc(), line,
		lang.WithLogger(m.logger))
	if err != nil {
		return m, tea.Println(echo + "\n" +
			errorStyle.Render(err.Error()))
	}

	return m, tea.Println(echo + "\n" +
		resultStyle.Render(renderResult(result)))
}

func (m model) runCommand(line string) (tea.Model, tea.Cmd) {
	switch line {
	case ":help":
		return m, tea.Println(hintStyle.Render(helpMessage()))

	case ":blocks":
		var b strings.Builder

		for _, blk := range m.program.Blocks {
			fmt.Fprintf(&b, "%s", blk.Name)

			if len(blk.Goto) > 0 {
				names := make([]string, len(blk.Goto))
				for i, n := range blk.Goto {
					names[i] = string(n)
				}

				fmt.Fprintf(&b, " -> %s", strings.Join(names, ", "))
			}

			b.WriteString("\n")
		}

		return m, tea.Println(resultStyle.Render(strings.TrimRight(
			b.String(), "\n")))

	case ":regions":
		names := make([]string, len(m.program.UniversalRegions))
		for i, r := range m.program.UniversalRegions {
			names[i] = string(r)
		}

		return m, tea.Println(resultStyle.Render(strings.Join(names, ", ")))

	case ":program":
		var b strings.Builder
		if err := m.program.Format(m.ctxFunc(), &b, 4); err != nil {
			return m, tea.Println(errorStyle.Render(err.Error()))
		}

		return m, tea.Println(strings.TrimRight(b.String(), "\n"))

	case ":clear":
		return m, tea.ClearScreen

	case ":quit":
		m.quitting = true

		return m, tea.Quit
	}

	return m, tea.Println(errorStyle.Render(
		"unknown command " + line + " (:help for commands)"))
}

// cycle steps through completion candidates, replacing the current
// word with the selection.
func (m model) cycle(dir int) model {
	if !m.tabActive {
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m = m.refreshCompletion()

		if len(m.matchNames) == 0 {
			return m
		}

		m.tabActive = true
		m.suggIdx = 0
	} else {
		m.suggIdx += dir
		if m.suggIdx < 0 {
			m.suggIdx = len(m.matchNames) - 1
		} else if m.suggIdx >= len(m.matchNames) {
			m.suggIdx = 0
		}
	}

	selected := m.matchNames[m.suggIdx]
	text := m.preTabText

	replaced := text[:m.wordStart] + selected + text[m.wordEnd:]
	m.input.SetValue(replaced)
	m.input.SetCursor(m.wordStart + len(selected))

	return m
}

// refreshCompletion recomputes fuzzy matches for the word under the
// cursor.
func (m model) refreshCompletion() model {
	word, start, end := currentWord(m.input.Value(), m.input.Position())
	m.wordStart, m.wordEnd = start, end

	m.matchNames = m.matchNames[:0]
	for _, match := range match(word, m.candidates) {
		m.matchNames = append(m.matchNames, match.Str)
	}

	return m
}

func (m model) resetCompletion() model {
	m.matchNames = nil
	m.tabActive = false
	m.suggIdx = 0

	return m
}

// navigateHistory moves through saved queries, restoring the draft
// line when stepping past the newest entry.
func (m model) navigateHistory(dir int) model {
	next := m.historyIdx + dir
	if next < 0 || next > m.history.Len() {
		return m
	}

	m.historyIdx = next

	if next == m.history.Len() {
		m.input.SetValue("")
	} else if line, err := m.history.GetLine(next); err == nil {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	return m.resetCompletion()
}

// renderResult prints scalars bare and structured values as indented
// JSON, matching the query subcommand.
func renderResult(result any) string {
	switch v := result.(type) {
	case string:
		return v
	case bool, int, int64, uint64, float64, nil:
		return fmt.Sprint(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	}
}
