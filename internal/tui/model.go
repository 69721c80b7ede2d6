// Package tui implements the full-screen interactive mode: a single input
// line over a scrolling history of evaluations, built with bubbletea.
// Evaluation itself is synchronous (the calculator core is pure and
// near-instant), so the model has no background commands beyond the
// text input blink.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlavoie/calcli/internal/calc"
	apperrors "github.com/mlavoie/calcli/internal/errors"
	"github.com/mlavoie/calcli/internal/format"
	"github.com/mlavoie/calcli/internal/locale"
	"github.com/mlavoie/calcli/internal/logging"
	"github.com/mlavoie/calcli/internal/metrics"
)

// historyLimit bounds the kept history so a long session does not grow the
// model without end.
const historyLimit = 500

// entry is one evaluated line of the session history.
type entry struct {
	expression string
	rendered   string
	isError    bool
}

// Model is the root bubbletea model of the TUI mode.
type Model struct {
	input    textinput.Model
	history  []entry
	keymap   KeyMap
	help     help.Model
	recorder *metrics.Recorder
	logger   logging.Logger

	width  int
	height int
}

// NewModel creates the TUI model.
func NewModel(recorder *metrics.Recorder, logger logging.Logger) Model {
	msgs := locale.Current()

	input := textinput.New()
	input.Placeholder = msgs.HelpEval
	input.Prompt = msgs.Prompt
	input.Focus()

	return Model{
		input:    input,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		recorder: recorder,
		logger:   logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input line and appends the outcome to the
// history.
func (m *Model) submit() {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return
	}
	m.input.Reset()

	start := time.Now()
	result, calcErr := calc.ParseAndEvaluate(raw)
	duration := time.Since(start)

	var e entry
	if calcErr != nil {
		m.recorder.ObserveError(string(calcErr.Code), duration)
		m.logger.Debug("evaluation failed",
			logging.String("expression", calcErr.Expression),
			logging.String("code", string(calcErr.Code)))
		e = entry{
			expression: calcErr.Expression,
			rendered:   fmt.Sprintf("%s — %s", calcErr.Description, calcErr.Details),
			isError:    true,
		}
	} else {
		op, _ := calc.OperatorOf(raw)
		m.recorder.ObserveEvaluation(op, duration)
		m.logger.Debug("evaluation succeeded",
			logging.String("expression", raw),
			logging.Float64("seconds", duration.Seconds()))
		e = entry{
			expression: raw,
			rendered: fmt.Sprintf("%s  (%s)", result.String(),
				format.FormatExecutionDuration(duration)),
		}
	}

	m.history = append(m.history, e)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	msgs := locale.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("🧮 " + msgs.BannerTitle))
	b.WriteString("\n")

	// History panel fills the space between title, input and footer.
	visible := m.visibleHistory()
	var lines []string
	for _, e := range visible {
		style := resultStyle
		if e.isError {
			style = errorStyle
		}
		lines = append(lines,
			expressionStyle.Render(e.expression)+dimStyle.Render("  →  ")+style.Render(e.rendered))
	}
	if len(lines) == 0 {
		lines = append(lines, dimStyle.Render(msgs.HelpEval))
	}
	b.WriteString(panelStyle.Width(maxInt(m.width-2, 20)).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// visibleHistory trims the history to what fits the current height.
func (m Model) visibleHistory() []entry {
	capacity := m.height - 6
	if capacity < 1 {
		capacity = 1
	}
	if len(m.history) <= capacity {
		return m.history
	}
	return m.history[len(m.history)-capacity:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI program and blocks until it finishes.
//
// Returns:
//   - int: The process exit code (ExitErrorCanceled when the context was
//     canceled, ExitErrorGeneric on a terminal failure).
func Run(ctx context.Context, recorder *metrics.Recorder, logger logging.Logger) int {
	initStyles()

	program := tea.NewProgram(NewModel(recorder, logger),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		logger.Error("tui terminated", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
