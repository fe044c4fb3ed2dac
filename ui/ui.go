// Package ui provides the single-line prompt surface for sayline.
package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/sayline/sayline/tts"
)

const (
	placeholder = "What do you want to say?"

	// framePeriod is how often a snapshot of the input surface is handed
	// to the lifecycle controller.
	framePeriod = 50 * time.Millisecond

	minWidth = 20
	maxWidth = 120
)

var (
	promptStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "234", Dark: "252"})

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// frameMsg drives one controller observation.
type frameMsg time.Time

// NewProgram returns a Tea program running the prompt, wired to the
// lifecycle controller.
func NewProgram(cfg tts.Config, ctrl *tts.Controller) *tea.Program {
	m := newModel(cfg, ctrl)
	return tea.NewProgram(m)
}

type model struct {
	ctrl  *tts.Controller
	input textinput.Model
	width int

	// enterEdge is set on the frame where Enter transitioned to pressed
	// and cleared once that frame has been observed.
	enterEdge bool
	quitting  bool
}

func newModel(cfg tts.Config, ctrl *tts.Controller) model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "› "
	input.TextStyle = promptStyle
	input.Cursor.Style = cursorStyle
	input.Width = widthCells(cfg)
	input.Focus()

	return model{
		ctrl:  ctrl,
		input: input,
		width: input.Width,
	}
}

// widthCells approximates the configured pixel geometry in terminal
// cells, never narrower than the placeholder.
func widthCells(cfg tts.Config) int {
	cells := minWidth
	if cfg.FontSize > 0 {
		cells = int(cfg.Width / (cfg.FontSize / 2))
	}
	if min := runewidth.StringWidth(placeholder) + 2; cells < min {
		cells = min
	}
	if cells > maxWidth {
		cells = maxWidth
	}
	return cells
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, frameTick())
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.input.Width > msg.Width-4 && msg.Width > 4 {
			m.input.Width = msg.Width - 4
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			// Blur so the controller sees an unfocused frame with the
			// enter edge set; the decision happens there, not here.
			m.input.Blur()
			m.enterEdge = true
			return m, nil
		case "esc", "ctrl+c":
			m.input.Blur()
			return m, nil
		case "ctrl+v":
			if paste, err := clipboard.ReadAll(); err == nil {
				m.input.SetValue(m.input.Value() + paste)
				m.input.CursorEnd()
			} else {
				log.Debug("clipboard read failed", "err", err)
			}
			return m, nil
		}

	case frameMsg:
		directive := m.ctrl.Observe(tts.Frame{
			Text:         m.input.Value(),
			Focused:      m.input.Focused(),
			EnterPressed: m.enterEdge,
		})
		m.enterEdge = false

		if directive.CloseWindow {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		if directive.RefocusInput && !m.input.Focused() {
			cmd = m.input.Focus()
		}
		return m, tea.Batch(cmd, frameTick())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return promptStyle.Render(m.input.View()) + "\n"
}
