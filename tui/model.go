package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/njyeung/termvid/player"
)

// PreRoll is how long the intro stays on screen before playback
const PreRoll = 2 * time.Second

// Intro describes the file about to play
type Intro struct {
	Name     string
	Info     player.SourceInfo
	Quality  player.Quality
	Audio    string // "" when audio is off
	Subtitle string // sidecar path, "" when none
	Warning  string
}

type countdownMsg struct{}

// Model is the Bubble Tea model of the pre-roll screen
type Model struct {
	intro   Intro
	spinner spinner.Model

	width  int
	height int

	remaining time.Duration
	aborted   bool
}

// NewModel creates the intro model
func NewModel(intro Intro) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		intro:     intro,
		spinner:   s,
		remaining: PreRoll,
	}
}

// Aborted reports whether the user quit during the intro
func (m Model) Aborted() bool {
	return m.aborted
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, countdown())
}

func countdown() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter", " ":
			m.remaining = 0
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countdownMsg:
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			return m, tea.Quit
		}
		return m, countdown()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	return m.viewIntro()
}

// Run shows the intro on the terminal until the pre-roll elapses.
// It returns true when the user asked to quit instead of playing or ctx
// was cancelled.
func Run(ctx context.Context, intro Intro) (bool, error) {
	final, err := tea.NewProgram(NewModel(intro), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return final.(Model).Aborted(), nil
}
