// Package tui provides the Bubble Tea status view shown while text is typed.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/autotype/internal/stats"
	"github.com/verte-zerg/autotype/internal/typist"
)

// PollInterval is how often the view samples the controller.
const PollInterval = 100 * time.Millisecond

// Controller is the part of the typing controller the view observes.
type Controller interface {
	Snapshot() typist.Snapshot
	Post(ev typist.Event) bool
}

type tickMsg time.Time

// Model implements the Bubble Tea status view.
type Model struct {
	ctrl   Controller
	text   []rune
	hotkey string
	now    func() time.Time

	width  int
	height int

	snap        typist.Snapshot
	bar         progress.Model
	interrupted bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
)

// NewModel constructs the status view for text driven by ctrl.
func NewModel(ctrl Controller, text string, hotkey string) *Model {
	return &Model{
		ctrl:   ctrl,
		text:   []rune(text),
		hotkey: hotkey,
		now:    time.Now,
		snap:   ctrl.Snapshot(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
	}
}

// Interrupted reports whether the view was closed with Ctrl+C.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Run shows the view on the alternate screen until typing ends or the user
// interrupts it.
func Run(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run status view: %w", err)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.snap = m.ctrl.Snapshot()
		if m.snap.State == typist.StateDone {
			return m, tea.Quit
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.interrupted = true
			m.ctrl.Post(typist.EventStop)
			return m, tea.Quit
		case tea.KeyEsc:
			m.ctrl.Post(typist.EventStop)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	cursorIndex := m.snap.Cursor
	if m.snap.State == typist.StateIdle || cursorIndex >= len(m.text) {
		cursorIndex = -1
	}
	styledRunes := buildStyledRunes(m.text, m.snap.Cursor, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes) + "\n" + m.renderFooter()
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	share := stats.Progress(m.snap.Cursor, len(m.text))
	segments := []string{
		m.renderState(),
		m.bar.ViewAs(share),
		fmt.Sprintf("Progress %d%%", int(share*100)),
	}
	if !m.snap.StartedAt.IsZero() {
		wpm, _ := stats.Throughput(m.snap.Cursor, m.now().Sub(m.snap.StartedAt))
		segments = append(segments, fmt.Sprintf("%.1f WPM", wpm))
	}
	segments = append(segments, fmt.Sprintf("Mistakes %d", m.snap.Mistakes))
	if m.hotkey != "" {
		segments = append(segments, fmt.Sprintf("%s start/stop", m.hotkey))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderState() string {
	switch m.snap.State {
	case typist.StateActive:
		return activeStyle.Render("TYPING")
	case typist.StateStopRequested:
		return incorrectStyle.Render("STOPPING")
	case typist.StateDone:
		return correctStyle.Render("DONE")
	default:
		return currentWordStyle.Render("WAITING")
	}
}
