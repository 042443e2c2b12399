package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keyrd/internal/control"
)

// StatusFetcher returns the daemon's current status, or an error if it is
// unreachable.
type StatusFetcher func() (control.StatusPayload, error)

type tickMsg time.Time

type statusMsg struct {
	status control.StatusPayload
	err    error
}

// WatchModel polls a running daemon's control socket and renders its
// per-device status, refreshing on an interval until the user quits.
type WatchModel struct {
	fetch    StatusFetcher
	interval time.Duration
	spinner  spinner.Model
	status   control.StatusPayload
	err      error
}

// NewWatchModel builds a WatchModel polling fetch every interval.
func NewWatchModel(fetch StatusFetcher, interval time.Duration) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return WatchModel{fetch: fetch, interval: interval, spinner: s}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll())
}

func (m WatchModel) poll() tea.Cmd {
	return func() tea.Msg {
		status, err := m.fetch()
		return statusMsg{status: status, err: err}
	}
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, m.poll()

	case statusMsg:
		m.status = msg.status
		m.err = msg.err
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m WatchModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("KEYRD WATCH"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("daemon unreachable: %v", m.err)))
		b.WriteString("\n")
	} else if len(m.status.Devices) == 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(SubtleStyle.Render("no devices captured"))
		b.WriteString("\n")
	} else {
		for _, d := range m.status.Devices {
			b.WriteString(fmt.Sprintf("  %s  profile=%s  pending_tap_hold=%d\n",
				SuccessStyle.Render("●"), d.Profile, d.PendingTapHold))
		}
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("press q to quit"))
	return b.String()
}
