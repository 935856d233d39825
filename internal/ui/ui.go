// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewAlmanac ViewMode = iota
	ViewDetail
	ViewEvents

	numViews = int(ViewEvents) + 1
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic recomputation of the snapshot.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	session *state.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	almanac AlmanacModel
	detail  DetailModel
	events  EventsModel

	snapshot state.Snapshot
}

// New creates the root UI model.
func New(session *state.Manager) Model {
	return Model{
		session: session,
		almanac: NewAlmanacModel(),
		detail:  NewDetailModel(),
		events:  NewEventsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), animTickCmd(), recompute(m.session))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "a":
			m.viewMode = ViewAlmanac
		case "2", "b":
			// Entering the detail view follows the almanac selection.
			if m.viewMode != ViewDetail {
				m.detail = m.detail.SetKind(m.almanac.SelectedKind())
			}
			m.viewMode = ViewDetail
		case "3", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = ViewMode((int(m.viewMode) + 1) % numViews)

		case "h":
			m.session.Step(-time.Hour)
			cmds = append(cmds, recompute(m.session))
		case "H":
			m.session.Step(time.Hour)
			cmds = append(cmds, recompute(m.session))
		case "d":
			m.session.Step(-24 * time.Hour)
			cmds = append(cmds, recompute(m.session))
		case "D":
			m.session.Step(24 * time.Hour)
			cmds = append(cmds, recompute(m.session))
		case "n":
			m.session.Resume()
			cmds = append(cmds, recompute(m.session))
		case " ":
			if m.session.Live() {
				m.session.Freeze(m.session.Now())
			} else {
				m.session.Resume()
			}
			cmds = append(cmds, recompute(m.session))

		case "enter":
			if m.viewMode == ViewAlmanac {
				m.detail = m.detail.SetKind(m.almanac.SelectedKind())
				m.viewMode = ViewDetail
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 12
		m.almanac = m.almanac.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.session.Live() {
			cmds = append(cmds, recompute(m.session))
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case SnapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.almanac = m.almanac.UpdateData(m.snapshot)
		m.detail = m.detail.UpdateData(m.snapshot)
		m.events = m.events.UpdateData(m.snapshot)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewAlmanac:
		m.almanac, cmd = m.almanac.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewAlmanac:
		content = m.almanac.View()
	case ViewDetail:
		content = m.detail.View()
	case ViewEvents:
		content = m.events.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	logo := []string{
		`  ██╗     ███████╗       █████╗ ██╗     ███╗   ███╗ █████╗ ███╗   ██╗ █████╗  ██████╗`,
		`  ██║     ██╔════╝      ██╔══██╗██║     ████╗ ████║██╔══██╗████╗  ██║██╔══██╗██╔════╝`,
		`  ██║     ███████╗█████╗███████║██║     ██╔████╔██║███████║██╔██╗ ██║███████║██║     `,
		`  ██║     ╚════██║╚════╝██╔══██║██║     ██║╚██╔╝██║██╔══██║██║╚██╗██║██╔══██║██║     `,
		`  ███████╗███████║      ██║  ██║███████╗██║ ╚═╝ ██║██║  ██║██║ ╚████║██║  ██║╚██████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚═════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")
	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Sun, Moon & Planets · Positional Almanac"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the logo: a
// horizontal sweep from deep blue through teal to gold, dimming toward
// the bottom rows.
func gradientColor(col, row, width, height int) string {
	x := float64(col) / float64(width)
	y := float64(row) / float64(height)

	var r, g, b float64
	if x < 0.5 {
		// Blue (#2563EB) to teal (#14B8A6)
		t := x / 0.5
		r = 37 + t*(20-37)
		g = 99 + t*(184-99)
		b = 235 + t*(166-235)
	} else {
		// Teal to gold (#F59E0B)
		t := (x - 0.5) / 0.5
		r = 20 + t*(245-20)
		g = 184 + t*(158-184)
		b = 166 + t*(11-166)
	}

	dim := 1.0 - y*0.45
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r*dim), clamp8(g*dim), clamp8(b*dim))
}

func clamp8(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Almanac", "[2] Body", "[3] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))

	var clock string
	if m.snapshot.Time.IsZero() {
		clock = "computing..."
	} else {
		clock = m.snapshot.Time.Format("2006-01-02 15:04:05 UT")
	}
	if m.snapshot.Live {
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		clock = spinnerFrames[m.animTick%len(spinnerFrames)] + " " + clock
	} else {
		clock = "⏸ " + clock
	}

	var help string
	switch m.viewMode {
	case ViewDetail:
		help = "←/→: body | h/H d/D: step time | space: pause | n: now"
	case ViewEvents:
		help = "h/H d/D: step time | space: pause | n: now"
	default:
		help = "j/k: select | enter: detail | h/H d/D: step time | space: pause | n: now"
	}

	return "  " + accentStyle.Render(clock) + "  " + dimStyle.Render("|") + "  " +
		dimStyle.Render(help)
}

// SnapshotMsg carries a freshly computed almanac snapshot.
type SnapshotMsg state.Snapshot

func recompute(session *state.Manager) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg(session.Snapshot())
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
