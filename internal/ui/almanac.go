package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/state"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// AlmanacModel renders the per-body table.
type AlmanacModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewAlmanacModel creates the almanac table model.
func NewAlmanacModel() AlmanacModel {
	return AlmanacModel{}
}

// SetSize updates the viewport size.
func (m AlmanacModel) SetSize(width, height int) AlmanacModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a new snapshot.
func (m AlmanacModel) UpdateData(snap state.Snapshot) AlmanacModel {
	m.snapshot = snap
	if m.cursor >= len(snap.Rows) {
		m.cursor = 0
	}
	return m
}

// SelectedKind returns the body under the cursor.
func (m AlmanacModel) SelectedKind() ephem.Kind {
	if m.cursor < len(m.snapshot.Rows) {
		return m.snapshot.Rows[m.cursor].Kind
	}
	return ephem.KindSun
}

// Update implements the sub-model update contract.
func (m AlmanacModel) Update(msg tea.Msg) (AlmanacModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "down":
			if m.cursor < len(m.snapshot.Rows)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// View renders the table.
func (m AlmanacModel) View() string {
	if len(m.snapshot.Rows) == 0 {
		return dimRowStyle.Render("  computing almanac...")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-9s %9s %8s %7s %7s %12s %6s %6s %7s %7s %7s",
		"BODY", "RA", "DEC", "AZ", "ALT", "DIST", "MAG", "ILLUM", "RISE", "TRANSIT", "SET")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, row := range m.snapshot.Rows {
		marker := "  "
		style := rowStyle
		if i == m.cursor {
			marker = "▶ "
			style = selectedStyle
		} else if row.AltDeg < 0 {
			style = dimRowStyle
		}

		if row.Err != "" {
			b.WriteString(marker + errStyle.Render(fmt.Sprintf("%-9s %s", row.Name, row.Err)))
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%-9s %9s %8.3f %7.2f %7.2f %12s %6.1f %6s %7s %7s %7s",
			row.Name,
			state.FormatRA(row.RAHours),
			row.DecDeg,
			row.AzDeg,
			row.AltDeg,
			state.FormatDistance(row),
			row.Magnitude,
			illumCell(row),
			state.FormatEvent(row.Rise),
			state.FormatEvent(row.Transit),
			state.FormatEvent(row.Set))
		b.WriteString(marker + style.Render(line))
		b.WriteString("\n")
	}

	if moon, ok := moonRow(m.snapshot); ok && moon.PhaseName != "" {
		b.WriteString("\n")
		b.WriteString(dimRowStyle.Render("  Moon phase: " + state.FormatPhase(moon)))
		b.WriteString("\n")
	}

	return b.String()
}

func illumCell(row state.BodyRow) string {
	if row.Kind == ephem.KindSun {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", row.Illuminated*100)
}

func moonRow(snap state.Snapshot) (state.BodyRow, bool) {
	for _, row := range snap.Rows {
		if row.Kind == ephem.KindMoon {
			return row, true
		}
	}
	return state.BodyRow{}, false
}
