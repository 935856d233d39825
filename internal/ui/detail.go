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
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// DetailModel renders everything known about one body.
type DetailModel struct {
	width    int
	height   int
	kind     ephem.Kind
	snapshot state.Snapshot
}

// NewDetailModel creates a detail model focused on the Sun.
func NewDetailModel() DetailModel {
	return DetailModel{kind: ephem.KindSun}
}

// SetSize updates the viewport size.
func (m DetailModel) SetSize(width, height int) DetailModel {
	m.width = width
	m.height = height
	return m
}

// SetKind focuses the view on a body.
func (m DetailModel) SetKind(k ephem.Kind) DetailModel {
	m.kind = k
	return m
}

// UpdateData installs a new snapshot.
func (m DetailModel) UpdateData(snap state.Snapshot) DetailModel {
	m.snapshot = snap
	return m
}

// Update implements the sub-model update contract.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		n := ephem.Kind(len(ephem.Kinds))
		switch key.String() {
		case "right", "l":
			m.kind = (m.kind + 1) % n
		case "left":
			m.kind = (m.kind + n - 1) % n
		}
	}
	return m, nil
}

// View renders the body card.
func (m DetailModel) View() string {
	row, ok := findRow(m.snapshot, m.kind)
	if !ok {
		return labelStyle.Render("  computing...")
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(strings.ToUpper(row.Name)) + "\n\n")

	if row.Err != "" {
		b.WriteString("  " + errStyle.Render(row.Err) + "\n")
		return b.String()
	}

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-22s", label)),
			valueStyle.Render(value)))
	}

	field("right ascension", state.FormatRA(row.RAHours))
	field("declination", fmt.Sprintf("%+.4f°", row.DecDeg))
	field("azimuth", fmt.Sprintf("%.2f°", row.AzDeg))
	field("altitude (true)", fmt.Sprintf("%+.2f°", row.AltDeg))
	field("altitude (refracted)", fmt.Sprintf("%+.2f°", row.AppAltDeg))
	field("distance", state.FormatDistance(row))
	if row.Kind == ephem.KindMoon {
		field("distance", fmt.Sprintf("%.6f AU", row.DistanceAU))
	}
	field("magnitude", fmt.Sprintf("%.1f", row.Magnitude))

	if row.Kind != ephem.KindSun {
		field("elongation", fmt.Sprintf("%.1f°", row.ElongDeg))
		field("illuminated", state.FormatPhase(row))
	}

	b.WriteString("\n")
	field("sub-point", fmt.Sprintf("%+.2f°, %+.2f°", row.SubLatDeg, row.SubLonDeg))
	field("ground range", row.GroundRange.String())

	b.WriteString("\n")
	field("rise", state.FormatEvent(row.Rise))
	field("transit", state.FormatEvent(row.Transit))
	field("set", state.FormatEvent(row.Set))

	if row.Kind == ephem.KindSun {
		t := m.snapshot.Twilight
		b.WriteString("\n")
		field("civil twilight", state.FormatEvent(t.CivilDawn)+" - "+state.FormatEvent(t.CivilDusk))
		field("nautical twilight", state.FormatEvent(t.NauticalDawn)+" - "+state.FormatEvent(t.NauticalDusk))
		field("astronomical twilight", state.FormatEvent(t.AstronomicalDawn)+" - "+state.FormatEvent(t.AstronomicalDusk))
	}

	return b.String()
}

func findRow(snap state.Snapshot, kind ephem.Kind) (state.BodyRow, bool) {
	for _, row := range snap.Rows {
		if row.Kind == kind {
			return row, true
		}
	}
	return state.BodyRow{}, false
}
