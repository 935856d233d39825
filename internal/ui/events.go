package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
)

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	pastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	futureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// dayEvent is one entry on the chronological timeline.
type dayEvent struct {
	at    time.Time
	label string
}

// EventsModel renders the day's horizon crossings in time order.
type EventsModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewEventsModel creates the events timeline model.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a new snapshot.
func (m EventsModel) UpdateData(snap state.Snapshot) EventsModel {
	m.snapshot = snap
	return m
}

// Update implements the sub-model update contract.
func (m EventsModel) Update(tea.Msg) (EventsModel, tea.Cmd) {
	return m, nil
}

// View renders the timeline.
func (m EventsModel) View() string {
	events := collectDayEvents(m.snapshot)
	if len(events) == 0 {
		return pastStyle.Render("  no events today")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  Events on %s (UT)",
		m.snapshot.Time.Format("2006-01-02"))))
	b.WriteString("\n\n")

	now := m.snapshot.Time
	for _, e := range events {
		style := futureStyle
		if e.at.Before(now) {
			style = pastStyle
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			timeStyle.Render(e.at.Format("15:04")),
			style.Render(e.label)))
	}
	return b.String()
}

func collectDayEvents(snap state.Snapshot) []dayEvent {
	var events []dayEvent
	add := func(e state.Event, label string) {
		if e.OK {
			events = append(events, dayEvent{at: e.At, label: label})
		}
	}

	for _, row := range snap.Rows {
		add(row.Rise, row.Name+" rises")
		add(row.Transit, row.Name+" transits")
		add(row.Set, row.Name+" sets")
	}

	t := snap.Twilight
	add(t.AstronomicalDawn, "astronomical dawn")
	add(t.NauticalDawn, "nautical dawn")
	add(t.CivilDawn, "civil dawn")
	add(t.CivilDusk, "civil dusk")
	add(t.NauticalDusk, "nautical dusk")
	add(t.AstronomicalDusk, "astronomical dusk")

	sort.Slice(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})
	return events
}
