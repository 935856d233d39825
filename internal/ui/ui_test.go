package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/state"
)

func testSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	m, err := state.NewManager(state.DefaultConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))
	return m.Snapshot()
}

func TestAlmanacViewRendersRows(t *testing.T) {
	m := NewAlmanacModel().SetSize(120, 30).UpdateData(testSnapshot(t))
	out := m.View()

	for _, want := range []string{"BODY", "Sun", "Moon", "Saturn", "Moon phase"} {
		if !strings.Contains(out, want) {
			t.Errorf("almanac view missing %q", want)
		}
	}
}

func TestAlmanacCursor(t *testing.T) {
	m := NewAlmanacModel().SetSize(120, 30).UpdateData(testSnapshot(t))

	if m.SelectedKind() != ephem.KindSun {
		t.Fatalf("initial selection = %v, want Sun", m.SelectedKind())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.SelectedKind() != ephem.KindMoon {
		t.Errorf("selection after j = %v, want Moon", m.SelectedKind())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.SelectedKind() != ephem.KindSun {
		t.Errorf("selection stuck below top: %v", m.SelectedKind())
	}
}

func TestDetailViewSunShowsTwilight(t *testing.T) {
	m := NewDetailModel().SetSize(120, 30).UpdateData(testSnapshot(t))
	out := m.View()

	for _, want := range []string{"SUN", "right ascension", "ground range", "civil twilight"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
}

func TestDetailViewCycleBodies(t *testing.T) {
	m := NewDetailModel().SetSize(120, 30).UpdateData(testSnapshot(t))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "MOON") {
		t.Error("right arrow did not move to the Moon")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if !strings.Contains(m.View(), "PLUTO") {
		t.Error("left arrow from the Sun did not wrap to Pluto")
	}
}

func TestEventsViewChronological(t *testing.T) {
	snap := testSnapshot(t)
	events := collectDayEvents(snap)
	if len(events) == 0 {
		t.Fatal("no events collected")
	}
	for i := 1; i < len(events); i++ {
		if events[i].at.Before(events[i-1].at) {
			t.Errorf("events out of order: %q at %v after %q at %v",
				events[i].label, events[i].at, events[i-1].label, events[i-1].at)
		}
	}

	out := NewEventsModel().SetSize(120, 30).UpdateData(snap).View()
	for _, want := range []string{"Events on 2024-03-15", "Sun rises", "civil dusk"} {
		if !strings.Contains(out, want) {
			t.Errorf("events view missing %q", want)
		}
	}
}

func TestGradientColorBounds(t *testing.T) {
	for _, pos := range [][4]int{{0, 0, 80, 6}, {79, 5, 80, 6}, {40, 3, 80, 6}} {
		c := gradientColor(pos[0], pos[1], pos[2], pos[3])
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("gradientColor(%v) = %q, want #RRGGBB", pos, c)
		}
	}
}

func TestRootModelViewSwitching(t *testing.T) {
	mgr, err := state.NewManager(state.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	mgr.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))

	m := New(mgr)
	var model tea.Model = m
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = model.Update(SnapshotMsg(mgr.Snapshot()))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	root := model.(Model)
	if root.viewMode != ViewEvents {
		t.Errorf("viewMode = %v after '3', want ViewEvents", root.viewMode)
	}
	if !strings.Contains(root.View(), "Events on") {
		t.Error("events view not rendered after switching")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	root = model.(Model)
	if root.viewMode != ViewAlmanac {
		t.Errorf("viewMode = %v after tab from Events, want ViewAlmanac", root.viewMode)
	}
}
