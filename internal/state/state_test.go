package state

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/ephem"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(DefaultConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"latitude out of range", func(c *Config) { c.LatitudeDeg = 91 }},
		{"longitude out of range", func(c *Config) { c.LongitudeDeg = 500 }},
		{"unknown ellipsoid", func(c *Config) { c.Ellipsoid = "FLAT" }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "euclid" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(&cfg)
			if _, err := NewManager(cfg); err == nil {
				t.Error("NewManager accepted invalid config")
			}
		})
	}
}

func TestClockControl(t *testing.T) {
	m := testManager(t)

	if !m.Live() {
		t.Fatal("new manager should start live")
	}

	pinned := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.Freeze(pinned)
	if m.Live() {
		t.Error("Live() = true after Freeze")
	}
	if got := m.Now(); !got.Equal(pinned) {
		t.Errorf("Now() = %v, want %v", got, pinned)
	}

	m.Step(36 * time.Hour)
	if got := m.Now(); !got.Equal(pinned.Add(36 * time.Hour)) {
		t.Errorf("Now() after step = %v, want %v", got, pinned.Add(36*time.Hour))
	}

	m.Resume()
	if !m.Live() {
		t.Error("Live() = false after Resume")
	}
	if d := time.Until(m.Now().Add(time.Second)); d < 0 {
		t.Errorf("resumed clock lags wall clock by %v", -d)
	}
}

func TestSnapshotRows(t *testing.T) {
	m := testManager(t)
	m.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))

	snap := m.Snapshot()
	if len(snap.Rows) != len(ephem.Kinds) {
		t.Fatalf("got %d rows, want %d", len(snap.Rows), len(ephem.Kinds))
	}

	for _, row := range snap.Rows {
		if row.Err != "" {
			t.Errorf("%s: %s", row.Name, row.Err)
			continue
		}
		if row.RAHours < 0 || row.RAHours >= 24 {
			t.Errorf("%s: RA %.3f h out of range", row.Name, row.RAHours)
		}
		if row.DecDeg < -90 || row.DecDeg > 90 {
			t.Errorf("%s: Dec %.3f deg out of range", row.Name, row.DecDeg)
		}
		if row.AzDeg < 0 || row.AzDeg >= 360 {
			t.Errorf("%s: Az %.3f deg out of range", row.Name, row.AzDeg)
		}
	}

	moon, ok := findRow(snap, ephem.KindMoon)
	if !ok {
		t.Fatal("no Moon row")
	}
	if moon.DistanceKm < 356000 || moon.DistanceKm > 407000 {
		t.Errorf("Moon distance %.0f km outside orbital bounds", moon.DistanceKm)
	}
	if moon.PhaseName == "" {
		t.Error("Moon has no phase name")
	}

	sun, _ := findRow(snap, ephem.KindSun)
	if !sun.Rise.OK || !sun.Set.OK {
		t.Errorf("Sun rise/set at Greenwich in March: %+v / %+v", sun.Rise, sun.Set)
	}
	if !snap.Twilight.CivilDawn.OK || !snap.Twilight.CivilDusk.OK {
		t.Errorf("civil twilight missing: %+v / %+v",
			snap.Twilight.CivilDawn, snap.Twilight.CivilDusk)
	}
	if !snap.Twilight.CivilDawn.At.Before(sun.Rise.At) {
		t.Errorf("civil dawn %v not before sunrise %v",
			snap.Twilight.CivilDawn.At, sun.Rise.At)
	}
}

func TestSnapshotGroundTrack(t *testing.T) {
	m := testManager(t)
	m.Freeze(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	snap := m.Snapshot()
	sun, _ := findRow(snap, ephem.KindSun)

	// Mid-March: the subsolar point sits near the equator, and around
	// noon UT it is close in longitude to Greenwich.
	if sun.SubLatDeg < -5 || sun.SubLatDeg > 5 {
		t.Errorf("subsolar latitude %.2f deg, want near equator", sun.SubLatDeg)
	}
	if sun.SubLonDeg < -15 || sun.SubLonDeg > 15 {
		t.Errorf("subsolar longitude %.2f deg, want near Greenwich at noon", sun.SubLonDeg)
	}
	if km := sun.GroundRange.Kilometers(); km < 4000 || km > 8000 {
		t.Errorf("ground range %.0f km from 51.5N to the subsolar point", km)
	}
}

func TestWriteAlmanac(t *testing.T) {
	m := testManager(t)
	m.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	WriteAlmanac(&buf, m.Snapshot())
	out := buf.String()

	for _, want := range []string{"BODY", "Sun", "Moon", "Jupiter", "2024-03-15"} {
		if !strings.Contains(out, want) {
			t.Errorf("almanac output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRiseSet(t *testing.T) {
	m := testManager(t)
	m.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))
	snap := m.Snapshot()

	var buf bytes.Buffer
	WriteRiseSet(&buf, snap, ephem.KindSun)
	out := buf.String()
	for _, want := range []string{"rise", "transit", "set", "civil dawn", "astronomical dusk"} {
		if !strings.Contains(out, want) {
			t.Errorf("rise/set output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	WriteRiseSet(&buf, snap, ephem.KindMars)
	if strings.Contains(buf.String(), "dawn") {
		t.Error("planet rise/set output includes twilight")
	}
}

func TestExportSnapshotJSON(t *testing.T) {
	m := testManager(t)
	m.Freeze(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := ExportSnapshot(m.Snapshot()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded SnapshotExport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("round-trip decode: %v", err)
	}
	if len(decoded.Bodies) != len(ephem.Kinds) {
		t.Errorf("exported %d bodies, want %d", len(decoded.Bodies), len(ephem.Kinds))
	}
	if decoded.Twilight == nil {
		t.Error("export has no twilight block")
	}
	if decoded.Ellipsoid != "WGS84" {
		t.Errorf("ellipsoid = %q, want WGS84", decoded.Ellipsoid)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatRA(5.5); got != "05h30.0m" {
		t.Errorf("FormatRA(5.5) = %q", got)
	}
	if got := FormatEvent(Event{Note: "circumpolar"}); got != "circumpolar" {
		t.Errorf("FormatEvent(no event) = %q", got)
	}
	at := time.Date(2024, 1, 1, 7, 42, 0, 0, time.UTC)
	if got := FormatEvent(Event{At: at, OK: true}); got != "07:42" {
		t.Errorf("FormatEvent = %q, want 07:42", got)
	}
}
