package state

import (
	"fmt"
	"io"

	"github.com/litescript/ls-almanac/internal/ephem"
)

// WriteAlmanac prints the snapshot as a plain-text table, one line per
// body.
func WriteAlmanac(w io.Writer, snap Snapshot) {
	fmt.Fprintf(w, "Almanac for %s UT\n", snap.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Observer %s  alt %.0f m  (%s)\n\n",
		snap.Observer, snap.AltitudeM, snap.Ellipsoid)

	fmt.Fprintf(w, "%-8s %9s %8s %7s %7s %11s %6s %6s %7s %7s\n",
		"BODY", "RA", "DEC", "AZ", "ALT", "DIST", "MAG", "ILLUM", "RISE", "SET")

	for _, row := range snap.Rows {
		if row.Err != "" {
			fmt.Fprintf(w, "%-8s %s\n", row.Name, row.Err)
			continue
		}
		fmt.Fprintf(w, "%-8s %9s %8.3f %7.2f %7.2f %11s %6.1f %6s %7s %7s\n",
			row.Name,
			FormatRA(row.RAHours),
			row.DecDeg,
			row.AzDeg,
			row.AltDeg,
			FormatDistance(row),
			row.Magnitude,
			formatIllum(row),
			FormatEvent(row.Rise),
			FormatEvent(row.Set))
	}
}

// WriteRiseSet prints the daily events for a single body, with the
// twilight ladder when the body is the Sun.
func WriteRiseSet(w io.Writer, snap Snapshot, kind ephem.Kind) {
	row, ok := findRow(snap, kind)
	if !ok {
		fmt.Fprintf(w, "no data for %v\n", kind)
		return
	}

	fmt.Fprintf(w, "%s on %s UT at %s\n\n",
		row.Name, snap.Time.Format("2006-01-02"), snap.Observer)

	if kind == ephem.KindSun {
		fmt.Fprintf(w, "  %-19s %s\n", "astronomical dawn", FormatEvent(snap.Twilight.AstronomicalDawn))
		fmt.Fprintf(w, "  %-19s %s\n", "nautical dawn", FormatEvent(snap.Twilight.NauticalDawn))
		fmt.Fprintf(w, "  %-19s %s\n", "civil dawn", FormatEvent(snap.Twilight.CivilDawn))
	}
	fmt.Fprintf(w, "  %-19s %s\n", "rise", FormatEvent(row.Rise))
	fmt.Fprintf(w, "  %-19s %s\n", "transit", FormatEvent(row.Transit))
	fmt.Fprintf(w, "  %-19s %s\n", "set", FormatEvent(row.Set))
	if kind == ephem.KindSun {
		fmt.Fprintf(w, "  %-19s %s\n", "civil dusk", FormatEvent(snap.Twilight.CivilDusk))
		fmt.Fprintf(w, "  %-19s %s\n", "nautical dusk", FormatEvent(snap.Twilight.NauticalDusk))
		fmt.Fprintf(w, "  %-19s %s\n", "astronomical dusk", FormatEvent(snap.Twilight.AstronomicalDusk))
	}
}

func findRow(snap Snapshot, kind ephem.Kind) (BodyRow, bool) {
	for _, row := range snap.Rows {
		if row.Kind == kind {
			return row, true
		}
	}
	return BodyRow{}, false
}

// FormatRA renders decimal hours as "HHhMMm".
func FormatRA(hours float64) string {
	h := int(hours)
	m := (hours - float64(h)) * 60
	return fmt.Sprintf("%02dh%04.1fm", h, m)
}

// FormatEvent renders an event as "HH:MM" UT, or its note.
func FormatEvent(e Event) string {
	if !e.OK {
		return e.Note
	}
	return e.At.UTC().Format("15:04")
}

// FormatDistance renders the Moon's distance in kilometres and
// everything else in AU.
func FormatDistance(row BodyRow) string {
	if row.Kind == ephem.KindMoon {
		return fmt.Sprintf("%.0f km", row.DistanceKm)
	}
	return fmt.Sprintf("%.4f AU", row.DistanceAU)
}

func formatIllum(row BodyRow) string {
	if row.Kind == ephem.KindSun {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", row.Illuminated*100)
}

// FormatPhase renders the Moon's phase line for display.
func FormatPhase(row BodyRow) string {
	if row.PhaseName == "" {
		return fmt.Sprintf("%.0f%%", row.Illuminated*100)
	}
	return fmt.Sprintf("%s (%.0f%%)", row.PhaseName, row.Illuminated*100)
}
