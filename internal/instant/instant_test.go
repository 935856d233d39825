package instant

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFromCalendarKnownDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   float64
		want  float64
	}{
		{"Sputnik launch", 1957, 10, 4.81, 2436116.31},
		{"J2000 epoch", 2000, 1, 1.5, 2451545.0},
		{"1987 Jan 27.0", 1987, 1, 27.0, 2446822.5},
		{"1600 Dec 31.0", 1600, 12, 31.0, 2305812.5},
		{"Julian calendar date", 333, 1, 27.5, 1842713.0},
		{"day before Gregorian reform", 1582, 10, 4.0, 2299159.5},
		{"first Gregorian day", 1582, 10, 15.0, 2299160.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromCalendar(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("FromCalendar() error = %v", err)
			}
			if math.Abs(got.JD()-tt.want) > 1e-6 {
				t.Errorf("FromCalendar() JD = %.6f, want %.6f", got.JD(), tt.want)
			}
		})
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	tests := []struct {
		year  int
		month int
		day   float64
	}{
		{2024, 2, 29.75},
		{1988, 3, 20.0},
		{1957, 10, 4.81},
		{1600, 1, 1.0},
		{1999, 12, 31.999},
		{1835, 11, 16.41},
	}

	for _, tt := range tests {
		i, err := FromCalendar(tt.year, tt.month, tt.day)
		if err != nil {
			t.Fatalf("FromCalendar(%d,%d,%g) error = %v", tt.year, tt.month, tt.day, err)
		}
		y, m, d := i.Calendar()
		if y != tt.year || m != tt.month || math.Abs(d-tt.day) > 1e-6 {
			t.Errorf("round trip (%d,%d,%g) = (%d,%d,%g)", tt.year, tt.month, tt.day, y, m, d)
		}
	}
}

func TestFromCalendarInvalid(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   float64
	}{
		{"day 32", 2024, 1, 32},
		{"month 13", 2024, 13, 1},
		{"month 0", 2024, 0, 1},
		{"day 0", 2024, 1, 0},
		{"Feb 30", 2023, 2, 30},
		{"Feb 29 non-leap", 2023, 2, 29},
		{"dropped Gregorian day", 1582, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromCalendar(tt.year, tt.month, tt.day); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("FromCalendar() error = %v, want ErrInvalidDate", err)
			}
		})
	}
}

func TestFromUnixMillis(t *testing.T) {
	if got := FromUnixMillis(0).JD(); math.Abs(got-2440587.5) > 1e-9 {
		t.Errorf("Unix epoch JD = %.9f, want 2440587.5", got)
	}

	ref := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := FromTime(ref).JD(); math.Abs(got-J2000) > 1e-6 {
		t.Errorf("J2000 from time.Time = %.6f, want %.1f", got, J2000)
	}
}

func TestDeltaT(t *testing.T) {
	tests := []struct {
		year float64
		want float64
		tol  float64
	}{
		{1970, 40.2, 0.14},
		{1800, 13.7, 0.1},
		{2000, 63.8, 0.5},
		{1900, -2.8, 0.5},
		{1650, 50, 5}, // few-second accuracy in the 17th century
	}

	for _, tt := range tests {
		if got := DeltaT(tt.year); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("DeltaT(%g) = %.2f, want %.2f ± %.2f", tt.year, got, tt.want, tt.tol)
		}
	}
}

func TestDeltaTMonotonicConversion(t *testing.T) {
	// UT -> TD -> UT must round-trip, and TD must always be ahead of UT
	// in the modern era.
	for y := 1700; y <= 2040; y += 10 {
		i, err := FromCalendar(y, 6, 15.25)
		if err != nil {
			t.Fatal(err)
		}
		td := i.TD()
		back := td.UT()
		if math.Abs(back.JD()-i.JD()) > 1e-9 {
			t.Errorf("year %d: UT->TD->UT drifted by %g days", y, back.JD()-i.JD())
		}
		if td.Scale() != ScaleTD || back.Scale() != ScaleUT {
			t.Errorf("year %d: scale not tracked through conversion", y)
		}
	}
}

func TestGMST(t *testing.T) {
	// Meeus example 12.a: 1987 April 10.0 UT, GMST = 13h10m46.3668s.
	i, err := FromCalendar(1987, 4, 10.0)
	if err != nil {
		t.Fatal(err)
	}
	wantHours := 13 + 10/60.0 + 46.3668/3600
	gotHours := HoursFromRad(i.GMST())
	if math.Abs(gotHours-wantHours)*3600 > 0.01 {
		t.Errorf("GMST = %.6fh, want %.6fh", gotHours, wantHours)
	}
}

func TestGAST(t *testing.T) {
	// Meeus example 12.a: apparent sidereal time 13h10m46.1351s.
	// The abridged nutation series is good to ~0.5", about 0.03s of time.
	i, err := FromCalendar(1987, 4, 10.0)
	if err != nil {
		t.Fatal(err)
	}
	wantHours := 13 + 10/60.0 + 46.1351/3600
	gotHours := HoursFromRad(i.GAST())
	if math.Abs(gotHours-wantHours)*3600 > 0.05 {
		t.Errorf("GAST = %.6fh, want %.6fh", gotHours, wantHours)
	}
}

func TestNutationAndObliquity(t *testing.T) {
	// Meeus example 22.a: 1987 April 10.0 TD.
	i := FromJD(2446895.5, ScaleTD)
	dpsi, deps := Nutation(i)

	if got := dpsi / arcsecToRad; math.Abs(got-(-3.788)) > 0.5 {
		t.Errorf("nutation in longitude = %.3f\", want -3.788\"", got)
	}
	if got := deps / arcsecToRad; math.Abs(got-9.443) > 0.1 {
		t.Errorf("nutation in obliquity = %.3f\", want 9.443\"", got)
	}

	eps0 := MeanObliquity(i) * 180 / math.Pi
	if math.Abs(eps0-23.44094) > 0.0001 {
		t.Errorf("mean obliquity = %.5f°, want 23.44094°", eps0)
	}
	eps := TrueObliquity(i) * 180 / math.Pi
	if math.Abs(eps-23.44357) > 0.0002 {
		t.Errorf("true obliquity = %.5f°, want 23.44357°", eps)
	}
}

func TestHoursRadConversion(t *testing.T) {
	for _, h := range []float64{0, 6, 12, 18, 23.999} {
		if got := HoursFromRad(RadFromHours(h)); math.Abs(got-h) > 1e-9 {
			t.Errorf("hours round trip %.3f = %.9f", h, got)
		}
	}
}
