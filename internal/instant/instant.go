// Package instant represents absolute time as a Julian Date and provides
// calendar, dynamical-time, and sidereal-time conversions.
package instant

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDate is returned for calendar dates that do not exist.
var ErrInvalidDate = errors.New("invalid calendar date")

// Scale identifies the time scale a Julian Date is expressed in.
type Scale int

const (
	// ScaleUT is Universal Time (civil time at Greenwich).
	ScaleUT Scale = iota
	// ScaleTD is Terrestrial (Dynamical) Time, TD = UT + ΔT.
	ScaleTD
)

func (s Scale) String() string {
	switch s {
	case ScaleUT:
		return "UT"
	case ScaleTD:
		return "TD"
	default:
		return "unknown"
	}
}

// J2000 is the Julian Date of the standard epoch J2000.0 (2000 January 1.5 TD).
const J2000 = 2451545.0

// Instant is an absolute point in time: a Julian Date in a stated scale.
// Instants are immutable values; derived instants are produced by the
// conversion methods.
type Instant struct {
	jd    float64
	scale Scale
}

// FromJD constructs an Instant from a Julian Date in the given scale.
func FromJD(jd float64, scale Scale) Instant {
	return Instant{jd: jd, scale: scale}
}

// FromCalendar constructs a UT Instant from a civil calendar date.
// Dates on or after 1582 October 15 are interpreted in the Gregorian
// calendar, earlier dates in the Julian calendar; the dropped days
// 1582 October 5-14 are rejected. The day carries a fractional part
// for the time of day.
func FromCalendar(year, month int, day float64) (Instant, error) {
	if month < 1 || month > 12 {
		return Instant{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day >= float64(daysInMonth(year, month)+1) {
		return Instant{}, fmt.Errorf("%w: %d-%02d day %g", ErrInvalidDate, year, month, day)
	}
	if year == 1582 && month == 10 && day >= 5 && day < 15 {
		return Instant{}, fmt.Errorf("%w: 1582 October %g was dropped by the Gregorian reform", ErrInvalidDate, day)
	}
	return Instant{jd: calendarToJD(year, month, day), scale: ScaleUT}, nil
}

// FromUnixMillis constructs a UT Instant from milliseconds since the Unix epoch.
func FromUnixMillis(ms int64) Instant {
	return Instant{jd: 2440587.5 + float64(ms)/86400000.0, scale: ScaleUT}
}

// FromTime constructs a UT Instant from a time.Time.
func FromTime(t time.Time) Instant {
	return FromUnixMillis(t.UnixMilli())
}

// JD returns the Julian Date in the instant's own scale.
func (i Instant) JD() float64 { return i.jd }

// Scale returns the time scale of the instant.
func (i Instant) Scale() Scale { return i.scale }

// UT returns the instant expressed in Universal Time.
func (i Instant) UT() Instant {
	if i.scale == ScaleUT {
		return i
	}
	y, m, _ := jdToCalendar(i.jd)
	dt := DeltaT(decimalYear(y, m))
	return Instant{jd: i.jd - dt/86400.0, scale: ScaleUT}
}

// TD returns the instant expressed in Terrestrial (Dynamical) Time.
func (i Instant) TD() Instant {
	if i.scale == ScaleTD {
		return i
	}
	y, m, _ := jdToCalendar(i.jd)
	dt := DeltaT(decimalYear(y, m))
	return Instant{jd: i.jd + dt/86400.0, scale: ScaleTD}
}

// Add returns the instant shifted by the given number of days.
func (i Instant) Add(days float64) Instant {
	return Instant{jd: i.jd + days, scale: i.scale}
}

// Calendar returns the civil calendar date of the instant in its own scale.
// The day includes the fractional time of day.
func (i Instant) Calendar() (year, month int, day float64) {
	return jdToCalendar(i.jd)
}

// Time returns the instant as a time.Time in UTC, to millisecond resolution.
func (i Instant) Time() time.Time {
	ut := i.UT()
	ms := (ut.jd - 2440587.5) * 86400000.0
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}

// JulianCenturies returns centuries elapsed since J2000.0 in the instant's scale.
func (i Instant) JulianCenturies() float64 {
	return (i.jd - J2000) / 36525.0
}

// GMST returns the Greenwich Mean Sidereal Time in radians [0, 2π).
// The IAU 1982 polynomial, evaluated against the UT Julian Date.
func (i Instant) GMST() float64 {
	jd := i.UT().jd
	t := (jd - J2000) / 36525.0
	deg := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return normalizeRad(deg * math.Pi / 180)
}

// GAST returns the Greenwich Apparent Sidereal Time in radians [0, 2π):
// GMST corrected by the equation of the equinoxes.
func (i Instant) GAST() float64 {
	dpsi, _ := Nutation(i.TD())
	eps := TrueObliquity(i.TD())
	return normalizeRad(i.GMST() + dpsi*math.Cos(eps))
}

// calendarToJD implements the standard proleptic calendar-to-Julian-Date
// algorithm (Meeus ch.7), Gregorian from 1582 October 15 onward.
func calendarToJD(year, month int, day float64) float64 {
	y, m := float64(year), float64(month)
	if m <= 2 {
		y--
		m += 12
	}
	var b float64
	if isGregorian(year, month, day) {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day + b - 1524.5
}

// jdToCalendar is the inverse of calendarToJD, valid for non-negative JD.
func jdToCalendar(jd float64) (year, month int, day float64) {
	z, f := math.Modf(jd + 0.5)
	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = b - d - math.Floor(30.6001*e) + f
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	return year, month, day
}

func isGregorian(year, month int, day float64) bool {
	if year > 1582 {
		return true
	}
	if year < 1582 {
		return false
	}
	if month > 10 {
		return true
	}
	return month == 10 && day >= 15
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if isLeapYear(year) {
		return 29
	}
	return 28
}

func isLeapYear(year int) bool {
	if year <= 1582 {
		// Julian rule before the reform.
		return year%4 == 0
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// decimalYear converts a calendar year and month to the fractional year
// used by the ΔT model.
func decimalYear(year, month int) float64 {
	return float64(year) + (float64(month)-0.5)/12
}

// normalizeRad wraps an angle into [0, 2π).
func normalizeRad(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// HoursFromRad converts a radian angle to hours [0, 24).
func HoursFromRad(rad float64) float64 {
	return normalizeRad(rad) * 12 / math.Pi
}

// RadFromHours converts hours to radians.
func RadFromHours(h float64) float64 {
	return h * math.Pi / 12
}
