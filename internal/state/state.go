// Package state provides thread-safe session state for the almanac:
// the observer, the clock, and computed per-body snapshots.
package state

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/geodesy"
	"github.com/litescript/ls-almanac/internal/instant"
)

// Config holds the observer and engine configuration.
type Config struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64
	Ellipsoid    string // name in geodesy.Ellipsoids, default WGS84
	Algorithm    string // geodesic algorithm name, default vincenty
	Bodies       []ephem.Kind
}

// DefaultConfig returns a Greenwich observer with the default engine.
func DefaultConfig() Config {
	return Config{
		LatitudeDeg:  51.4769,
		LongitudeDeg: 0.0,
		Ellipsoid:    "WGS84",
		Algorithm:    "vincenty",
		Bodies:       ephem.Kinds,
	}
}

// Manager owns the observation and the session clock, and serves
// consistent snapshots to the UI and the headless writers. All methods
// are safe for concurrent use; the Observation itself is confined
// behind the mutex.
type Manager struct {
	mu sync.Mutex

	obs       *ephem.Observation
	observer  geodesy.Position
	ellName   string
	altitudeM float64
	calc      geodesy.Calculator
	bodies    []ephem.Kind

	// Clock: live tracks the wall clock plus an offset; frozen pins a
	// fixed instant.
	live     bool
	offset   time.Duration
	frozenAt time.Time
}

// NewManager validates the configuration and builds a session manager
// with a live clock.
func NewManager(cfg Config) (*Manager, error) {
	pos, err := geodesy.NewPositionDegrees(cfg.LatitudeDeg, cfg.LongitudeDeg)
	if err != nil {
		return nil, err
	}

	ellName := cfg.Ellipsoid
	if ellName == "" {
		ellName = "WGS84"
	}
	ell, ok := geodesy.Ellipsoids[strings.ToLower(ellName)]
	if !ok {
		return nil, fmt.Errorf("unknown ellipsoid %q", ellName)
	}

	algName := cfg.Algorithm
	if algName == "" {
		algName = "vincenty"
	}
	alg, err := geodesy.ParseAlgorithm(algName)
	if err != nil {
		return nil, err
	}

	bodies := cfg.Bodies
	if len(bodies) == 0 {
		bodies = ephem.Kinds
	}

	obs := ephem.Now()
	obs.SetObserver(pos)
	obs.SetAltitudeM(cfg.AltitudeM)
	obs.SetEllipsoid(ell)

	return &Manager{
		obs:       obs,
		observer:  pos,
		ellName:   ell.Name,
		altitudeM: cfg.AltitudeM,
		calc:      geodesy.Calculator{Ellipsoid: ell, Algorithm: alg},
		bodies:    bodies,
		live:      true,
	}, nil
}

// Calculator returns the geodesic calculator configured for the session.
func (m *Manager) Calculator() geodesy.Calculator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calc
}

// Now returns the session's current time.
func (m *Manager) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now()
}

func (m *Manager) now() time.Time {
	if m.live {
		return time.Now().Add(m.offset).UTC()
	}
	return m.frozenAt
}

// Step shifts the session clock by d, keeping it live or frozen as is.
func (m *Manager) Step(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live {
		m.offset += d
	} else {
		m.frozenAt = m.frozenAt.Add(d)
	}
}

// Freeze pins the clock at t.
func (m *Manager) Freeze(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = false
	m.frozenAt = t.UTC()
}

// Resume returns to the live wall clock with no offset.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = true
	m.offset = 0
}

// Live reports whether the clock tracks the wall clock.
func (m *Manager) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// Event is a resolved daily event time. When OK is false, Note carries
// the reason (circumpolar, never rises, or an error).
type Event struct {
	At   time.Time
	OK   bool
	Note string
}

// BodyRow is one body's computed almanac line. Angles are in display
// units: degrees everywhere, right ascension additionally in hours.
type BodyRow struct {
	Kind ephem.Kind
	Name string

	RAHours    float64
	DecDeg     float64
	AzDeg      float64
	AltDeg     float64 // true altitude
	AppAltDeg  float64 // refracted
	DistanceAU float64
	DistanceKm float64
	Magnitude  float64

	// Phase data; zero-valued for the Sun.
	Illuminated float64
	PhaseName   string
	ElongDeg    float64

	// Ground track: the point on the ellipsoid where the body is at
	// the zenith, and the geodesic from the observer to it.
	SubLatDeg, SubLonDeg float64
	GroundRange          geodesy.Distance

	Rise, Transit, Set Event

	Err string
}

// Twilight holds the Sun's twilight crossings for the day.
type Twilight struct {
	CivilDawn, CivilDusk               Event
	NauticalDawn, NauticalDusk         Event
	AstronomicalDawn, AstronomicalDusk Event
}

// Snapshot is an immutable view of the session at one instant.
type Snapshot struct {
	Time      time.Time
	Live      bool
	Observer  geodesy.Position
	AltitudeM float64
	Ellipsoid string
	Rows      []BodyRow
	Twilight  Twilight
}

// Snapshot computes the almanac for the session's current time.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.now()
	m.obs.SetTime(t)

	snap := Snapshot{
		Time:      t,
		Live:      m.live,
		Observer:  m.observer,
		AltitudeM: m.altitudeM,
		Ellipsoid: m.ellName,
		Rows:      make([]BodyRow, 0, len(m.bodies)),
	}

	for _, k := range m.bodies {
		snap.Rows = append(snap.Rows, m.bodyRow(k, t))
	}

	sun := m.obs.Sun()
	snap.Twilight = Twilight{
		CivilDawn:        m.event(sun, ephem.FieldCivilDawn, t),
		CivilDusk:        m.event(sun, ephem.FieldCivilDusk, t),
		NauticalDawn:     m.event(sun, ephem.FieldNauticalDawn, t),
		NauticalDusk:     m.event(sun, ephem.FieldNauticalDusk, t),
		AstronomicalDawn: m.event(sun, ephem.FieldAstronomicalDawn, t),
		AstronomicalDusk: m.event(sun, ephem.FieldAstronomicalDusk, t),
	}

	return snap
}

func (m *Manager) bodyRow(k ephem.Kind, t time.Time) BodyRow {
	var b ephem.Body
	switch k {
	case ephem.KindSun:
		b = m.obs.Sun()
	case ephem.KindMoon:
		b = m.obs.Moon()
	default:
		b = m.obs.Planet(k)
	}

	row := BodyRow{Kind: k, Name: k.String()}

	ra, err := b.Get(ephem.FieldRATopocentric)
	if err != nil {
		row.Err = err.Error()
		return row
	}
	dec, _ := b.Get(ephem.FieldDecTopocentric)
	row.RAHours = instant.HoursFromRad(ra)
	row.DecDeg = degrees(dec)

	if az, err := b.Get(ephem.FieldAzimuth); err == nil {
		alt, _ := b.Get(ephem.FieldAltitude)
		row.AzDeg = degrees(az)
		row.AltDeg = degrees(alt)
		row.AppAltDeg = degrees(ephem.ApparentAltitude(alt))
	}

	if au, err := b.Get(ephem.FieldEarthDistanceAU); err == nil {
		row.DistanceAU = au
		km, _ := b.Get(ephem.FieldEarthDistanceKm)
		row.DistanceKm = km
	}
	if mag, err := b.Get(ephem.FieldMagnitude); err == nil {
		row.Magnitude = mag
	}

	if k != ephem.KindSun {
		if frac, err := b.Get(ephem.FieldIlluminatedFraction); err == nil {
			row.Illuminated = frac
		}
		if el, err := b.Get(ephem.FieldElongation); err == nil {
			row.ElongDeg = degrees(el)
		}
		if k == ephem.KindMoon {
			row.PhaseName = m.moonPhaseName(row.Illuminated)
		}
	}

	m.fillGroundTrack(&row, ra, dec)

	row.Rise = m.event(b, ephem.FieldRiseTime, t)
	row.Transit = m.event(b, ephem.FieldTransitTime, t)
	row.Set = m.event(b, ephem.FieldSetTime, t)
	return row
}

// fillGroundTrack locates the sub-body point (declination as latitude,
// hour angle from Greenwich as longitude) and measures the geodesic
// from the observer to it.
func (m *Manager) fillGroundTrack(row *BodyRow, ra, dec float64) {
	gast, err := m.obs.Get(ephem.FieldGAST)
	if err != nil {
		return
	}
	sub, err := geodesy.NewPositionDegrees(degrees(dec), lonDegrees(ra-gast))
	if err != nil {
		return
	}
	row.SubLatDeg = degrees(sub.Lat)
	row.SubLonDeg = degrees(sub.Lon)
	if dist, _, _, err := m.calc.Inverse(m.observer, sub); err == nil {
		row.GroundRange = dist
	}
}

// event resolves a day-fraction field into a wall-clock event.
func (m *Manager) event(b ephem.Body, f ephem.Field, t time.Time) Event {
	frac, err := b.Get(f)
	if err != nil {
		note := "unavailable"
		switch {
		case errors.Is(err, ephem.ErrNoEvent):
			note = noEventNote(err)
		case errors.Is(err, ephem.ErrNoObserver):
			note = "no observer"
		case errors.Is(err, ephem.ErrUndefinedField):
			note = "n/a"
		}
		return Event{Note: note}
	}

	y, mo, d := t.UTC().Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return Event{
		At: day.Add(time.Duration(frac * 24 * float64(time.Hour))),
		OK: true,
	}
}

func noEventNote(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "circumpolar"):
		return "circumpolar"
	case strings.Contains(msg, "never rises"):
		return "below horizon"
	}
	return "no event"
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// lonDegrees wraps a radian longitude into (-180, 180] degrees.
func lonDegrees(rad float64) float64 {
	return degrees(normalizeLon(rad))
}

func normalizeLon(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad > math.Pi {
		rad -= 2 * math.Pi
	} else if rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// moonPhaseName names the lunar phase from the illuminated fraction
// and the waxing/waning direction (the Moon waxes while it is east of
// the Sun by less than half a turn).
func (m *Manager) moonPhaseName(illum float64) string {
	moonLon, err := m.obs.Moon().Get(ephem.FieldGeoLon)
	if err != nil {
		return ""
	}
	sunLon, err := m.obs.Sun().Get(ephem.FieldGeoLon)
	if err != nil {
		return ""
	}
	waxing := normalizeLon(moonLon-sunLon) > 0

	switch {
	case illum < 0.02:
		return "new"
	case illum > 0.98:
		return "full"
	case illum > 0.45 && illum < 0.55:
		if waxing {
			return "first quarter"
		}
		return "last quarter"
	case illum < 0.5:
		if waxing {
			return "waxing crescent"
		}
		return "waning crescent"
	default:
		if waxing {
			return "waxing gibbous"
		}
		return "waning gibbous"
	}
}
