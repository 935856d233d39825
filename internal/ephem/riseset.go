package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/instant"
)

// EventState classifies the outcome of a horizon-crossing search.
type EventState int

const (
	// EventNormal means the body crosses the threshold altitude twice
	// during the day.
	EventNormal EventState = iota
	// EventCircumpolar means the body stays above the threshold all day.
	EventCircumpolar
	// EventNeverRises means the body stays below the threshold all day.
	EventNeverRises
)

func (s EventState) String() string {
	switch s {
	case EventNormal:
		return "normal"
	case EventCircumpolar:
		return "circumpolar"
	case EventNeverRises:
		return "never rises"
	default:
		return "unknown"
	}
}

// riseSetResult holds the refined event times as fractions of the UT
// day ([0,1), 0 = 0h UT of the observation's civil date).
type riseSetResult struct {
	rise, transit, set float64
	state              EventState
}

const (
	// Ratio of sidereal to solar day length.
	siderealRate = 1.00273790935
	// Refinement convergence threshold, in days (~0.1 s).
	riseSetTol = 1e-6
	// Refinement iteration cap; the loop normally converges in 2-3
	// steps, the Moon occasionally needs a few more.
	riseSetMaxIter = 12
)

// standardAltitude returns the conventional threshold altitude for a
// body's rising and setting: the centre 34' below the horizon for
// refraction, raised by the semidiameter for the Sun, and by the
// parallax-dominated correction 0.7275*pi for the Moon.
func standardAltitude(o *Observation, k Kind) float64 {
	switch k {
	case KindSun:
		return -0.8333 * deg
	case KindMoon:
		noon := o.probeAt(o.dayStart() + 0.5)
		au, err := noon.get(KindMoon, FieldEarthDistanceAU)
		if err != nil {
			// Unreachable for the Moon; keep the mean value anyway.
			return 0.125 * deg
		}
		return 0.7275*moonHorizontalParallax(au*auKm) - 0.5667*deg
	default:
		return -0.5667 * deg
	}
}

// dayStart returns the Julian Date of 0h UT on the observation's civil
// date.
func (o *Observation) dayStart() float64 {
	return math.Floor(o.inst.UT().JD()+0.5) - 0.5
}

// probeAt builds a scratch observation at another UT Julian Date,
// sharing the observer but not the cache. The event search evaluates
// the full coordinate pipeline at each trial time through probes so
// the parent cache stays bound to its own instant.
func (o *Observation) probeAt(jdUT float64) *Observation {
	return &Observation{
		inst:      instant.FromJD(jdUT, instant.ScaleUT),
		observer:  o.observer,
		altitudeM: o.altitudeM,
		ellipsoid: o.ellipsoid,
	}
}

// riseTransitSet finds the times the body crosses altitude h0 and the
// time of upper transit during the observation's UT day (Meeus ch.15,
// with the interpolation tables replaced by direct re-evaluation of
// the apparent place at each refined time).
func (o *Observation) riseTransitSet(k Kind, h0 float64) (riseSetResult, error) {
	if o.observer == nil {
		return riseSetResult{}, fmt.Errorf("%w: event search", ErrNoObserver)
	}
	jd0 := o.dayStart()
	lat := o.observer.Lat
	lon := o.observer.Lon

	day := o.probeAt(jd0)
	theta0 := day.inst.GAST()
	ra, err := day.get(k, FieldRAApparent)
	if err != nil {
		return riseSetResult{}, err
	}
	dec := day.cache[int(k)][FieldDecApparent]

	var res riseSetResult
	cosH0 := (math.Sin(h0) - math.Sin(lat)*math.Sin(dec)) /
		(math.Cos(lat) * math.Cos(dec))
	switch {
	case cosH0 < -1:
		res.state = EventCircumpolar
	case cosH0 > 1:
		res.state = EventNeverRises
	}

	m0 := frac((ra - lon - theta0) / (2 * math.Pi))
	res.transit = o.refine(k, jd0, theta0, m0, h0, true)
	if res.state != EventNormal {
		return res, nil
	}

	hh0 := math.Acos(cosH0)
	res.rise = o.refine(k, jd0, theta0, frac(m0-hh0/(2*math.Pi)), h0, false)
	res.set = o.refine(k, jd0, theta0, frac(m0+hh0/(2*math.Pi)), h0, false)
	return res, nil
}

// refine polishes an event-time estimate m (fraction of the day). For
// a transit the correction cancels the local hour angle; for a horizon
// crossing it divides the altitude error by the altitude rate. The
// best available estimate is returned if the loop fails to settle.
func (o *Observation) refine(k Kind, jd0, theta0, m, h0 float64, transit bool) float64 {
	lat := o.observer.Lat
	lon := o.observer.Lon
	for i := 0; i < riseSetMaxIter; i++ {
		p := o.probeAt(jd0 + m)
		ra, err := p.get(k, FieldRAApparent)
		if err != nil {
			break
		}
		dec := p.cache[int(k)][FieldDecApparent]

		theta := theta0 + 2*math.Pi*siderealRate*m
		h := wrapPi(theta + lon - ra)

		var dm float64
		if transit {
			dm = -h / (2 * math.Pi)
		} else {
			alt := math.Asin(math.Sin(lat)*math.Sin(dec) +
				math.Cos(lat)*math.Cos(dec)*math.Cos(h))
			dm = (alt - h0) / (2 * math.Pi * math.Cos(dec) * math.Cos(lat) * math.Sin(h))
		}
		m += dm
		if math.Abs(dm) < riseSetTol {
			break
		}
	}
	return frac(m)
}

// frac wraps a day fraction into [0, 1).
func frac(m float64) float64 {
	m = math.Mod(m, 1)
	if m < 0 {
		m++
	}
	return m
}
