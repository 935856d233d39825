package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/geodesy"
	"github.com/litescript/ls-almanac/internal/instant"
)

// sunParallaxArcsec is the solar equatorial horizontal parallax at 1 AU.
const sunParallaxArcsec = 8.794

// Observation is a lazily-evaluated snapshot of the sky: one instant,
// one optional observer, and a cache of every field computed so far.
// Fields are computed on demand through Body.Get and retained until a
// mutator invalidates the whole cache. An Observation is not safe for
// concurrent use; callers share results, not the Observation itself.
type Observation struct {
	inst      instant.Instant
	observer  *geodesy.Position
	altitudeM float64
	ellipsoid geodesy.Ellipsoid

	generation uint64

	// One slot per body plus one for the observation-level fields.
	cache [numKinds + 1][numFields]float64
	valid [numKinds + 1]uint64
}

// New returns an Observation for the given instant with no observer
// set. Geocentric fields are available immediately; topocentric and
// event fields require SetObserver.
func New(i instant.Instant) *Observation {
	return &Observation{inst: i, ellipsoid: geodesy.WGS84}
}

// Now returns an Observation bound to the current system time.
func Now() *Observation {
	return New(instant.FromTime(time.Now()))
}

// Instant returns the observation's current instant.
func (o *Observation) Instant() instant.Instant { return o.inst }

// Observer returns the observer position, if one is set.
func (o *Observation) Observer() (geodesy.Position, bool) {
	if o.observer == nil {
		return geodesy.Position{}, false
	}
	return *o.observer, true
}

// AltitudeM returns the observer's altitude above the ellipsoid in metres.
func (o *Observation) AltitudeM() float64 { return o.altitudeM }

// Generation returns a counter incremented by every mutation. Callers
// holding derived values can compare generations to detect staleness.
func (o *Observation) Generation() uint64 { return o.generation }

func (o *Observation) invalidate() {
	o.generation++
	for i := range o.valid {
		o.valid[i] = 0
	}
}

// SetInstant moves the observation to a new instant, invalidating all
// cached fields.
func (o *Observation) SetInstant(i instant.Instant) {
	o.inst = i
	o.invalidate()
}

// SetTime moves the observation to a civil time.
func (o *Observation) SetTime(t time.Time) {
	o.SetInstant(instant.FromTime(t))
}

// SetDate moves the observation to a calendar date (UT); the day may
// carry a fraction for the time of day.
func (o *Observation) SetDate(year, month int, day float64) error {
	i, err := instant.FromCalendar(year, month, day)
	if err != nil {
		return err
	}
	o.SetInstant(i)
	return nil
}

// SetObserver places the observer at a geodetic position.
func (o *Observation) SetObserver(pos geodesy.Position) {
	p := pos
	o.observer = &p
	o.invalidate()
}

// ClearObserver removes the observer; topocentric queries fall back to
// geocentric apparent places and event queries fail with ErrNoObserver.
func (o *Observation) ClearObserver() {
	o.observer = nil
	o.invalidate()
}

// SetAltitudeM sets the observer's altitude above the ellipsoid.
func (o *Observation) SetAltitudeM(m float64) {
	o.altitudeM = m
	o.invalidate()
}

// SetEllipsoid selects the reference ellipsoid used for the observer's
// geocentric position.
func (o *Observation) SetEllipsoid(e geodesy.Ellipsoid) {
	o.ellipsoid = e
	o.invalidate()
}

// Sun returns a handle for querying the Sun's fields.
func (o *Observation) Sun() Body { return Body{obs: o, kind: KindSun} }

// Moon returns a handle for querying the Moon's fields.
func (o *Observation) Moon() Body { return Body{obs: o, kind: KindMoon} }

// Planet returns a handle for a planet kind; it panics if the kind is
// not a planet, since that indicates a programming error rather than
// bad input.
func (o *Observation) Planet(k Kind) Body {
	if !k.IsPlanet() {
		panic(fmt.Sprintf("ephem: %v is not a planet", k))
	}
	return Body{obs: o, kind: k}
}

// BodyByName resolves a body name to a handle.
func (o *Observation) BodyByName(name string) (Body, error) {
	k, err := ParseKind(name)
	if err != nil {
		return Body{}, err
	}
	return Body{obs: o, kind: k}, nil
}

// Get resolves an observation-level field (obliquity, nutation,
// sidereal time). Body-level fields must go through a Body handle.
func (o *Observation) Get(f Field) (float64, error) {
	if !f.observationLevel() {
		return 0, fmt.Errorf("%w: %v is a body field", ErrUndefinedField, f)
	}
	return o.get(KindSun, f)
}

// Body is a cheap handle pairing an Observation with a body kind. All
// queries go through Get; results are cached on the Observation.
type Body struct {
	obs  *Observation
	kind Kind
}

// Kind returns the body the handle refers to.
func (b Body) Kind() Kind { return b.kind }

// Get resolves a field for the body, computing and caching any
// prerequisite fields on the way.
func (b Body) Get(f Field) (float64, error) {
	return b.obs.get(b.kind, f)
}

// fieldDefined reports whether a field has a value for the kind.
// Heliocentric coordinates exist only for planets, phase quantities
// are meaningless for the Sun, and twilight belongs to the Sun alone.
func fieldDefined(k Kind, f Field) bool {
	switch f {
	case FieldHelioLon, FieldHelioLat, FieldHelioRadius:
		return k.IsPlanet()
	case FieldPhaseAngle, FieldIlluminatedFraction, FieldBrightLimbAngle, FieldElongation:
		return k != KindSun
	case FieldCivilDawn, FieldCivilDusk, FieldNauticalDawn, FieldNauticalDusk,
		FieldAstronomicalDawn, FieldAstronomicalDusk:
		return k == KindSun
	}
	return true
}

func (o *Observation) get(k Kind, f Field) (float64, error) {
	if f < 0 || int(f) >= numFields {
		return 0, fmt.Errorf("%w: field %d", ErrUndefinedField, int(f))
	}
	// Without an observer the topocentric place degenerates to the
	// geocentric apparent place.
	if o.observer == nil {
		switch f {
		case FieldRATopocentric:
			f = FieldRAApparent
		case FieldDecTopocentric:
			f = FieldDecApparent
		}
	}
	if !fieldDefined(k, f) {
		return 0, fmt.Errorf("%w: %v has no %v", ErrUndefinedField, k, f)
	}

	slot := int(k)
	if f.observationLevel() {
		slot = numKinds
	}
	if o.valid[slot]&(1<<uint(f)) != 0 {
		return o.cache[slot][f], nil
	}

	for _, dep := range fieldDeps[f] {
		if !fieldDefined(k, dep) {
			continue
		}
		if _, err := o.get(k, dep); err != nil {
			return 0, err
		}
	}

	v, err := o.compute(k, f)
	if err != nil {
		return 0, err
	}
	o.store(slot, f, v)
	return v, nil
}

func (o *Observation) store(slot int, f Field, v float64) {
	o.cache[slot][f] = v
	o.valid[slot] |= 1 << uint(f)
}

// compute evaluates a single field, assuming its declared dependencies
// are already cached. Fields produced together by one theory (the
// geocentric triple, the apparent pair, the horizontal pair, the event
// set) are stored as a group so the siblings come for free.
func (o *Observation) compute(k Kind, f Field) (float64, error) {
	slot := int(k)
	if f.observationLevel() {
		slot = numKinds
	}
	td := o.inst.TD()

	switch f {
	case FieldMeanObliquity:
		return instant.MeanObliquity(td), nil
	case FieldTrueObliquity:
		return instant.TrueObliquity(td), nil
	case FieldNutationLon:
		dpsi, deps := instant.Nutation(td)
		o.store(slot, FieldNutationObl, deps)
		return dpsi, nil
	case FieldNutationObl:
		dpsi, deps := instant.Nutation(td)
		o.store(slot, FieldNutationLon, dpsi)
		return deps, nil
	case FieldGMST:
		return o.inst.GMST(), nil
	case FieldGAST:
		return o.inst.GAST(), nil
	case FieldLST:
		if o.observer == nil {
			return 0, fmt.Errorf("%w: local sidereal time", ErrNoObserver)
		}
		gast, err := o.get(k, FieldGAST)
		if err != nil {
			return 0, err
		}
		return wrap2Pi(gast + o.observer.Lon), nil

	case FieldHelioLon, FieldHelioLat, FieldHelioRadius:
		lon, lat, r := planetHeliocentric(k, td.JD())
		o.store(slot, FieldHelioLon, lon)
		o.store(slot, FieldHelioLat, lat)
		o.store(slot, FieldHelioRadius, r)
		return o.cache[slot][f], nil

	case FieldGeoLon, FieldGeoLat, FieldEarthDistanceAU:
		var lon, lat, deltaAU float64
		switch k {
		case KindSun:
			lon, lat, deltaAU = sunGeocentric(td.JD())
		case KindMoon:
			var distKm float64
			lon, lat, distKm = moonGeocentric(td.JD())
			deltaAU = distKm / auKm
		default:
			lon, lat, deltaAU = planetGeocentric(k, td.JD())
		}
		o.store(slot, FieldGeoLon, lon)
		o.store(slot, FieldGeoLat, lat)
		o.store(slot, FieldEarthDistanceAU, deltaAU)
		return o.cache[slot][f], nil

	case FieldEarthDistanceKm:
		au, err := o.get(k, FieldEarthDistanceAU)
		if err != nil {
			return 0, err
		}
		return au * auKm, nil

	case FieldRAAstrometric, FieldDecAstrometric:
		lon := o.cache[slot][FieldGeoLon]
		lat := o.cache[slot][FieldGeoLat]
		eps := o.cache[numKinds][FieldMeanObliquity]
		ra, dec := eclipticToEquatorial(lon, lat, eps)
		o.store(slot, FieldRAAstrometric, ra)
		o.store(slot, FieldDecAstrometric, dec)
		return o.cache[slot][f], nil

	case FieldRAApparent, FieldDecApparent:
		lon := o.cache[slot][FieldGeoLon]
		lat := o.cache[slot][FieldGeoLat]
		dpsi := o.cache[numKinds][FieldNutationLon]
		eps := o.cache[numKinds][FieldTrueObliquity]
		switch k {
		case KindSun:
			lon += aberrationSun(o.cache[slot][FieldEarthDistanceAU])
		case KindMoon:
			// Annual aberration does not apply to a body bound to
			// the Earth; nutation alone converts to apparent place.
		default:
			sunLon, err := o.get(KindSun, FieldGeoLon)
			if err != nil {
				return 0, err
			}
			dLon, dLat := eclipticAberration(lon, lat, sunLon)
			lon += dLon
			lat += dLat
		}
		lon += dpsi
		ra, dec := eclipticToEquatorial(lon, lat, eps)
		o.store(slot, FieldRAApparent, ra)
		o.store(slot, FieldDecApparent, dec)
		return o.cache[slot][f], nil

	case FieldRATopocentric, FieldDecTopocentric:
		ra := o.cache[slot][FieldRAApparent]
		dec := o.cache[slot][FieldDecApparent]
		lst := o.cache[numKinds][FieldLST]
		parallax := o.horizontalParallax(k, o.cache[slot][FieldEarthDistanceAU])
		rhoSin, rhoCos := observerRho(*o.observer, o.altitudeM, o.ellipsoid)
		raT, decT := topocentric(ra, dec, parallax, lst-ra, rhoSin, rhoCos)
		o.store(slot, FieldRATopocentric, raT)
		o.store(slot, FieldDecTopocentric, decT)
		return o.cache[slot][f], nil

	case FieldAzimuth, FieldAltitude:
		if o.observer == nil {
			return 0, fmt.Errorf("%w: horizontal coordinates", ErrNoObserver)
		}
		ra, err := o.get(k, FieldRATopocentric)
		if err != nil {
			return 0, err
		}
		dec := o.cache[slot][FieldDecTopocentric]
		lst := o.cache[numKinds][FieldLST]
		az, alt := horizontal(lst-ra, dec, o.observer.Lat)
		o.store(slot, FieldAzimuth, az)
		o.store(slot, FieldAltitude, alt)
		return o.cache[slot][f], nil

	case FieldHourAngle:
		ra, err := o.get(k, FieldRATopocentric)
		if err != nil {
			return 0, err
		}
		lst, err := o.get(k, FieldLST)
		if err != nil {
			return 0, err
		}
		return wrapPi(lst - ra), nil

	case FieldPhaseAngle:
		delta := o.cache[slot][FieldEarthDistanceAU]
		sunR, err := o.get(KindSun, FieldEarthDistanceAU)
		if err != nil {
			return 0, err
		}
		if k == KindMoon {
			lon, _ := o.get(KindMoon, FieldGeoLon)
			lat, _ := o.get(KindMoon, FieldGeoLat)
			sunLon, _ := o.get(KindSun, FieldGeoLon)
			psi := elongation(lon, lat, sunLon)
			return moonPhaseAngle(psi, delta, sunR), nil
		}
		r, err := o.get(k, FieldHelioRadius)
		if err != nil {
			return 0, err
		}
		return phaseAngleFromDistances(r, delta, sunR), nil

	case FieldIlluminatedFraction:
		return illuminatedFraction(o.cache[slot][FieldPhaseAngle]), nil

	case FieldBrightLimbAngle:
		sunRA, err := o.get(KindSun, FieldRAApparent)
		if err != nil {
			return 0, err
		}
		sunDec := o.cache[int(KindSun)][FieldDecApparent]
		ra := o.cache[slot][FieldRAApparent]
		dec := o.cache[slot][FieldDecApparent]
		return brightLimbAngle(ra, dec, sunRA, sunDec), nil

	case FieldElongation:
		sunRA, err := o.get(KindSun, FieldRAApparent)
		if err != nil {
			return 0, err
		}
		sunDec := o.cache[int(KindSun)][FieldDecApparent]
		ra := o.cache[slot][FieldRAApparent]
		dec := o.cache[slot][FieldDecApparent]
		return angularSeparation(ra, dec, sunRA, sunDec), nil

	case FieldSemidiameter:
		delta := o.cache[slot][FieldEarthDistanceAU]
		return semidiameter(k, delta, delta*auKm), nil

	case FieldMagnitude:
		switch k {
		case KindSun:
			return apparentMagnitude(k, 0, 0, 0), nil
		case KindMoon:
			phase, err := o.get(k, FieldPhaseAngle)
			if err != nil {
				return 0, err
			}
			return apparentMagnitude(k, 0, 0, phase), nil
		default:
			phase, err := o.get(k, FieldPhaseAngle)
			if err != nil {
				return 0, err
			}
			r := o.cache[slot][FieldHelioRadius]
			delta := o.cache[slot][FieldEarthDistanceAU]
			return apparentMagnitude(k, r, delta, phase), nil
		}

	case FieldRiseTime, FieldTransitTime, FieldSetTime:
		ev, err := o.riseTransitSet(k, standardAltitude(o, k))
		if err != nil {
			return 0, err
		}
		return o.eventField(slot, f, ev)

	case FieldCivilDawn, FieldCivilDusk:
		ev, err := o.riseTransitSet(k, -6*deg)
		if err != nil {
			return 0, err
		}
		return o.twilightField(slot, f, FieldCivilDawn, ev)
	case FieldNauticalDawn, FieldNauticalDusk:
		ev, err := o.riseTransitSet(k, -12*deg)
		if err != nil {
			return 0, err
		}
		return o.twilightField(slot, f, FieldNauticalDawn, ev)
	case FieldAstronomicalDawn, FieldAstronomicalDusk:
		ev, err := o.riseTransitSet(k, -18*deg)
		if err != nil {
			return 0, err
		}
		return o.twilightField(slot, f, FieldAstronomicalDawn, ev)
	}

	return 0, fmt.Errorf("%w: %v", ErrUndefinedField, f)
}

// eventField stores the triple from one rise/transit/set solution and
// returns the requested member, turning an absent horizon crossing
// into ErrNoEvent.
func (o *Observation) eventField(slot int, f Field, ev riseSetResult) (float64, error) {
	o.store(slot, FieldTransitTime, ev.transit)
	if ev.state == EventNormal {
		o.store(slot, FieldRiseTime, ev.rise)
		o.store(slot, FieldSetTime, ev.set)
	}
	if f == FieldTransitTime {
		return ev.transit, nil
	}
	if ev.state != EventNormal {
		return 0, fmt.Errorf("%w: %v (%v)", ErrNoEvent, f, ev.state)
	}
	if f == FieldRiseTime {
		return ev.rise, nil
	}
	return ev.set, nil
}

// twilightField maps a twilight solution onto its dawn/dusk pair.
func (o *Observation) twilightField(slot int, f, dawn Field, ev riseSetResult) (float64, error) {
	if ev.state != EventNormal {
		return 0, fmt.Errorf("%w: %v (%v)", ErrNoEvent, f, ev.state)
	}
	o.store(slot, dawn, ev.rise)
	o.store(slot, dawn+1, ev.set)
	if f == dawn {
		return ev.rise, nil
	}
	return ev.set, nil
}

// horizontalParallax returns the equatorial horizontal parallax of a
// body at geocentric distance deltaAU.
func (o *Observation) horizontalParallax(k Kind, deltaAU float64) float64 {
	if k == KindMoon {
		return moonHorizontalParallax(deltaAU * auKm)
	}
	return math.Asin(math.Sin(sunParallaxArcsec*arcsec) / deltaAU)
}
