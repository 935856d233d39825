package instant

import "math"

const arcsecToRad = math.Pi / (180 * 3600)

// Nutation returns the nutation in longitude (Δψ) and obliquity (Δε) in
// radians for an instant, which should be in TD. Abridged series from
// Meeus ch.22; accuracy about 0.5" in Δψ and 0.1" in Δε.
func Nutation(i Instant) (dpsi, deps float64) {
	t := i.TD().JulianCenturies()

	// Longitude of the ascending node of the Moon's mean orbit.
	omega := deg2rad(125.04452 - 1934.136261*t)
	// Mean longitudes of the Sun and the Moon.
	ls := deg2rad(280.4665 + 36000.7698*t)
	lm := deg2rad(218.3165 + 481267.8813*t)

	dpsi = (-17.20*math.Sin(omega) -
		1.32*math.Sin(2*ls) -
		0.23*math.Sin(2*lm) +
		0.21*math.Sin(2*omega)) * arcsecToRad
	deps = (9.20*math.Cos(omega) +
		0.57*math.Cos(2*ls) +
		0.10*math.Cos(2*lm) -
		0.09*math.Cos(2*omega)) * arcsecToRad
	return dpsi, deps
}

// MeanObliquity returns the mean obliquity of the ecliptic in radians
// (Meeus 22.2, the IAU polynomial).
func MeanObliquity(i Instant) float64 {
	t := i.TD().JulianCenturies()
	sec := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return deg2rad(23 + 26.0/60 + sec/3600)
}

// TrueObliquity returns the true obliquity: mean obliquity plus the
// nutation in obliquity.
func TrueObliquity(i Instant) float64 {
	_, deps := Nutation(i)
	return MeanObliquity(i) + deps
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
