package ephem

import "math"

// sunGeocentric returns the Sun's geometric geocentric ecliptic
// longitude and latitude (radians, equinox of date, FK5 frame) and the
// Earth-Sun distance in AU for a TD Julian Date.
//
// The Sun is the degenerate case of the body pipeline: the Earth's
// heliocentric position from the VSOP87 series, negated, with the
// small VSOP-to-FK5 frame correction applied (Meeus 25.9).
func sunGeocentric(jdTD float64) (lon, lat, r float64) {
	l, b, r := earthHeliocentric(jdTD)
	lon = wrap2Pi(l + math.Pi)
	lat = -b

	t := (jdTD - 2451545.0) / 36525.0
	lp := lon - (1.397*t+0.00031*t*t)*deg
	sinLp, cosLp := math.Sincos(lp)
	lon -= 0.09033 * arcsec
	lat += 0.03916 * arcsec * (cosLp - sinLp)
	return wrap2Pi(lon), lat, r
}

// aberrationSun is the annual aberration correction to the Sun's
// longitude: -20.4898"/R.
func aberrationSun(r float64) float64 {
	return -20.4898 * arcsec / r
}

// eclipticAberration returns the annual aberration corrections to a
// body's geocentric ecliptic longitude and latitude (Meeus ch.23),
// given the Sun's true longitude.
func eclipticAberration(lon, lat, sunLon float64) (dLon, dLat float64) {
	const kappa = 20.49552 * arcsec
	d := sunLon - lon
	dLon = -kappa * math.Cos(d) / math.Cos(lat)
	// The sign convention follows from differentiating the aberration
	// displacement; vanishes in the ecliptic plane.
	dLat = -kappa * math.Sin(lat) * math.Sin(d)
	return dLon, dLat
}
