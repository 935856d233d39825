package ephem

import "math"

const (
	deg           = math.Pi / 180
	arcsec        = deg / 3600
	auKm          = 149597870.7 // kilometres per astronomical unit
	earthRadiusKm = 6378.137
)

// wrap2Pi wraps an angle into [0, 2π).
func wrap2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// wrapPi wraps an angle into [-π, π).
func wrapPi(a float64) float64 {
	a = wrap2Pi(a)
	if a >= math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// eclipticToEquatorial rotates ecliptic longitude/latitude into right
// ascension and declination for the given obliquity.
func eclipticToEquatorial(lon, lat, eps float64) (ra, dec float64) {
	sinEps, cosEps := math.Sincos(eps)
	sinLon, cosLon := math.Sincos(lon)
	ra = wrap2Pi(math.Atan2(sinLon*cosEps-math.Tan(lat)*sinEps, cosLon))
	dec = math.Asin(math.Sin(lat)*cosEps + math.Cos(lat)*sinEps*sinLon)
	return ra, dec
}

// angularSeparation returns the angle between two points on the
// celestial sphere, by the haversine form (stable for small angles).
func angularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	dRA := ra2 - ra1
	dDec := dec2 - dec1
	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}
