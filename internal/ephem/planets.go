package ephem

import "math"

// Mean Keplerian elements and centennial rates for the major planets
// (Standish, JPL approximate ephemerides; J2000 ecliptic, valid
// 1800-2050). Angles in degrees, semi-major axes in AU, rates per
// Julian century.
type planetElements struct {
	a, aDot    float64 // semi-major axis
	e, eDot    float64 // eccentricity
	i, iDot    float64 // inclination
	l, lDot    float64 // mean longitude
	peri, pDot float64 // longitude of perihelion
	node, nDot float64 // longitude of ascending node
}

var planetTable = map[Kind]planetElements{
	KindMercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	KindVenus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	KindMars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	KindJupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	KindSaturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	KindUranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	KindNeptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	KindPluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// earthElements is the Earth-Moon barycentre from the same table, used
// so that planet geocentric positions subtract a consistent Earth.
var earthElements = planetElements{1.00000261, 0.00000562, 0.01671123, -0.00004392,
	-0.00001531, -0.01294668, 100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0}

// heliocentricXYZ evaluates the mean elements at T centuries from
// J2000 (TD) and returns the heliocentric position in the J2000
// ecliptic frame, in AU.
func heliocentricXYZ(el planetElements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := (el.i + el.iDot*t) * deg
	l := (el.l + el.lDot*t) * deg
	peri := (el.peri + el.pDot*t) * deg
	node := (el.node + el.nDot*t) * deg

	m := l - peri
	w := peri - node
	ecc := solveKepler(m, e)

	// Position in the orbital plane.
	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	sinW, cosW := math.Sincos(w)
	sinN, cosN := math.Sincos(node)
	sinI, cosI := math.Sincos(incl)

	x = (cosW*cosN-sinW*sinN*cosI)*xp + (-sinW*cosN-cosW*sinN*cosI)*yp
	y = (cosW*sinN+sinW*cosN*cosI)*xp + (-sinW*sinN+cosW*cosN*cosI)*yp
	z = sinW*sinI*xp + cosW*sinI*yp
	return x, y, z
}

// planetHeliocentric returns a planet's heliocentric ecliptic
// longitude, latitude (radians, equinox of date) and radius (AU).
func planetHeliocentric(kind Kind, jdTD float64) (lon, lat, r float64) {
	t := (jdTD - 2451545.0) / 36525.0
	x, y, z := heliocentricXYZ(planetTable[kind], t)
	r = math.Sqrt(x*x + y*y + z*z)
	lon = wrap2Pi(math.Atan2(y, x) + precessionFromJ2000(t))
	lat = math.Asin(z / r)
	return lon, lat, r
}

// planetGeocentric returns a planet's geometric geocentric ecliptic
// longitude and latitude (radians, equinox of date) and its distance
// from the Earth in AU, with one light-time re-evaluation (the
// planetary part of aberration).
func planetGeocentric(kind Kind, jdTD float64) (lon, lat, delta float64) {
	t := (jdTD - 2451545.0) / 36525.0
	ex, ey, ez := heliocentricXYZ(earthElements, t)

	px, py, pz := heliocentricXYZ(planetTable[kind], t)
	gx, gy, gz := px-ex, py-ey, pz-ez
	delta = math.Sqrt(gx*gx + gy*gy + gz*gz)

	// Light travels 1 AU in 0.0057755183 days; re-evaluate the planet
	// at the instant the observed light left it.
	tau := 0.0057755183 * delta
	tRet := (jdTD - tau - 2451545.0) / 36525.0
	px, py, pz = heliocentricXYZ(planetTable[kind], tRet)
	gx, gy, gz = px-ex, py-ey, pz-ez
	delta = math.Sqrt(gx*gx + gy*gy + gz*gz)

	lon = wrap2Pi(math.Atan2(gy, gx) + precessionFromJ2000(t))
	lat = math.Asin(gz / delta)
	return lon, lat, delta
}

// precessionFromJ2000 returns the accumulated general precession in
// ecliptic longitude since J2000, carrying the J2000-frame elements
// to the equinox of date.
func precessionFromJ2000(t float64) float64 {
	return (5029.0966*t + 1.11113*t*t) * arcsec
}
