package ephem

import "math"

// phaseAngleFromDistances computes a planet's phase angle from the
// heliocentric distance r, the geocentric distance delta, and the
// Sun-Earth distance sunR, all in AU (Meeus ch.41).
func phaseAngleFromDistances(r, delta, sunR float64) float64 {
	cosI := (r*r + delta*delta - sunR*sunR) / (2 * r * delta)
	return math.Acos(clampUnit(cosI))
}

// moonPhaseAngle computes the Moon's phase angle from its geocentric
// elongation psi from the Sun, the Moon's distance delta, and the
// Sun's distance sunR, both in the same unit (Meeus ch.48).
func moonPhaseAngle(psi, delta, sunR float64) float64 {
	return math.Atan2(sunR*math.Sin(psi), delta-sunR*math.Cos(psi))
}

// illuminatedFraction converts a phase angle to the illuminated
// fraction of the apparent disk.
func illuminatedFraction(phase float64) float64 {
	return (1 + math.Cos(phase)) / 2
}

// brightLimbAngle returns the position angle of the midpoint of the
// bright limb, measured eastward from north, given the body's and the
// Sun's apparent equatorial coordinates (Meeus ch.48).
func brightLimbAngle(ra, dec, sunRA, sunDec float64) float64 {
	dRA := sunRA - ra
	num := math.Cos(sunDec) * math.Sin(dRA)
	den := math.Sin(sunDec)*math.Cos(dec) - math.Cos(sunDec)*math.Sin(dec)*math.Cos(dRA)
	return wrap2Pi(math.Atan2(num, den))
}

// elongation returns the angular separation of a body from the Sun,
// given apparent geocentric ecliptic coordinates.
func elongation(lon, lat, sunLon float64) float64 {
	return angularSeparation(lon, lat, sunLon, 0)
}

// semidiameter returns the apparent angular semidiameter in radians.
// Planetary and solar disks scale a reference semidiameter at 1 AU by
// the geocentric distance; the Moon's follows from its distance in
// kilometres.
func semidiameter(k Kind, deltaAU, moonDistKm float64) float64 {
	if k == KindMoon {
		return arcsec * moonSemidiameterKm / moonDistKm
	}
	return arcsec * semidiameter1AU[k] / deltaAU
}

// apparentMagnitude returns the visual magnitude of a body. Planetary
// magnitudes use the phase-dependent fits of Meeus ch.41 (Astronomical
// Almanac 1984 system) with r and delta in AU and the phase angle in
// radians; the Sun and Moon use fixed-base laws.
func apparentMagnitude(k Kind, r, delta, phase float64) float64 {
	i := phase / deg
	logRD := 5 * math.Log10(r*delta)
	switch k {
	case KindSun:
		return -26.74
	case KindMoon:
		// Allen's empirical law about the mean full-moon magnitude.
		return -12.73 + 0.026*math.Abs(i) + 4e-9*i*i*i*i
	case KindMercury:
		return -0.42 + logRD + 0.0380*i - 0.000273*i*i + 0.000002*i*i*i
	case KindVenus:
		return -4.40 + logRD + 0.0009*i + 0.000239*i*i - 0.00000065*i*i*i
	case KindMars:
		return -1.52 + logRD + 0.016*i
	case KindJupiter:
		return -9.40 + logRD + 0.005*i
	case KindSaturn:
		// Ring contribution omitted; disk magnitude only.
		return -8.88 + logRD
	case KindUranus:
		return -7.19 + logRD
	case KindNeptune:
		return -6.87 + logRD
	case KindPluto:
		return -1.00 + logRD
	}
	return math.NaN()
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
