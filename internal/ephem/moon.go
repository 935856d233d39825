package ephem

import "math"

// Lunar theory: the principal periodic terms of the ELP-derived series
// in Meeus ch.47. Each term is an integer-multiple combination of the
// four fundamental arguments D, M, M', F; lonAmp and distAmp feed the
// longitude (1e-6 degree) and distance (1e-3 km) sums, latAmp the
// latitude sum (1e-6 degree). Terms involving the solar anomaly M are
// scaled by the eccentricity factor E. Truncated to amplitudes of
// roughly 300 units and above, keeping the position good to a few
// arcseconds and the distance to a few kilometres.

type moonTerm struct {
	d, m, mp, f int
	lonAmp      float64
	distAmp     float64
}

var moonLonDist = []moonTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
	{0, 1, 2, 0, -2120, 5751},
	{0, 2, 0, 0, -2069, 0},
	{2, -2, -1, 0, 2048, -4950},
	{2, 0, 1, -2, -1773, 4130},
	{2, 0, 0, 2, -1595, 0},
	{4, -1, -1, 0, 1215, -3958},
	{0, 0, 2, 2, -1110, 0},
	{3, 0, -1, 0, -892, 3258},
	{2, 1, 1, 0, -810, 2616},
	{4, -1, -2, 0, 759, -1897},
	{0, 2, -1, 0, -713, -2117},
	{2, 2, -1, 0, -700, 2354},
	{2, 1, -2, 0, 691, 0},
	{2, -1, 0, -2, 596, 0},
	{4, 0, 1, 0, 549, -1423},
	{0, 0, 4, 0, 537, -1117},
	{4, -1, 0, 0, 520, -1571},
	{1, 0, -2, 0, -487, -1739},
	{2, 1, 0, -2, -399, 0},
	{0, 0, 2, -2, -381, -4421},
	{1, 1, 1, 0, 351, 0},
	{3, 0, -2, 0, -340, 0},
	{4, 0, -3, 0, 330, 0},
	{2, -1, 2, 0, 327, 0},
	{0, 2, 1, 0, -323, 1165},
	{1, 1, -1, 0, 299, 0},
	{2, 0, 3, 0, 294, 0},
	{2, 0, -1, -2, 0, 8752},
}

type moonLatTerm struct {
	d, m, mp, f int
	amp         float64
}

var moonLat = []moonLatTerm{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
	{0, 0, 2, 1, 17198},
	{2, 0, 1, -1, 9266},
	{0, 0, 2, -1, 8822},
	{2, -1, 0, -1, 8216},
	{2, 0, -2, -1, 4324},
	{2, 0, 1, 1, 4200},
	{2, 1, 0, -1, -3359},
	{2, -1, -1, 1, 2463},
	{2, -1, 0, 1, 2211},
	{2, -1, -1, -1, 2065},
	{0, 1, -1, -1, -1870},
	{4, 0, -1, -1, 1828},
	{0, 1, 0, 1, -1794},
	{0, 0, 0, 3, -1749},
	{0, 1, -1, 1, -1565},
	{1, 0, 0, 1, -1491},
	{0, 1, 1, 1, -1475},
	{0, 1, 1, -1, -1410},
	{0, 1, 0, -1, -1344},
	{1, 0, 0, -1, -1335},
	{0, 0, 3, 1, 1107},
	{4, 0, 0, -1, 1021},
	{4, 0, -1, 1, 833},
	{0, 0, 1, -3, 777},
	{4, 0, -2, 1, 671},
	{2, 0, 0, -3, 607},
	{2, 0, 2, -1, 596},
	{2, -1, 1, -1, 491},
	{2, 0, -2, 1, -451},
	{0, 0, 3, -1, 439},
	{2, 0, 2, 1, 422},
	{2, 0, -3, -1, 421},
	{2, 1, -1, 1, -366},
	{2, 1, 0, 1, -351},
	{4, 0, 0, 1, 331},
	{2, -1, 1, 1, 315},
}

// moonGeocentric returns the Moon's geocentric ecliptic longitude and
// latitude (radians, equinox of date, including nutation-free mean
// position) and its distance from the Earth's centre in kilometres,
// for a TD Julian Date.
func moonGeocentric(jdTD float64) (lon, lat, distKm float64) {
	t := (jdTD - 2451545.0) / 36525.0

	// Fundamental arguments (degrees).
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841 - t*t*t*t/65194000
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868 - t*t*t*t/113065000
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t + t*t*t/24490000
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699 - t*t*t*t/14712000
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t - t*t*t/3526000 + t*t*t*t/863310000

	// Long-period planetary perturbation arguments.
	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	a3 := 313.45 + 481266.484*t

	// Decreasing eccentricity of the Earth's orbit.
	e := 1 - 0.002516*t - 0.0000074*t*t
	e2 := e * e

	dr, mr, mpr, fr := d*deg, m*deg, mp*deg, f*deg

	var sumL, sumR, sumB float64
	for _, term := range moonLonDist {
		arg := float64(term.d)*dr + float64(term.m)*mr + float64(term.mp)*mpr + float64(term.f)*fr
		scale := 1.0
		switch term.m {
		case 1, -1:
			scale = e
		case 2, -2:
			scale = e2
		}
		sumL += term.lonAmp * scale * math.Sin(arg)
		sumR += term.distAmp * scale * math.Cos(arg)
	}
	for _, term := range moonLat {
		arg := float64(term.d)*dr + float64(term.m)*mr + float64(term.mp)*mpr + float64(term.f)*fr
		scale := 1.0
		switch term.m {
		case 1, -1:
			scale = e
		case 2, -2:
			scale = e2
		}
		sumB += term.amp * scale * math.Sin(arg)
	}

	// Additive terms: Venus (A1), Jupiter (A2), and flattening effects.
	sumL += 3958*math.Sin(a1*deg) + 1962*math.Sin((lp-f)*deg) + 318*math.Sin(a2*deg)
	sumB += -2235*math.Sin(lp*deg) + 382*math.Sin(a3*deg) +
		175*math.Sin((a1-f)*deg) + 175*math.Sin((a1+f)*deg) +
		127*math.Sin((lp-mp)*deg) - 115*math.Sin((lp+mp)*deg)

	lon = wrap2Pi((lp + sumL/1e6) * deg)
	lat = (sumB / 1e6) * deg
	distKm = 385000.56 + sumR/1e3
	return lon, lat, distKm
}

// moonHorizontalParallax returns the Moon's equatorial horizontal
// parallax in radians for a geocentric distance in kilometres.
func moonHorizontalParallax(distKm float64) float64 {
	return math.Asin(earthRadiusKm / distKm)
}
