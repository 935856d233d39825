package geodesy

import "math"

// haversineInverse solves the inverse problem on a sphere of the
// ellipsoid's mean radius. The haversine form is numerically stable for
// small separations; for exactly antipodal points the bearing is
// indeterminate and the atan2 formulation settles on due north.
func (c Calculator) haversineInverse(p1, p2 Position) (Distance, Azimuth, Azimuth) {
	dLat := p2.Lat - p1.Lat
	dLon := p2.Lon - p1.Lon

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p1.Lat)*math.Cos(p2.Lat)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if s > 1 {
		s = 1
	}
	d := 2 * math.Asin(math.Sqrt(s)) * c.Ellipsoid.MeanRadius()

	return Distance(d), sphericalBearing(p1, p2), sphericalBearing(p2, p1)
}

// sphericalBearing returns the initial great-circle bearing from p1
// toward p2.
func sphericalBearing(p1, p2 Position) Azimuth {
	dLon := p2.Lon - p1.Lon
	y := math.Sin(dLon) * math.Cos(p2.Lat)
	x := math.Cos(p1.Lat)*math.Sin(p2.Lat) - math.Sin(p1.Lat)*math.Cos(p2.Lat)*math.Cos(dLon)
	return NewAzimuth(math.Atan2(y, x))
}

// sphericalDirect solves the direct problem on the mean-radius sphere.
func (c Calculator) sphericalDirect(p Position, v Vector) Position {
	delta := v.Distance.Meters() / c.Ellipsoid.MeanRadius()
	theta := v.Azimuth.Radians()

	sinLat := math.Sin(p.Lat)*math.Cos(delta) + math.Cos(p.Lat)*math.Sin(delta)*math.Cos(theta)
	lat := math.Asin(clamp1(sinLat))
	lon := p.Lon + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(p.Lat),
		math.Cos(delta)-math.Sin(p.Lat)*sinLat,
	)

	return Position{Lat: lat, Lon: wrapPi(lon)}
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
