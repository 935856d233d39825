package geodesy

import "math"

// andoyerInverse solves the inverse problem by the Andoyer-Lambert
// closed-form first-order flattening correction (the method Meeus gives
// in ch.11). No iteration, so no convergence risk; accuracy is on the
// order of 0.1%. Azimuths come from the great-circle bearing, which is
// within the same accuracy class.
func (c Calculator) andoyerInverse(p1, p2 Position) (Distance, Azimuth, Azimuth) {
	a := c.Ellipsoid.A
	f := c.Ellipsoid.F()

	bigF := (p1.Lat + p2.Lat) / 2
	bigG := (p1.Lat - p2.Lat) / 2
	lam := wrapPi(p1.Lon-p2.Lon) / 2

	sinG2 := math.Sin(bigG) * math.Sin(bigG)
	cosG2 := math.Cos(bigG) * math.Cos(bigG)
	sinF2 := math.Sin(bigF) * math.Sin(bigF)
	cosF2 := math.Cos(bigF) * math.Cos(bigF)
	sinL2 := math.Sin(lam) * math.Sin(lam)
	cosL2 := math.Cos(lam) * math.Cos(lam)

	s := sinG2*cosL2 + cosF2*sinL2
	cc := cosG2*cosL2 + sinF2*sinL2

	if s == 0 {
		// Coincident points.
		return 0, sphericalBearing(p1, p2), sphericalBearing(p2, p1)
	}
	if cc == 0 {
		// Antipodal: the spherical half-circumference is as good an
		// answer as the formula can give.
		return Distance(math.Pi * a), sphericalBearing(p1, p2), sphericalBearing(p2, p1)
	}

	omega := math.Atan(math.Sqrt(s / cc))
	r := math.Sqrt(s*cc) / omega
	d := 2 * omega * a
	h1 := (3*r - 1) / (2 * cc)
	h2 := (3*r + 1) / (2 * s)

	dist := d * (1 + f*h1*sinF2*cosG2 - f*h2*cosF2*sinG2)
	return Distance(dist), sphericalBearing(p1, p2), sphericalBearing(p2, p1)
}
