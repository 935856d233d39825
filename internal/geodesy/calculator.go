package geodesy

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonconvergence is returned in strict mode when an iterative
// algorithm exceeds its iteration budget.
var ErrNonconvergence = errors.New("geodesic iteration did not converge")

// Algorithm selects the geodesic solution method.
type Algorithm int

const (
	// Haversine is the spherical approximation on the mean Earth
	// radius. Closed form; accurate to roughly 0.3-0.5%.
	Haversine Algorithm = iota
	// Vincenty is the iterative ellipsoidal solution, sub-millimetre
	// on well-conditioned pairs.
	Vincenty
	// Andoyer is the closed-form ellipsoidal approximation, roughly
	// 0.1% without any convergence risk.
	Andoyer
)

func (a Algorithm) String() string {
	switch a {
	case Haversine:
		return "haversine"
	case Vincenty:
		return "vincenty"
	case Andoyer:
		return "andoyer"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "haversine":
		return Haversine, nil
	case "vincenty":
		return Vincenty, nil
	case "andoyer":
		return Andoyer, nil
	default:
		return 0, fmt.Errorf("unknown geodesic algorithm %q", s)
	}
}

// Calculator bundles the ellipsoid and algorithm used for geodesic
// calculations. It is an explicit value passed into calls rather than
// process-wide state, so unrelated callers and tests cannot disturb
// each other.
type Calculator struct {
	Ellipsoid Ellipsoid
	Algorithm Algorithm

	// Strict makes non-convergence an error instead of falling back
	// to the best estimate obtained so far.
	Strict bool
}

// Default returns the default calculator: Vincenty on WGS84.
func Default() Calculator {
	return Calculator{Ellipsoid: WGS84, Algorithm: Vincenty}
}

// Inverse solves the geodesic inverse problem: the distance between two
// positions, the forward azimuth at p1, and the back azimuth (the
// bearing from p2 to p1). For non-antipodal pairs the forward and back
// azimuths of a straight geodesic differ by π.
func (c Calculator) Inverse(p1, p2 Position) (Distance, Azimuth, Azimuth, error) {
	switch c.Algorithm {
	case Haversine:
		d, fwd, back := c.haversineInverse(p1, p2)
		return d, fwd, back, nil
	case Vincenty:
		return c.vincentyInverse(p1, p2)
	case Andoyer:
		d, fwd, back := c.andoyerInverse(p1, p2)
		return d, fwd, back, nil
	default:
		panic("geodesy: unknown algorithm")
	}
}

// Direct solves the geodesic direct problem: the position reached by
// travelling along v from p.
func (c Calculator) Direct(p Position, v Vector) (Position, error) {
	switch c.Algorithm {
	case Haversine, Andoyer:
		// Andoyer has no closed-form direct solution; the spherical
		// one is within its accuracy class.
		return c.sphericalDirect(p, v), nil
	case Vincenty:
		return c.vincentyDirect(p, v)
	default:
		panic("geodesy: unknown algorithm")
	}
}

// LatDistance returns the meridian arc length from the position's
// latitude to the target latitude, independent of longitude.
func (c Calculator) LatDistance(p Position, targetLat float64) Distance {
	return Distance(math.Abs(c.meridianArc(targetLat) - c.meridianArc(p.Lat)))
}

// meridianArc returns the meridian arc length from the equator to
// latitude φ, by the standard series expansion in the eccentricity.
func (c Calculator) meridianArc(phi float64) float64 {
	a := c.Ellipsoid.A
	e2 := c.Ellipsoid.E2()
	e4 := e2 * e2
	e6 := e4 * e2

	return a * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
