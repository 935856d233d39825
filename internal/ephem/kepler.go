package ephem

import "math"

const (
	keplerTolerance = 1e-12
	keplerMaxIter   = 50
)

// solveKepler solves Kepler's equation M = E - e·sin(E) for the
// eccentric anomaly by Newton-Raphson. The iteration is bounded; for
// the planetary eccentricities involved it converges in a handful of
// steps, and the last iterate is returned if the cap is ever hit.
func solveKepler(m, e float64) float64 {
	m = wrapPi(m)
	ecc := m
	if e > 0.8 {
		ecc = math.Pi
	}
	for i := 0; i < keplerMaxIter; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < keplerTolerance {
			break
		}
	}
	return ecc
}
