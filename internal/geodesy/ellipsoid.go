// Package geodesy provides point-to-point distance, azimuth, and
// displacement calculations on a reference ellipsoid.
package geodesy

// Ellipsoid is a named reference ellipsoid: semi-major axis in metres
// and inverse flattening. Values are shared constants and never mutated.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis (m)
	InvF float64 // inverse flattening 1/f
}

// F returns the flattening.
func (e Ellipsoid) F() float64 { return 1 / e.InvF }

// B returns the semi-minor axis in metres.
func (e Ellipsoid) B() float64 { return e.A * (1 - e.F()) }

// E2 returns the first eccentricity squared.
func (e Ellipsoid) E2() float64 {
	f := e.F()
	return f * (2 - f)
}

// MeanRadius returns the mean Earth radius (2a+b)/3 used by the
// spherical approximation.
func (e Ellipsoid) MeanRadius() float64 {
	return (2*e.A + e.B()) / 3
}

// Standard reference ellipsoids.
var (
	WGS84             = Ellipsoid{Name: "WGS84", A: 6378137.0, InvF: 298.257223563}
	GRS80             = Ellipsoid{Name: "GRS80", A: 6378137.0, InvF: 298.257222101}
	NAD27             = Ellipsoid{Name: "NAD27", A: 6378206.4, InvF: 294.9786982} // Clarke 1866
	Airy1830          = Ellipsoid{Name: "Airy 1830", A: 6377563.396, InvF: 299.3249646}
	International1924 = Ellipsoid{Name: "International 1924", A: 6378388.0, InvF: 297.0}
)

// Ellipsoids maps lower-case names to the standard ellipsoids for
// CLI-style lookup.
var Ellipsoids = map[string]Ellipsoid{
	"wgs84":             WGS84,
	"grs80":             GRS80,
	"nad27":             NAD27,
	"airy1830":          Airy1830,
	"international1924": International1924,
}
