package geodesy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned for latitudes or longitudes outside
// their valid ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Distance is a length in metres.
type Distance float64

// Meters returns the distance in metres.
func (d Distance) Meters() float64 { return float64(d) }

// Kilometers returns the distance in kilometres.
func (d Distance) Kilometers() float64 { return float64(d) / 1000 }

func (d Distance) String() string {
	if d >= 1000 {
		return fmt.Sprintf("%.3f km", d.Kilometers())
	}
	return fmt.Sprintf("%.1f m", d.Meters())
}

// Azimuth is a bearing in radians, clockwise from true north,
// normalized to [0, 2π).
type Azimuth float64

// NewAzimuth constructs a normalized azimuth from radians.
func NewAzimuth(rad float64) Azimuth {
	return Azimuth(wrap2Pi(rad))
}

// Radians returns the bearing in radians.
func (a Azimuth) Radians() float64 { return float64(a) }

// Degrees returns the bearing in degrees [0, 360).
func (a Azimuth) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Reverse returns the bearing flipped by π.
func (a Azimuth) Reverse() Azimuth { return NewAzimuth(float64(a) + math.Pi) }

func (a Azimuth) String() string {
	return formatDMS(a.Degrees()) + " true"
}

// Vector is a displacement on the ellipsoid surface: how far, and in
// which direction.
type Vector struct {
	Distance Distance
	Azimuth  Azimuth
}

func (v Vector) String() string {
	return fmt.Sprintf("%s @ %s", v.Distance, v.Azimuth)
}

// Position is a point on the ellipsoid surface. Latitude and longitude
// are stored in radians; latitude is positive north, longitude positive
// east.
type Position struct {
	Lat float64
	Lon float64
}

// NewPosition constructs a Position from latitude and longitude in
// radians, rejecting latitudes beyond the poles and longitudes beyond
// a full turn.
func NewPosition(latRad, lonRad float64) (Position, error) {
	if math.IsNaN(latRad) || math.Abs(latRad) > math.Pi/2 {
		return Position{}, fmt.Errorf("%w: latitude %g rad", ErrInvalidCoordinate, latRad)
	}
	if math.IsNaN(lonRad) || math.Abs(lonRad) > 2*math.Pi {
		return Position{}, fmt.Errorf("%w: longitude %g rad", ErrInvalidCoordinate, lonRad)
	}
	return Position{Lat: latRad, Lon: wrapPi(lonRad)}, nil
}

// NewPositionDegrees constructs a Position from degrees.
func NewPositionDegrees(latDeg, lonDeg float64) (Position, error) {
	return NewPosition(latDeg*math.Pi/180, lonDeg*math.Pi/180)
}

// LatDegrees returns the latitude in degrees.
func (p Position) LatDegrees() float64 { return p.Lat * 180 / math.Pi }

// LonDegrees returns the longitude in degrees.
func (p Position) LonDegrees() float64 { return p.Lon * 180 / math.Pi }

func (p Position) String() string {
	ns, lat := "N", p.LatDegrees()
	if lat < 0 {
		ns, lat = "S", -lat
	}
	ew, lon := "E", p.LonDegrees()
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%s%s %s%s", formatDMS(lat), ns, formatDMS(lon), ew)
}

// DistanceTo returns the distance to another position using the default
// calculator.
func (p Position) DistanceTo(other Position) Distance {
	d, _, _, _ := Default().Inverse(p, other)
	return d
}

// VectorTo returns the displacement to another position using the
// default calculator.
func (p Position) VectorTo(other Position) Vector {
	d, az, _, _ := Default().Inverse(p, other)
	return Vector{Distance: d, Azimuth: az}
}

// Offset returns the position reached by following the vector from p,
// using the default calculator.
func (p Position) Offset(v Vector) Position {
	pos, _ := Default().Direct(p, v)
	return pos
}

// formatDMS renders a non-negative angle in degrees as D°M'S.SS".
func formatDMS(deg float64) string {
	d := math.Floor(deg)
	mf := (deg - d) * 60
	m := math.Floor(mf)
	s := (mf - m) * 60
	return fmt.Sprintf("%d°%02d'%05.2f\"", int(d), int(m), s)
}

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
