// Package ephem computes the apparent sky positions, appearance, and
// rise/set timing of the Sun, Moon, and planets for an observer on
// Earth, through a demand-driven cached field graph.
package ephem

import (
	"fmt"
	"strings"
)

// Kind identifies a celestial body. The pipeline is a set of free
// functions dispatching on the kind; bodies carry no state of their
// own.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindMercury
	KindVenus
	KindMars
	KindJupiter
	KindSaturn
	KindUranus
	KindNeptune
	KindPluto

	numKinds = int(KindPluto) + 1
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "Sun"
	case KindMoon:
		return "Moon"
	case KindMercury:
		return "Mercury"
	case KindVenus:
		return "Venus"
	case KindMars:
		return "Mars"
	case KindJupiter:
		return "Jupiter"
	case KindSaturn:
		return "Saturn"
	case KindUranus:
		return "Uranus"
	case KindNeptune:
		return "Neptune"
	case KindPluto:
		return "Pluto"
	default:
		return "unknown"
	}
}

// IsPlanet reports whether the kind is one of the planets (including
// Pluto, which the engine treats as one).
func (k Kind) IsPlanet() bool {
	return k >= KindMercury && k <= KindPluto
}

// ParseKind resolves a body name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun":
		return KindSun, nil
	case "moon":
		return KindMoon, nil
	case "mercury":
		return KindMercury, nil
	case "venus":
		return KindVenus, nil
	case "mars":
		return KindMars, nil
	case "jupiter":
		return KindJupiter, nil
	case "saturn":
		return KindSaturn, nil
	case "uranus":
		return KindUranus, nil
	case "neptune":
		return KindNeptune, nil
	case "pluto":
		return KindPluto, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
}

// Kinds lists all bodies in display order.
var Kinds = []Kind{
	KindSun, KindMoon, KindMercury, KindVenus, KindMars,
	KindJupiter, KindSaturn, KindUranus, KindNeptune, KindPluto,
}

// semidiameter1AU is the apparent semidiameter in arcseconds at a
// distance of 1 AU (Astronomical Almanac values).
var semidiameter1AU = map[Kind]float64{
	KindSun:     959.63,
	KindMercury: 3.36,
	KindVenus:   8.41,
	KindMars:    4.68,
	KindJupiter: 98.44, // equatorial
	KindSaturn:  82.73,
	KindUranus:  35.02,
	KindNeptune: 33.50,
	KindPluto:   2.07,
}

// moonSemidiameterKm is the constant for the Moon's semidiameter:
// s" = 358473400 / Δ(km).
const moonSemidiameterKm = 358473400.0
