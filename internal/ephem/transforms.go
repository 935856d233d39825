package ephem

import (
	"math"

	"github.com/litescript/ls-almanac/internal/geodesy"
)

// observerRho returns the quantities rho*sin(phi') and rho*cos(phi')
// for an observer at geodetic position pos and altitude metres above
// the ellipsoid, with rho in units of the equatorial radius. These
// encode the observer's geocentric position on the oblate Earth
// (Meeus ch.11).
func observerRho(pos geodesy.Position, altM float64, ell geodesy.Ellipsoid) (rhoSin, rhoCos float64) {
	ba := ell.B() / ell.A
	u := math.Atan(ba * math.Tan(pos.Lat))
	h := altM / ell.A
	rhoSin = ba*math.Sin(u) + h*math.Sin(pos.Lat)
	rhoCos = math.Cos(u) + h*math.Cos(pos.Lat)
	return rhoSin, rhoCos
}

// topocentric converts geocentric apparent right ascension and
// declination to the topocentric values seen by an observer, given
// the body's equatorial horizontal parallax and the observer's local
// hour angle of the body (Meeus ch.40).
func topocentric(ra, dec, parallax, hourAngle, rhoSin, rhoCos float64) (raTopo, decTopo float64) {
	sinPi := math.Sin(parallax)
	cosH := math.Cos(hourAngle)
	sinH := math.Sin(hourAngle)
	cosDec := math.Cos(dec)
	sinDec := math.Sin(dec)

	dAlpha := math.Atan2(-rhoCos*sinPi*sinH, cosDec-rhoCos*sinPi*cosH)
	raTopo = wrap2Pi(ra + dAlpha)
	decTopo = math.Atan2((sinDec-rhoSin*sinPi)*math.Cos(dAlpha), cosDec-rhoCos*sinPi*cosH)
	return raTopo, decTopo
}

// horizontal converts a local hour angle and declination to azimuth
// (radians, measured from north through east) and altitude above the
// horizon, for an observer at geodetic latitude lat.
func horizontal(hourAngle, dec, lat float64) (az, alt float64) {
	sinLat, cosLat := math.Sincos(lat)
	sinDec, cosDec := math.Sincos(dec)
	sinH, cosH := math.Sincos(hourAngle)

	alt = math.Asin(sinLat*sinDec + cosLat*cosDec*cosH)
	// Meeus measures azimuth from the south; shift by pi for the
	// north-origin convention used throughout this package.
	az = wrap2Pi(math.Atan2(sinH, cosH*sinLat-math.Tan(dec)*cosLat) + math.Pi)
	return az, alt
}

// ApparentAltitude lifts a true (airless) altitude by atmospheric
// refraction under standard conditions.
func ApparentAltitude(alt float64) float64 {
	return alt + refractionBennett(alt)
}

// refractionBennett returns atmospheric refraction in radians for a
// true (airless) altitude, using Bennett's formula for standard
// conditions. Only meaningful near and above the horizon.
func refractionBennett(alt float64) float64 {
	altDeg := alt / deg
	if altDeg < -2 {
		altDeg = -2
	}
	r := 1.02 / math.Tan((altDeg+10.3/(altDeg+5.11))*deg)
	return r / 60 * deg
}
