package ephem

// Field is a derivable quantity of a body (or of the observation
// itself). Each field declares its dependency fields in fieldDeps; the
// declarations form a DAG, checked by a topological-sort test.
type Field int

const (
	// Heliocentric ecliptic coordinates (planets only).
	FieldHelioLon    Field = iota // radians, ecliptic of date
	FieldHelioLat                 // radians
	FieldHelioRadius              // AU

	// Geometric geocentric ecliptic coordinates.
	FieldGeoLon // radians, ecliptic of date
	FieldGeoLat // radians

	// Distance from Earth's centre.
	FieldEarthDistanceAU
	FieldEarthDistanceKm

	// Equatorial coordinates.
	FieldRAAstrometric  // radians
	FieldDecAstrometric // radians
	FieldRAApparent
	FieldDecApparent
	FieldRATopocentric
	FieldDecTopocentric

	// Horizontal coordinates for the observer.
	FieldAzimuth   // radians from true north [0, 2π)
	FieldAltitude  // radians [-π/2, π/2]
	FieldHourAngle // radians (-π, π]

	// Appearance.
	FieldPhaseAngle          // radians, Sun-body-Earth
	FieldIlluminatedFraction // [0, 1]
	FieldBrightLimbAngle     // radians, position angle from celestial north
	FieldSemidiameter        // radians
	FieldMagnitude           // visual magnitude
	FieldElongation          // radians from the Sun

	// Events, as fractions of the observation's civil UT day.
	FieldRiseTime
	FieldTransitTime
	FieldSetTime
	FieldCivilDawn
	FieldCivilDusk
	FieldNauticalDawn
	FieldNauticalDusk
	FieldAstronomicalDawn
	FieldAstronomicalDusk

	// Observation-level fields, independent of the body queried.
	FieldMeanObliquity // radians
	FieldTrueObliquity // radians
	FieldNutationLon   // radians
	FieldNutationObl   // radians
	FieldGMST          // radians
	FieldGAST          // radians
	FieldLST           // radians

	numFields = int(FieldLST) + 1
)

var fieldNames = [numFields]string{
	FieldHelioLon:            "heliocentric longitude",
	FieldHelioLat:            "heliocentric latitude",
	FieldHelioRadius:         "heliocentric radius",
	FieldGeoLon:              "geocentric ecliptic longitude",
	FieldGeoLat:              "geocentric ecliptic latitude",
	FieldEarthDistanceAU:     "earth distance (AU)",
	FieldEarthDistanceKm:     "earth distance (km)",
	FieldRAAstrometric:       "astrometric right ascension",
	FieldDecAstrometric:      "astrometric declination",
	FieldRAApparent:          "apparent right ascension",
	FieldDecApparent:         "apparent declination",
	FieldRATopocentric:       "topocentric right ascension",
	FieldDecTopocentric:      "topocentric declination",
	FieldAzimuth:             "azimuth",
	FieldAltitude:            "altitude",
	FieldHourAngle:           "hour angle",
	FieldPhaseAngle:          "phase angle",
	FieldIlluminatedFraction: "illuminated fraction",
	FieldBrightLimbAngle:     "bright limb angle",
	FieldSemidiameter:        "semidiameter",
	FieldMagnitude:           "magnitude",
	FieldElongation:          "elongation",
	FieldRiseTime:            "rise time",
	FieldTransitTime:         "transit time",
	FieldSetTime:             "set time",
	FieldCivilDawn:           "civil dawn",
	FieldCivilDusk:           "civil dusk",
	FieldNauticalDawn:        "nautical dawn",
	FieldNauticalDusk:        "nautical dusk",
	FieldAstronomicalDawn:    "astronomical dawn",
	FieldAstronomicalDusk:    "astronomical dusk",
	FieldMeanObliquity:       "mean obliquity",
	FieldTrueObliquity:       "true obliquity",
	FieldNutationLon:         "nutation in longitude",
	FieldNutationObl:         "nutation in obliquity",
	FieldGMST:                "GMST",
	FieldGAST:                "GAST",
	FieldLST:                 "local sidereal time",
}

func (f Field) String() string {
	if f < 0 || int(f) >= numFields {
		return "invalid field"
	}
	return fieldNames[f]
}

// observationLevel reports whether a field belongs to the observation
// rather than to a particular body.
func (f Field) observationLevel() bool {
	return f >= FieldMeanObliquity
}

// fieldDeps declares, for every field, the fields resolved before it is
// computed. Geocentric position fields are produced together by the
// per-kind theory and so depend only on observation-level inputs.
var fieldDeps = map[Field][]Field{
	FieldHelioLon:    nil,
	FieldHelioLat:    nil,
	FieldHelioRadius: nil,

	FieldGeoLon:          nil,
	FieldGeoLat:          nil,
	FieldEarthDistanceAU: nil,
	FieldEarthDistanceKm: {FieldEarthDistanceAU},

	FieldRAAstrometric:  {FieldGeoLon, FieldGeoLat, FieldMeanObliquity},
	FieldDecAstrometric: {FieldGeoLon, FieldGeoLat, FieldMeanObliquity},
	FieldRAApparent:     {FieldGeoLon, FieldGeoLat, FieldEarthDistanceAU, FieldNutationLon, FieldTrueObliquity},
	FieldDecApparent:    {FieldGeoLon, FieldGeoLat, FieldEarthDistanceAU, FieldNutationLon, FieldTrueObliquity},
	FieldRATopocentric:  {FieldRAApparent, FieldDecApparent, FieldEarthDistanceAU, FieldLST},
	FieldDecTopocentric: {FieldRAApparent, FieldDecApparent, FieldEarthDistanceAU, FieldLST},

	FieldAzimuth:   {FieldRATopocentric, FieldDecTopocentric, FieldLST},
	FieldAltitude:  {FieldRATopocentric, FieldDecTopocentric, FieldLST},
	FieldHourAngle: {FieldRATopocentric, FieldLST},

	FieldPhaseAngle:          {FieldEarthDistanceAU},
	FieldIlluminatedFraction: {FieldPhaseAngle},
	FieldBrightLimbAngle:     {FieldRAApparent, FieldDecApparent},
	FieldSemidiameter:        {FieldEarthDistanceAU},
	FieldMagnitude:           {FieldPhaseAngle, FieldEarthDistanceAU},
	FieldElongation:          {FieldRAApparent, FieldDecApparent},

	FieldRiseTime:         nil,
	FieldTransitTime:      nil,
	FieldSetTime:          nil,
	FieldCivilDawn:        nil,
	FieldCivilDusk:        nil,
	FieldNauticalDawn:     nil,
	FieldNauticalDusk:     nil,
	FieldAstronomicalDawn: nil,
	FieldAstronomicalDusk: nil,

	FieldMeanObliquity: nil,
	FieldTrueObliquity: {FieldMeanObliquity, FieldNutationObl},
	FieldNutationLon:   nil,
	FieldNutationObl:   nil,
	FieldGMST:          nil,
	FieldGAST:          {FieldGMST, FieldNutationLon, FieldTrueObliquity},
	FieldLST:           {FieldGAST},
}
