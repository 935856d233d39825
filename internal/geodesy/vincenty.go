package geodesy

import "math"

const (
	// vincentyEpsilon is the convergence threshold on the change in λ,
	// well below the reference tolerance of 1e-5 degrees.
	vincentyEpsilon = 1e-12
	// vincentyMaxIter bounds the successive-substitution loop; the
	// iteration diverges for nearly antipodal pairs.
	vincentyMaxIter = 200
	// antipodalSinEpsilon classifies sinσ as zero. Longitude wrapping
	// leaves sin(±π) at roughly 1e-16, so exact equality never fires.
	antipodalSinEpsilon = 1e-12
)

// vincentyInverse solves the inverse problem by Vincenty's iterative
// method on the configured ellipsoid. When the λ iteration fails to
// converge (nearly antipodal endpoints) the last iterate is still a
// usable approximation; it is returned as-is unless the calculator is
// strict.
func (c Calculator) vincentyInverse(p1, p2 Position) (Distance, Azimuth, Azimuth, error) {
	a := c.Ellipsoid.A
	b := c.Ellipsoid.B()
	f := c.Ellipsoid.F()

	l := wrapPi(p2.Lon - p1.Lon)
	u1 := math.Atan((1 - f) * math.Tan(p1.Lat))
	u2 := math.Atan((1 - f) * math.Tan(p2.Lat))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	if p1.Lat == p2.Lat && l == 0 {
		return 0, 0, 0, nil
	}

	lambda := l
	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM, sinLambda, cosLambda float64
	converged := false

	for iter := 0; iter < vincentyMaxIter; iter++ {
		sinLambda, cosLambda = math.Sincos(lambda)
		sinSigma = math.Hypot(
			cosU2*sinLambda,
			cosU1*sinU2-sinU1*cosU2*cosLambda,
		)
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		if sinSigma < antipodalSinEpsilon {
			if cosSigma > 0 {
				// Coincident points.
				return 0, 0, 0, nil
			}
			// Exactly antipodal: the geodesic runs over a pole and its
			// length is half the meridian ellipse. The azimuth is
			// indeterminate; due north is the documented tie-break.
			// Never an error, even in strict mode.
			return Distance(2 * c.meridianArc(math.Pi/2)), 0, 0, nil
		}
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		if cos2Alpha == 0 {
			// Equatorial geodesic.
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}

		cc := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		prev := lambda
		lambda = l + (1-cc)*f*sinAlpha*
			(sigma+cc*sinSigma*(cos2SigmaM+cc*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < vincentyEpsilon {
			converged = true
			break
		}
	}

	if !converged && c.Strict {
		return 0, 0, 0, ErrNonconvergence
	}

	u2sq := cos2Alpha * (a*a - b*b) / (b * b)
	bigA := 1 + u2sq/16384*(4096+u2sq*(-768+u2sq*(320-175*u2sq)))
	bigB := u2sq / 1024 * (256 + u2sq*(-128+u2sq*(74-47*u2sq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	s := b * bigA * (sigma - deltaSigma)

	fwd := math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
	// Azimuth of the geodesic at p2, flipped to point back toward p1.
	along := math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)

	return Distance(s), NewAzimuth(fwd), NewAzimuth(along + math.Pi), nil
}

// vincentyDirect solves the direct problem by Vincenty's formulae.
// The σ iteration converges rapidly for any input, but is still capped.
func (c Calculator) vincentyDirect(p Position, v Vector) (Position, error) {
	a := c.Ellipsoid.A
	b := c.Ellipsoid.B()
	f := c.Ellipsoid.F()
	s := v.Distance.Meters()
	alpha1 := v.Azimuth.Radians()

	sinAlpha1, cosAlpha1 := math.Sincos(alpha1)
	tanU1 := (1 - f) * math.Tan(p.Lat)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cos2Alpha := 1 - sinAlpha*sinAlpha
	u2sq := cos2Alpha * (a*a - b*b) / (b * b)
	bigA := 1 + u2sq/16384*(4096+u2sq*(-768+u2sq*(320-175*u2sq)))
	bigB := u2sq / 1024 * (256 + u2sq*(-128+u2sq*(74-47*u2sq)))

	sigma := s / (b * bigA)
	var sinSigma, cosSigma, cos2SigmaM float64
	converged := false

	for iter := 0; iter < vincentyMaxIter; iter++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
			(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
				bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = s/(b*bigA) + deltaSigma
		if math.Abs(sigma-prev) < vincentyEpsilon {
			converged = true
			break
		}
	}

	if !converged && c.Strict {
		return Position{}, ErrNonconvergence
	}

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat := math.Atan2(
		sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-f)*math.Hypot(sinAlpha, tmp),
	)
	lambda := math.Atan2(
		sinSigma*sinAlpha1,
		cosU1*cosSigma-sinU1*sinSigma*cosAlpha1,
	)
	cc := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
	l := lambda - (1-cc)*f*sinAlpha*
		(sigma+cc*sinSigma*(cos2SigmaM+cc*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	return Position{Lat: lat, Lon: wrapPi(p.Lon + l)}, nil
}
