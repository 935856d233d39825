package geodesy

import (
	"errors"
	"math"
	"testing"
)

// dms converts degrees, minutes, seconds to decimal degrees.
func dms(d, m, s float64) float64 {
	return d + m/60 + s/3600
}

func mustPosition(t *testing.T, latDeg, lonDeg float64) Position {
	t.Helper()
	p, err := NewPositionDegrees(latDeg, lonDeg)
	if err != nil {
		t.Fatalf("NewPositionDegrees(%g, %g): %v", latDeg, lonDeg, err)
	}
	return p
}

// Reference inverse solution on WGS84 (NGS-style test pair).
func TestVincentyInverseReference(t *testing.T) {
	p1 := mustPosition(t, dms(34, 0, 12.12345), -dms(111, 0, 12.12345))
	p2 := mustPosition(t, dms(33, 22, 11.54321), -dms(112, 55, 44.33333))

	c := Calculator{Ellipsoid: WGS84, Algorithm: Vincenty}
	dist, fwd, back, err := c.Inverse(p1, p2)
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}

	if math.Abs(dist.Meters()-191872.119) > 0.01 {
		t.Errorf("distance = %.3f m, want 191872.119 m", dist.Meters())
	}
	wantFwd := dms(249, 3, 16.42)
	if math.Abs(fwd.Degrees()-wantFwd) > 0.0001 {
		t.Errorf("forward azimuth = %.6f°, want %.6f°", fwd.Degrees(), wantFwd)
	}
	wantBack := dms(67, 59, 11.16)
	if math.Abs(back.Degrees()-wantBack) > 0.0001 {
		t.Errorf("back azimuth = %.6f°, want %.6f°", back.Degrees(), wantBack)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]Position{
		{mustPosition(t, 34.0034, -111.0034), mustPosition(t, 33.3699, -112.9290)},
		{mustPosition(t, 51.5, -0.12), mustPosition(t, -33.86, 151.21)},
		{mustPosition(t, 70, 10), mustPosition(t, 70, 100)},
		{mustPosition(t, 0, 0), mustPosition(t, 0, 90)},
	}

	for _, alg := range []Algorithm{Haversine, Vincenty, Andoyer} {
		c := Calculator{Ellipsoid: WGS84, Algorithm: alg}
		for _, pair := range pairs {
			d12, _, _, err := c.Inverse(pair[0], pair[1])
			if err != nil {
				t.Fatalf("%v Inverse error: %v", alg, err)
			}
			d21, _, _, err := c.Inverse(pair[1], pair[0])
			if err != nil {
				t.Fatalf("%v Inverse error: %v", alg, err)
			}
			if math.Abs(d12.Meters()-d21.Meters()) > 1e-6 {
				t.Errorf("%v: d(p1,p2)=%.6f != d(p2,p1)=%.6f", alg, d12.Meters(), d21.Meters())
			}
		}
	}
}

func TestForwardBackAzimuthConsistency(t *testing.T) {
	// For a moderate-length geodesic the back azimuth differs from the
	// forward azimuth by π plus the convergence of the meridians.
	p1 := mustPosition(t, 40, -75)
	p2 := mustPosition(t, 42, -71)

	for _, alg := range []Algorithm{Haversine, Vincenty, Andoyer} {
		c := Calculator{Ellipsoid: WGS84, Algorithm: alg}
		_, fwd, back, err := c.Inverse(p1, p2)
		if err != nil {
			t.Fatalf("%v: %v", alg, err)
		}
		diff := math.Abs(wrapPi(back.Radians() - fwd.Radians() - math.Pi))
		if diff > 0.06 { // meridian convergence over ~4° of longitude
			t.Errorf("%v: back-forward azimuth = π%+.4f rad", alg, diff)
		}
	}
}

func TestInverseDirectRoundTrip(t *testing.T) {
	pairs := [][2]Position{
		{mustPosition(t, 34.0034, -111.0034), mustPosition(t, 33.3699, -112.9290)},
		{mustPosition(t, -10, 20), mustPosition(t, 15, 32)},
		{mustPosition(t, 55, 5), mustPosition(t, 54.9, 5)},   // meridional
		{mustPosition(t, 0, 10), mustPosition(t, 0, 17)},     // equatorial
		{mustPosition(t, 80, -30), mustPosition(t, 89.9, 0)}, // near the pole
	}

	tests := []struct {
		alg    Algorithm
		absTol float64 // metres
		relTol float64 // fraction of the distance
	}{
		{Vincenty, 0.001, 0},
		{Haversine, 1.0, 0},   // spherical model is self-consistent
		{Andoyer, 1.0, 0.005}, // ellipsoidal distance fed to a spherical direct
	}

	for _, tt := range tests {
		c := Calculator{Ellipsoid: WGS84, Algorithm: tt.alg}
		for _, pair := range pairs {
			d, fwd, _, err := c.Inverse(pair[0], pair[1])
			if err != nil {
				t.Fatalf("%v Inverse: %v", tt.alg, err)
			}
			got, err := c.Direct(pair[0], Vector{Distance: d, Azimuth: fwd})
			if err != nil {
				t.Fatalf("%v Direct: %v", tt.alg, err)
			}
			// Residual separation, measured with Vincenty.
			res, _, _, err := Default().Inverse(got, pair[1])
			if err != nil {
				t.Fatalf("residual Inverse: %v", err)
			}
			tol := tt.absTol + tt.relTol*d.Meters()
			if res.Meters() > tol {
				t.Errorf("%v: round trip missed %v by %.3f m (tol %.3f)",
					tt.alg, pair[1], res.Meters(), tol)
			}
		}
	}
}

func TestDegenerateGeodesics(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Position
	}{
		{"meridional", mustPosition(t, 10, 25), mustPosition(t, 40, 25)},
		{"equatorial", mustPosition(t, 0, -40), mustPosition(t, 0, 30)},
		{"pole endpoint", mustPosition(t, 90, 0), mustPosition(t, 45, 60)},
		{"near antipodal", mustPosition(t, 0.1, 0), mustPosition(t, 0, 179.8)},
		{"exact antipodal", mustPosition(t, 0, 0), mustPosition(t, 0, 180)},
	}

	for _, alg := range []Algorithm{Haversine, Vincenty, Andoyer} {
		c := Calculator{Ellipsoid: WGS84, Algorithm: alg}
		for _, tt := range tests {
			t.Run(alg.String()+"/"+tt.name, func(t *testing.T) {
				d, fwd, back, err := c.Inverse(tt.p1, tt.p2)
				if err != nil {
					t.Fatalf("Inverse() error = %v", err)
				}
				for name, v := range map[string]float64{
					"distance": d.Meters(), "forward": fwd.Radians(), "back": back.Radians(),
				} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Errorf("%s is not finite: %v", name, v)
					}
				}
				if d < 0 {
					t.Errorf("negative distance %v", d)
				}
			})
		}
	}
}

func TestVincentyAntipodalDistance(t *testing.T) {
	// Exact antipodes: the geodesic runs over a pole, so the distance
	// is half the meridian ellipse (twice the quarter meridian), not
	// half the equator. The 180° longitude difference survives wrapping
	// only to within floating-point roundoff, so the degenerate branch
	// must trigger on a tolerance, not equality; missing it leaves the
	// diverged equatorial estimate, about 100 km short.
	pairs := [][2]Position{
		{mustPosition(t, 0, 0), mustPosition(t, 0, 180)},
		{mustPosition(t, 45, 0), mustPosition(t, -45, 180)},
		{mustPosition(t, -30, 120), mustPosition(t, 30, -60)},
	}
	// Strict mode must not error: this is a degenerate input with a
	// known answer, not a non-convergence.
	c := Calculator{Ellipsoid: WGS84, Algorithm: Vincenty, Strict: true}
	for _, pair := range pairs {
		d, fwd, _, err := c.Inverse(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Inverse(%v, %v) error = %v", pair[0], pair[1], err)
		}
		if math.Abs(d.Meters()-20003931.5) > 100 {
			t.Errorf("%v -> %v: distance = %.1f m, want ≈20003931.5 m",
				pair[0], pair[1], d.Meters())
		}
		// Documented tie-break for the indeterminate azimuth.
		if fwd.Radians() != 0 {
			t.Errorf("%v -> %v: forward azimuth = %v, want due north",
				pair[0], pair[1], fwd)
		}
	}
}

func TestVincentyStrictNonconvergence(t *testing.T) {
	// A classic near-antipodal pair where the λ iteration diverges.
	p1 := mustPosition(t, 0, 0)
	p2 := mustPosition(t, 0.5, 179.7)

	strict := Calculator{Ellipsoid: WGS84, Algorithm: Vincenty, Strict: true}
	if _, _, _, err := strict.Inverse(p1, p2); !errors.Is(err, ErrNonconvergence) {
		t.Errorf("strict Inverse error = %v, want ErrNonconvergence", err)
	}

	// Non-strict mode falls back to the best estimate: finite and in
	// the right ballpark (antipodal distances are near 20000 km).
	lax := Calculator{Ellipsoid: WGS84, Algorithm: Vincenty}
	d, _, _, err := lax.Inverse(p1, p2)
	if err != nil {
		t.Fatalf("non-strict Inverse error = %v", err)
	}
	if d.Meters() < 19000e3 || d.Meters() > 20100e3 {
		t.Errorf("fallback distance = %.0f m, want roughly antipodal", d.Meters())
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Quarter of a great circle along the equator on the mean-radius sphere.
	c := Calculator{Ellipsoid: WGS84, Algorithm: Haversine}
	d, _, _, err := c.Inverse(mustPosition(t, 0, 0), mustPosition(t, 0, 90))
	if err != nil {
		t.Fatal(err)
	}
	want := WGS84.MeanRadius() * math.Pi / 2
	if math.Abs(d.Meters()-want) > 1 {
		t.Errorf("distance = %.1f m, want %.1f m", d.Meters(), want)
	}
}

func TestAndoyerAccuracy(t *testing.T) {
	// Andoyer should land well within 0.1% of Vincenty on a
	// mid-latitude pair.
	p1 := mustPosition(t, dms(34, 0, 12.12345), -dms(111, 0, 12.12345))
	p2 := mustPosition(t, dms(33, 22, 11.54321), -dms(112, 55, 44.33333))

	v, _, _, err := Calculator{Ellipsoid: WGS84, Algorithm: Vincenty}.Inverse(p1, p2)
	if err != nil {
		t.Fatal(err)
	}
	a, _, _, _ := Calculator{Ellipsoid: WGS84, Algorithm: Andoyer}.Inverse(p1, p2)

	relErr := math.Abs(a.Meters()-v.Meters()) / v.Meters()
	if relErr > 0.001 {
		t.Errorf("Andoyer relative error = %.5f%%, want < 0.1%%", relErr*100)
	}
}

func TestLatDistance(t *testing.T) {
	c := Default()
	p := mustPosition(t, 0, -71)

	// One degree of latitude at the equator is about 110.574 km.
	d := c.LatDistance(p, 1*math.Pi/180)
	if math.Abs(d.Meters()-110574) > 20 {
		t.Errorf("1° meridian arc at equator = %.1f m, want ≈110574 m", d.Meters())
	}

	// Quarter meridian, equator to pole.
	q := c.LatDistance(p, math.Pi/2)
	if math.Abs(q.Meters()-10001965.7) > 50 {
		t.Errorf("quarter meridian = %.1f m, want ≈10001965.7 m", q.Meters())
	}

	// Longitude must not matter.
	p2 := mustPosition(t, 0, 55)
	if d2 := c.LatDistance(p2, 1*math.Pi/180); math.Abs(d2.Meters()-d.Meters()) > 1e-9 {
		t.Errorf("LatDistance depends on longitude: %.6f vs %.6f", d.Meters(), d2.Meters())
	}
}

func TestNewPositionValidation(t *testing.T) {
	if _, err := NewPositionDegrees(91, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("latitude 91° error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := NewPositionDegrees(0, 721); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("longitude 721° error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := NewPositionDegrees(-90, 180); err != nil {
		t.Errorf("boundary coordinates rejected: %v", err)
	}
}

func TestPositionSugar(t *testing.T) {
	p1 := mustPosition(t, 34.0034, -111.0034)
	p2 := mustPosition(t, 33.3699, -112.9290)

	v := p1.VectorTo(p2)
	if v.Distance <= 0 {
		t.Fatalf("VectorTo distance = %v", v.Distance)
	}
	got := p1.Offset(v)
	res, _, _, _ := Default().Inverse(got, p2)
	if res.Meters() > 0.01 {
		t.Errorf("Offset(VectorTo) missed target by %.4f m", res.Meters())
	}
	if d := p1.DistanceTo(p2); math.Abs(d.Meters()-v.Distance.Meters()) > 1e-9 {
		t.Errorf("DistanceTo = %v, VectorTo distance = %v", d, v.Distance)
	}
}
