package sun

import (
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// EclipticLongitude returns the Sun's geocentric ecliptic longitude in
// degrees [0, 360), referred to the mean equinox of date, for T Julian
// centuries since J2000.0.
//
// This is the standard low-precision solar model, good to about 0.01° over
// a few centuries either side of J2000:
//
//	g = mean anomaly of the Sun
//	q = mean longitude of the Sun
//	L = q + 1.915 sin g + 0.020 sin 2g
func EclipticLongitude(T float64) float64 {
	g := MeanAnomaly(T)
	q := timeutil.Normalize360(280.459 + 36000.770*T)

	L := q +
		1.915*timeutil.SinD(g) +
		0.020*timeutil.SinD(2*g)

	return timeutil.Normalize360(L)
}

// MeanAnomaly returns the Sun's mean anomaly in degrees [0, 360).
func MeanAnomaly(T float64) float64 {
	return timeutil.Normalize360(357.529 + 35999.050*T)
}

// Distance returns the Earth–Sun distance in astronomical units for T
// Julian centuries since J2000.0.
//
//	R = 1.00014 - 0.01671 cos g - 0.00014 cos 2g
func Distance(T float64) float64 {
	g := MeanAnomaly(T)
	return 1.00014 - 0.01671*timeutil.CosD(g) - 0.00014*timeutil.CosD(2*g)
}
