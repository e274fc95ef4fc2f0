package sidereal

import (
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// MeanObliquity returns the mean obliquity of the ecliptic in degrees for T
// Julian centuries since J2000.0 (IAU 1976, Meeus eq. 22.2):
//
//	ε = 23°26′21.448″ − 46.8150″T − 0.00059″T² + 0.001813″T³
func MeanObliquity(T float64) float64 {
	seconds := 21.448 - T*(46.8150+T*(0.00059-T*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}

// GreenwichMean returns Greenwich mean sidereal time in degrees [0, 360)
// for the instant jd (UT), Meeus eq. 12.4.
func GreenwichMean(jd float64) float64 {
	d := timeutil.DaysSinceJ2000(jd)
	T := timeutil.JulianCenturies(jd)

	// Reduce the large linear term before adding the rest.
	theta := timeutil.Normalize360(360.98564736629*d) +
		280.46061837 +
		0.000387933*T*T -
		T*T*T/38710000.0

	return timeutil.Normalize360(theta)
}

// Local returns local mean sidereal time in degrees [0, 360) at the given
// east-positive longitude.
func Local(jd, lon float64) float64 {
	return timeutil.Normalize360(GreenwichMean(jd) + lon)
}
