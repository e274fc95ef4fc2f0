// Package angles computes the chart angles (Ascendant and Midheaven) from
// local sidereal time, obliquity and geographic latitude.
package angles

import (
	"errors"
	"math"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// ErrPolar is returned when the latitude is past the configured limit and
// the Ascendant is not well defined.
var ErrPolar = errors.New("ascendant undefined at this latitude")

// Midheaven returns the ecliptic longitude of the upper meridian (MC) in
// degrees [0, 360) for local sidereal time lst and obliquity eps.
//
//	tan MC = sin θ / (cos θ cos ε)
func Midheaven(lst, eps float64) float64 {
	return timeutil.Atan2D(timeutil.SinD(lst), timeutil.CosD(lst)*timeutil.CosD(eps))
}

// Ascendant returns the ecliptic longitude of the point rising on the
// eastern horizon, in degrees [0, 360).
//
//	tan λ = cos θ / −(sin θ cos ε + tan φ sin ε)
//
// The atan2 argument order puts the result on the rising side; swapping the
// signs of both arguments gives the Descendant. As a second guard the result
// must lie in the half of the ecliptic following the MC.
//
// limit is the largest |lat| accepted; past it ErrPolar is returned. Values
// at or above 90−ε are always rejected, since there the ecliptic can lie in
// the horizon and the formula loses its quadrant.
func Ascendant(lst, eps, lat, limit float64) (float64, error) {
	if math.Abs(lat) > limit || math.Abs(lat) >= 90-eps {
		return 0, ErrPolar
	}

	y := timeutil.CosD(lst)
	x := -(timeutil.SinD(lst)*timeutil.CosD(eps) + timeutil.TanD(lat)*timeutil.SinD(eps))
	asc := timeutil.Atan2D(y, x)

	mc := Midheaven(lst, eps)
	if timeutil.Normalize360(asc-mc) >= 180 {
		asc = timeutil.Normalize360(asc + 180)
	}

	return asc, nil
}
