package natalglide

import (
	"math"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// MoonPhase describes the illuminated fraction and qualitative phase of the
// Moon at the birth moment.
type MoonPhase struct {
	Fraction   float64 `json:"fraction"`   // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64 `json:"elongation"` // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool    `json:"waxing"`     // true if waxing (illumination increasing)
	Name       string  `json:"name"`       // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// moonPhaseOf derives the phase from the geocentric ecliptic longitudes of
// the Sun and Moon. The Moon's latitude is ignored, which shifts the
// fraction by at most a percent or so.
func moonPhaseOf(sunLon, moonLon float64) MoonPhase {
	// Phase angle measured eastward from the Sun, [0, 360).
	sep := timeutil.Normalize360(moonLon - sunLon)

	elong := sep
	if elong > 180 {
		elong = 360 - elong
	}

	// k = (1 - cos ψ) / 2
	fraction := 0.5 * (1 - timeutil.CosD(elong))
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	waxing := sep < 180.0

	return MoonPhase{
		Fraction:   fraction,
		Elongation: elong,
		Waxing:     waxing,
		Name:       classifyMoonPhaseName(fraction, waxing),
	}
}

func classifyMoonPhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default: // f > 0.5 but not near 1
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
