package timeutil

import (
	"math"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 UTC).
const J2000 = 2451545.0

// DaysPerCentury is the length of a Julian century in days.
const DaysPerCentury = 36525.0

// JulianDay returns the Julian Date for a Gregorian calendar date and a
// fractional UT hour. hour may fall outside [0,24); the result simply moves
// by hour/24 days, which keeps the scale continuous.
//
// Meeus, Astronomical Algorithms, ch. 7.
func JulianDay(year, month, day int, hour float64) float64 {
	y := year
	m := month

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := y / 100
	B := 2 - A + A/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hour/24.0

	return jd
}

// CivilToJulian converts a civil date and clock time observed at a fixed
// UTC offset (minutes east of Greenwich) into a Julian Date. The offset is
// removed before the fractional day is added, so 10:00 at +120 and 08:00 at
// +0 give the same instant.
func CivilToJulian(year, month, day, hour, minute int, second float64, offsetMinutes int) float64 {
	h := float64(hour) +
		float64(minute)/60.0 +
		second/3600.0 -
		float64(offsetMinutes)/60.0
	return JulianDay(year, month, day, h)
}

// JulianCenturies returns Julian centuries elapsed since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// DaysSinceJ2000 returns days elapsed since J2000.0.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// SinD, CosD and TanD reduce their argument modulo 360 before converting,
// so large century counts don't eat into the mantissa.
func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(Normalize360(deg)))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(Normalize360(deg)))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(Normalize360(deg)))
}

// Atan2D is math.Atan2 returning degrees in [0, 360).
func Atan2D(y, x float64) float64 {
	return Normalize360(Rad2Deg(math.Atan2(y, x)))
}

// Normalize360 maps d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value plus 360 can round up to exactly 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// Normalize180 maps d into (-180, 180].
func Normalize180(d float64) float64 {
	d = Normalize360(d)
	if d > 180.0 {
		d -= 360.0
	}
	return d
}

// Finite reports whether every value is neither NaN nor ±Inf.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
