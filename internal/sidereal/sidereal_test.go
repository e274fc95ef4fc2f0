package sidereal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

func TestMeanObliquity(t *testing.T) {
	// J2000: 23°26′21.448″.
	assert.InDelta(t, 23.4392911, MeanObliquity(0), 1e-7)

	// Meeus example 22.a, 1987 April 10: ε0 = 23°26′27.407″.
	T := timeutil.JulianCenturies(2446895.5)
	assert.InDelta(t, 23.0+26.0/60+27.407/3600, MeanObliquity(T), 1e-5)

	// Decreasing over the historical range.
	assert.Greater(t, MeanObliquity(-2), MeanObliquity(0))
	assert.Greater(t, MeanObliquity(0), MeanObliquity(2))
}

func TestGreenwichMean_Meeus12a(t *testing.T) {
	// Meeus example 12.a, 1987 April 10 0h UT: θ0 = 13h10m46.3668s.
	want := (13.0 + 10.0/60 + 46.3668/3600) * 15
	assert.InDelta(t, want, GreenwichMean(2446895.5), 1e-4)
}

func TestGreenwichMean_Meeus12b(t *testing.T) {
	// Meeus example 12.b, 1987 April 10 19h21m00s UT: θ0 = 128.7378734°.
	jd := timeutil.CivilToJulian(1987, 4, 10, 19, 21, 0, 0)
	assert.InDelta(t, 128.7378734, GreenwichMean(jd), 1e-4)
}

func TestGreenwichMean_SiderealRate(t *testing.T) {
	for _, jd := range []float64{2415020.5, timeutil.J2000, 2460310.25} {
		a := GreenwichMean(jd)
		b := GreenwichMean(jd + 1)
		// 24 solar hours advance sidereal time by 360.98565°, i.e. 0.98565° past a full turn.
		advance := timeutil.Normalize360(b-a) + 360
		assert.InDelta(t, 360.9856, advance, 1e-3, "jd %.2f", jd)
	}
}

func TestLocal(t *testing.T) {
	jd := 2446895.5
	g := GreenwichMean(jd)

	assert.InDelta(t, timeutil.Normalize360(g-112.074), Local(jd, -112.074), 1e-9)
	assert.InDelta(t, timeutil.Normalize360(g+151.2), Local(jd, 151.2), 1e-9)

	for lon := -180.0; lon <= 180.0; lon += 7.5 {
		got := Local(jd, lon)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}
