package timeutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJulianDay_KnownDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		hour  float64
		want  float64
	}{
		{"J2000 epoch", 2000, 1, 1, 12, 2451545.0},
		{"Meeus 7.a Sputnik", 1957, 10, 4, 19.0 + 26.0/60 + 24.0/3600, 2436116.31},
		{"1987 Jan 27 0h", 1987, 1, 27, 0, 2446822.5},
		{"1988 Jun 19 12h", 1988, 6, 19, 12, 2447332.0},
		{"1900 Jan 1 0h", 1900, 1, 1, 0, 2415020.5},
		{"1600 Jan 1 0h", 1600, 1, 1, 0, 2305447.5},
		{"leap day 2000", 2000, 2, 29, 0, 2451603.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.year, tt.month, tt.day, tt.hour)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestCivilToJulian_OffsetRemoved(t *testing.T) {
	utc := CivilToJulian(2000, 1, 1, 12, 0, 0, 0)
	berlin := CivilToJulian(2000, 1, 1, 13, 0, 0, 60)
	newYork := CivilToJulian(2000, 1, 1, 7, 0, 0, -300)

	assert.InDelta(t, J2000, utc, 1e-9)
	assert.InDelta(t, utc, berlin, 1e-9)
	assert.InDelta(t, utc, newYork, 1e-9)
}

func TestCivilToJulian_RollsAcrossMidnight(t *testing.T) {
	// 00:30 on Jan 1 at +02:00 is 22:30 UT on Dec 31.
	got := CivilToJulian(2000, 1, 1, 0, 30, 0, 120)
	want := JulianDay(1999, 12, 31, 22.5)
	assert.InDelta(t, want, got, 1e-9)
}

func TestCivilToJulian_Monotonic(t *testing.T) {
	prev := math.Inf(-1)
	for month := 1; month <= 12; month++ {
		for _, day := range []int{1, 15, 28} {
			for hour := 0; hour < 24; hour += 6 {
				jd := CivilToJulian(1999, month, day, hour, 0, 0, 0)
				assert.Greater(t, jd, prev, "%d-%d %dh", month, day, hour)
				prev = jd
			}
		}
	}
}

func TestJulianCenturies(t *testing.T) {
	assert.Equal(t, 0.0, JulianCenturies(J2000))
	assert.InDelta(t, 1.0, JulianCenturies(J2000+DaysPerCentury), 1e-12)
	assert.InDelta(t, -0.5, JulianCenturies(J2000-DaysPerCentury/2), 1e-12)
}

func TestNormalize360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-30, 330},
		{-720, 0},
		{359.999, 359.999},
		{-1e-15, 0},
	}
	for _, tt := range tests {
		got := Normalize360(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "Normalize360(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestNormalize180(t *testing.T) {
	assert.InDelta(t, 180.0, Normalize180(180), 1e-12)
	assert.InDelta(t, -170.0, Normalize180(190), 1e-12)
	assert.InDelta(t, 10.0, Normalize180(-350), 1e-12)
}

func TestTrigHelpers_LargeArguments(t *testing.T) {
	// 36000.77 * 50 centuries style arguments should agree with the reduced angle.
	big := 1800038.5 + 30.0
	assert.InDelta(t, SinD(math.Mod(big, 360)), SinD(big), 1e-9)
	assert.InDelta(t, 0.5, SinD(30), 1e-12)
	assert.InDelta(t, 0.5, CosD(60), 1e-12)
	assert.InDelta(t, 1.0, TanD(45), 1e-12)
	assert.InDelta(t, 135.0, Atan2D(1, -1), 1e-12)
	assert.InDelta(t, 270.0, Atan2D(-1, 0), 1e-12)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(0, 1, -1e300))
	assert.False(t, Finite(1, math.NaN()))
	assert.False(t, Finite(math.Inf(1)))
}
