package angles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

const (
	eps   = 23.4393
	limit = 66.5
)

func TestAscendant_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		lst  float64
		lat  float64
		want float64
	}{
		// Equator, RAMC 0: the east point is 0° Cancer.
		{"equator lst 0", 0, 0, 90},
		// Equator, RAMC 180: 0° Capricorn.
		{"equator lst 180", 180, 0, 270},
		// London-ish tables of houses at sidereal time 0h: 26°34′ Cancer.
		{"51.5N lst 0", 0, 51.5, 116.568},
		// Southern hemisphere mirrors into Gemini.
		{"51.5S lst 0", 0, -51.5, 63.432},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ascendant(tt.lst, eps, tt.lat, limit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-3)
		})
	}
}

// TestAscendant_RisesInTheEast converts the Ascendant back to the horizon
// and checks it sits on the horizon with a negative (eastern) hour angle,
// so the Descendant is never returned by mistake.
func TestAscendant_RisesInTheEast(t *testing.T) {
	for lat := -66.0; lat <= 66.0; lat += 3.0 {
		for lst := 0.0; lst < 360.0; lst += 5.0 {
			asc, err := Ascendant(lst, eps, lat, limit)
			require.NoError(t, err)
			require.GreaterOrEqual(t, asc, 0.0)
			require.Less(t, asc, 360.0)

			ra := timeutil.Atan2D(timeutil.SinD(asc)*timeutil.CosD(eps), timeutil.CosD(asc))
			dec := timeutil.Rad2Deg(math.Asin(timeutil.SinD(eps) * timeutil.SinD(asc)))
			H := lst - ra

			sinAlt := timeutil.SinD(lat)*timeutil.SinD(dec) +
				timeutil.CosD(lat)*timeutil.CosD(dec)*timeutil.CosD(H)

			assert.InDelta(t, 0.0, sinAlt, 1e-9, "lat=%.1f lst=%.1f", lat, lst)
			assert.Less(t, timeutil.SinD(H), 1e-9, "lat=%.1f lst=%.1f asc=%.2f", lat, lst, asc)
		}
	}
}

func TestAscendant_FollowsMidheaven(t *testing.T) {
	for lat := -60.0; lat <= 60.0; lat += 20.0 {
		for lst := 0.0; lst < 360.0; lst += 10.0 {
			asc, err := Ascendant(lst, eps, lat, limit)
			require.NoError(t, err)
			diff := timeutil.Normalize360(asc - Midheaven(lst, eps))
			assert.Greater(t, diff, 0.0)
			assert.Less(t, diff, 180.0)
		}
	}
}

func TestAscendant_Polar(t *testing.T) {
	for _, lat := range []float64{66.6, -66.6, 80, -89.9, 90} {
		_, err := Ascendant(0, eps, lat, limit)
		assert.ErrorIs(t, err, ErrPolar, "lat=%.1f", lat)
	}

	// A generous configured limit still stops at the arctic circle for this ε.
	_, err := Ascendant(0, eps, 67, 89)
	assert.ErrorIs(t, err, ErrPolar)

	// A stricter limit applies below the circle.
	_, err = Ascendant(0, eps, 60, 55)
	assert.ErrorIs(t, err, ErrPolar)
}

func TestMidheaven(t *testing.T) {
	// At the equinoxes and solstices RA and longitude coincide.
	for _, lst := range []float64{0, 90, 180, 270} {
		assert.InDelta(t, lst, Midheaven(lst, eps), 1e-9)
	}
	mc := Midheaven(45, eps)
	assert.Greater(t, mc, 45.0)
	assert.Less(t, mc, 50.0)
}
