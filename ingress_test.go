package natalglide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signAt(t *testing.T, b Body, at time.Time) ZodiacSign {
	t.Helper()
	lon, err := EclipticLongitude(b, julianOf(at))
	require.NoError(t, err)
	return SignOf(lon)
}

func TestNextIngress_SunAtEquinox(t *testing.T) {
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	ing, err := NextIngress(Sun, from, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, Sun, ing.Body)
	assert.Equal(t, Pisces, ing.From)
	assert.Equal(t, Aries, ing.To)
	assert.False(t, ing.Retrograde)

	equinox := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	assert.WithinDuration(t, equinox, ing.Time, 15*time.Minute)
}

func TestNextIngress_MoonChangesSign(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ing, err := NextIngress(Moon, from, 4*24*time.Hour)
	require.NoError(t, err)

	assert.False(t, ing.Retrograde)
	assert.Equal(t, ing.From.Next(), ing.To)
	assert.True(t, ing.Time.After(from))
	assert.True(t, ing.Time.Before(from.Add(3*24*time.Hour)), "moon spends under three days in a sign")

	assert.Equal(t, ing.From, signAt(t, Moon, ing.Time.Add(-2*time.Minute)))
	assert.Equal(t, ing.To, signAt(t, Moon, ing.Time.Add(2*time.Minute)))
}

func TestNextIngress_MercuryRetrograde(t *testing.T) {
	// Mercury stations retrograde in early Virgo on 2024-08-05 and slips
	// back into Leo about nine days later.
	from := time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC)

	ing, err := NextIngress(Mercury, from, 30*24*time.Hour)
	require.NoError(t, err)

	assert.True(t, ing.Retrograde)
	assert.Equal(t, Virgo, ing.From)
	assert.Equal(t, Leo, ing.To)

	want := time.Date(2024, 8, 14, 21, 0, 0, 0, time.UTC)
	assert.WithinDuration(t, want, ing.Time, 24*time.Hour)
}

func TestNextIngress_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)

	ing, err := NextIngress(Sun, from, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, loc, ing.Time.Location())
}

func TestNextIngress_NoChange(t *testing.T) {
	from := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := NextIngress(Saturn, from, 24*time.Hour)
	assert.ErrorIs(t, err, ErrNoIngress)
	assert.Equal(t, CodeNoIngress, ErrorCode(err))
}

func TestNextIngress_Errors(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NextIngress(Ascendant, from, 24*time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedBody)

	_, err = NextIngress(Sun, from, 0)
	assert.Error(t, err)

	_, err = NextIngress(Sun, from, MaxIngressWindow+time.Hour)
	assert.Error(t, err)

	_, err = NextIngress(Body(99), from, 24*time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedBody)
}
