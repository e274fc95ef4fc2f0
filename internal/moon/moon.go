package moon

import (
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// Arguments holds the Moon's fundamental arguments in degrees [0, 360).
type Arguments struct {
	Lprime float64 // mean longitude of the Moon
	D      float64 // mean elongation of the Moon from the Sun
	M      float64 // mean anomaly of the Sun
	Mm     float64 // mean anomaly of the Moon
	F      float64 // argument of latitude
}

// FundamentalArguments evaluates the mean lunar elements for T Julian
// centuries since J2000.0 (Meeus ch. 47, without the T² and higher terms).
func FundamentalArguments(T float64) Arguments {
	return Arguments{
		Lprime: timeutil.Normalize360(218.3164477 + 481267.88123421*T),
		D:      timeutil.Normalize360(297.8501921 + 445267.1114034*T),
		M:      timeutil.Normalize360(357.5291092 + 35999.0502909*T),
		Mm:     timeutil.Normalize360(134.9633964 + 477198.8675055*T),
		F:      timeutil.Normalize360(93.2720950 + 483202.0175233*T),
	}
}

// term is one periodic term sin(d·D + m·M + mm·Mm + f·F) with its amplitude
// in degrees.
type term struct {
	d, m, mm, f int
	amp         float64
}

// longitudeTerms are the largest periodic terms in ecliptic longitude.
var longitudeTerms = [...]term{
	{0, 0, 1, 0, 6.288774},   // equation of the centre
	{2, 0, -1, 0, 1.274027},  // evection
	{2, 0, 0, 0, 0.658314},   // variation
	{0, 0, 2, 0, 0.213618},   // second-order equation of the centre
	{0, 1, 0, 0, -0.185116},  // annual equation
	{0, 0, 0, 2, -0.114332},  // reduction to the ecliptic
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},  // parallactic inequality
	{0, 1, 1, 0, -0.030383},
}

// EclipticLongitude returns the Moon's geocentric ecliptic longitude in
// degrees [0, 360) for T Julian centuries since J2000.0.
//
// The truncated series is good to roughly 0.1–0.3°, plenty for sign-level
// placement but not for eclipse work.
func EclipticLongitude(T float64) float64 {
	a := FundamentalArguments(T)

	lon := a.Lprime
	for _, tm := range longitudeTerms {
		arg := float64(tm.d)*a.D +
			float64(tm.m)*a.M +
			float64(tm.mm)*a.Mm +
			float64(tm.f)*a.F
		lon += tm.amp * timeutil.SinD(arg)
	}

	return timeutil.Normalize360(lon)
}
