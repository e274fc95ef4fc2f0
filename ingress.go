package natalglide

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/natalglide/internal/solver"
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// Ingress is a body's move from one sign into a neighbouring one.
type Ingress struct {
	Body       Body       `json:"body"`
	From       ZodiacSign `json:"from"`
	To         ZodiacSign `json:"to"`
	Time       time.Time  `json:"time"`
	Retrograde bool       `json:"retrograde"` // true if the body moved back into the previous sign
}

// Search tuning. Six-hour samples keep the Moon (~3.5° per step) well
// inside a single sign between samples.
const (
	ingressStep = 6 * time.Hour
	ingressTol  = 30 * time.Second

	// MaxIngressWindow bounds the search; Saturn spends under three years
	// in a sign.
	MaxIngressWindow = 4 * 366 * 24 * time.Hour
)

// NextIngress returns the first time after from, within the given window,
// at which body enters another sign. Retrograde motion back across the
// sign's own cusp counts as an ingress into the previous sign. The returned
// time is in from's location.
//
// The Ascendant is place-dependent and returns ErrUnsupportedBody. If no
// change happens inside the window, ErrNoIngress is returned.
func NextIngress(body Body, from time.Time, within time.Duration) (Ingress, error) {
	if body == Ascendant {
		return Ingress{}, fmt.Errorf("%w: %s has no ingress search", ErrUnsupportedBody, body)
	}
	if within <= 0 || within > MaxIngressWindow {
		return Ingress{}, fmt.Errorf("search window %v must be in (0, %v]", within, MaxIngressWindow)
	}

	lonAt := func(t time.Time) float64 {
		lon, err := EclipticLongitude(body, julianOf(t))
		if err != nil {
			// Only reachable for bodies rejected below.
			return 0
		}
		return lon
	}

	start, err := EclipticLongitude(body, julianOf(from))
	if err != nil {
		return Ingress{}, err
	}
	sign := SignOf(start)
	lower := sign.Cusp()
	upper := lower + SignWidth

	// Signed distance past each cusp, wrapped into (-180, 180].
	pastUpper := func(t time.Time) float64 {
		return timeutil.Normalize180(lonAt(t) - upper)
	}
	pastLower := func(t time.Time) float64 {
		return timeutil.Normalize180(lonAt(t) - lower)
	}

	end := from.Add(within)
	steps := int(within/ingressStep) + 2

	fwd := solver.FindCrossing(pastUpper, from, end, solver.CrossingUp, steps, ingressTol)
	back := solver.FindCrossing(pastLower, from, end, solver.CrossingDown, steps, ingressTol)

	switch {
	case fwd.OK && (!back.OK || !back.Time.Before(fwd.Time)):
		return Ingress{
			Body: body,
			From: sign,
			To:   sign.Next(),
			Time: fwd.Time.In(from.Location()),
		}, nil
	case back.OK:
		return Ingress{
			Body:       body,
			From:       sign,
			To:         sign.Prev(),
			Time:       back.Time.In(from.Location()),
			Retrograde: true,
		}, nil
	default:
		return Ingress{}, fmt.Errorf("%w: %s stays in %s until %s", ErrNoIngress, body, sign, end.Format(time.RFC3339))
	}
}
