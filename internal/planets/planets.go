// Package planets computes low-precision geocentric ecliptic longitudes for
// the five classical planets from Keplerian mean elements.
//
// Elements and rates are the JPL "approximate positions of the planets"
// set (Standish), referred to the mean ecliptic and equinox of J2000 and
// fitted over 1800–2050 AD. Outside that span the error grows slowly; the
// outer planets drift by a degree or so per few centuries, which is still
// fine for sign-level placement away from boundaries.
package planets

import (
	"fmt"
	"math"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// Planet identifies one of the bodies handled by this package.
type Planet int

const (
	Mercury Planet = iota
	Venus
	Mars
	Jupiter
	Saturn

	// earth is the Earth–Moon barycentre, used only for the geocentric
	// reduction.
	earth
)

func (p Planet) String() string {
	switch p {
	case Mercury:
		return "Mercury"
	case Venus:
		return "Venus"
	case Mars:
		return "Mars"
	case Jupiter:
		return "Jupiter"
	case Saturn:
		return "Saturn"
	case earth:
		return "Earth"
	default:
		return fmt.Sprintf("Planet(%d)", int(p))
	}
}

// All lists the planets in traditional order.
var All = []Planet{Mercury, Venus, Mars, Jupiter, Saturn}

// element is a value at J2000 and its rate per Julian century.
type element struct {
	at0, rate float64
}

func (e element) at(T float64) float64 {
	return e.at0 + e.rate*T
}

// orbit holds the six classical elements.
type orbit struct {
	a    element // semi-major axis, au
	e    element // eccentricity
	i    element // inclination, deg
	L    element // mean longitude, deg
	peri element // longitude of perihelion, deg
	node element // longitude of ascending node, deg
}

var orbits = map[Planet]orbit{
	Mercury: {
		a:    element{0.38709927, 0.00000037},
		e:    element{0.20563593, 0.00001906},
		i:    element{7.00497902, -0.00594749},
		L:    element{252.25032350, 149472.67411175},
		peri: element{77.45779628, 0.16047689},
		node: element{48.33076593, -0.12534081},
	},
	Venus: {
		a:    element{0.72333566, 0.00000390},
		e:    element{0.00677672, -0.00004107},
		i:    element{3.39467605, -0.00078890},
		L:    element{181.97909950, 58517.81538729},
		peri: element{131.60246718, 0.00268329},
		node: element{76.67984255, -0.27769418},
	},
	earth: {
		a:    element{1.00000261, 0.00000562},
		e:    element{0.01671123, -0.00004392},
		i:    element{-0.00001531, -0.01294668},
		L:    element{100.46457166, 35999.37244981},
		peri: element{102.93768193, 0.32327364},
		node: element{0, 0},
	},
	Mars: {
		a:    element{1.52371034, 0.00001847},
		e:    element{0.09339410, 0.00007882},
		i:    element{1.84969142, -0.00813131},
		L:    element{-4.55343205, 19140.30268499},
		peri: element{-23.94362959, 0.44441088},
		node: element{49.55953891, -0.29257343},
	},
	Jupiter: {
		a:    element{5.20288700, -0.00011607},
		e:    element{0.04838624, -0.00013253},
		i:    element{1.30439695, -0.00183714},
		L:    element{34.39644051, 3034.74612775},
		peri: element{14.72847983, 0.21252668},
		node: element{100.47390909, 0.20469106},
	},
	Saturn: {
		a:    element{9.53667594, -0.00125060},
		e:    element{0.05386179, -0.00050991},
		i:    element{2.48599187, 0.00193609},
		L:    element{49.95424423, 1222.49362201},
		peri: element{92.59887831, -0.41897216},
		node: element{113.66242448, -0.28867794},
	},
}

// precessionRate is the general precession in longitude, degrees per
// Julian century (5029.0966″).
const precessionRate = 1.396971

// vector is a heliocentric ecliptic position in au.
type vector struct {
	x, y, z float64
}

// heliocentric returns the J2000-ecliptic heliocentric position of p.
func heliocentric(p Planet, T float64) vector {
	o := orbits[p]

	a := o.a.at(T)
	e := o.e.at(T)
	inc := o.i.at(T)
	L := o.L.at(T)
	peri := o.peri.at(T)
	node := o.node.at(T)

	M := timeutil.Normalize360(L - peri)

	// Equation of the centre to third order in e.
	C := timeutil.Rad2Deg(
		(2*e-e*e*e/4)*timeutil.SinD(M) +
			1.25*e*e*timeutil.SinD(2*M) +
			13.0/12.0*e*e*e*timeutil.SinD(3*M),
	)
	v := M + C

	r := a * (1 - e*e) / (1 + e*timeutil.CosD(v))

	// Argument of latitude: true anomaly plus argument of perihelion.
	u := v + peri - node

	cosN, sinN := timeutil.CosD(node), timeutil.SinD(node)
	cosU, sinU := timeutil.CosD(u), timeutil.SinD(u)
	cosI, sinI := timeutil.CosD(inc), timeutil.SinD(inc)

	return vector{
		x: r * (cosN*cosU - sinN*sinU*cosI),
		y: r * (sinN*cosU + cosN*sinU*cosI),
		z: r * sinU * sinI,
	}
}

// EclipticLongitude returns the geocentric ecliptic longitude of p in
// degrees [0, 360), referred to the mean equinox of date, for T Julian
// centuries since J2000.0. Light-time, aberration and nutation are ignored.
func EclipticLongitude(p Planet, T float64) (float64, error) {
	if _, ok := orbits[p]; !ok || p == earth {
		return 0, fmt.Errorf("planets: unknown planet %v", p)
	}

	pl := heliocentric(p, T)
	ea := heliocentric(earth, T)

	lon := timeutil.Rad2Deg(math.Atan2(pl.y-ea.y, pl.x-ea.x))

	return timeutil.Normalize360(lon + precessionRate*T), nil
}
