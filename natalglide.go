// Package natalglide computes natal charts: the zodiac signs of the Sun,
// Moon, five classical planets and the Ascendant for a birth moment and
// place.
//
// The public API is small and pure. Every function is a deterministic
// computation over its arguments with no I/O and no shared mutable state,
// so a Calculator may be used from any number of goroutines at once.
//
// Accuracy targets sign-level placement: the Sun is good to about 0.01°,
// the Moon to a few tenths of a degree and the planets to well under a
// degree for dates within a few centuries of 2000. Bodies sitting within a
// fraction of a degree of a cusp may legitimately land on either side.
//
// Currently implemented:
//   - Chart / ChartFor: the eight-sign natal chart
//   - Positions / PositionsFor: raw longitudes, angles and Moon phase
//   - NextIngress: when a body next changes sign
//   - Request / Calculator.ChartRequest: the JSON input contract
package natalglide

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thurmanmarka/natalglide/internal/angles"
	"github.com/thurmanmarka/natalglide/internal/moon"
	"github.com/thurmanmarka/natalglide/internal/planets"
	"github.com/thurmanmarka/natalglide/internal/sidereal"
	"github.com/thurmanmarka/natalglide/internal/sun"
	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// Body identifies a chart point.
type Body int

const (
	Sun Body = iota
	Moon
	Ascendant
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

// Bodies lists every chart point in output order.
var Bodies = []Body{Sun, Moon, Ascendant, Mercury, Venus, Mars, Jupiter, Saturn}

var bodyNames = map[Body]string{
	Sun:       "sun",
	Moon:      "moon",
	Ascendant: "ascendant",
	Mercury:   "mercury",
	Venus:     "venus",
	Mars:      "mars",
	Jupiter:   "jupiter",
	Saturn:    "saturn",
}

var bodyPlanets = map[Body]planets.Planet{
	Mercury: planets.Mercury,
	Venus:   planets.Venus,
	Mars:    planets.Mars,
	Jupiter: planets.Jupiter,
	Saturn:  planets.Saturn,
}

// planetBodies is the inverse of bodyPlanets.
var planetBodies = func() map[planets.Planet]Body {
	m := make(map[planets.Planet]Body, len(bodyPlanets))
	for b, p := range bodyPlanets {
		m[p] = b
	}
	return m
}()

// String returns the lowercase body name used on the wire.
func (b Body) String() string {
	if n, ok := bodyNames[b]; ok {
		return n
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// MarshalText encodes the body as its wire name.
func (b Body) MarshalText() ([]byte, error) {
	n, ok := bodyNames[b]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBody, int(b))
	}
	return []byte(n), nil
}

// UnmarshalText decodes a body wire name.
func (b *Body) UnmarshalText(text []byte) error {
	v, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBody parses a lowercase or capitalized body name.
func ParseBody(s string) (Body, error) {
	for b, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBody, s)
}

// Supported year range. The Gregorian conversion is exact throughout; the
// orbital models degrade slowly away from 2000.
const (
	MinYear = 1583
	MaxYear = 3000
)

// MaxUTCOffsetMinutes bounds the accepted UTC offset (±14h).
const MaxUTCOffsetMinutes = 14 * 60

// BirthMoment is a civil date and clock time together with the UTC offset
// in force at that moment and place (minutes east of Greenwich). The offset
// must be resolved by the caller, e.g. from a historical time zone database;
// it is never guessed.
type BirthMoment struct {
	Year   int
	Month  int // 1..12
	Day    int // 1..31
	Hour   int // 0..23
	Minute int // 0..59
	Second int // 0..59

	UTCOffsetMinutes int
}

// MomentOf builds a BirthMoment from t, taking the offset from t's
// location at that instant. Sub-second precision is dropped.
func MomentOf(t time.Time) BirthMoment {
	_, offset := t.Zone()
	return BirthMoment{
		Year:             t.Year(),
		Month:            int(t.Month()),
		Day:              t.Day(),
		Hour:             t.Hour(),
		Minute:           t.Minute(),
		Second:           t.Second(),
		UTCOffsetMinutes: offset / 60,
	}
}

// Validate reports ErrInvalidDate if any field is out of range or the date
// does not exist in the Gregorian calendar.
func (m BirthMoment) Validate() error {
	if m.Year < MinYear || m.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, m.Year, MinYear, MaxYear)
	}
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, m.Month)
	}
	if dim := daysIn(m.Year, m.Month); m.Day < 1 || m.Day > dim {
		return fmt.Errorf("%w: day %d does not exist in %04d-%02d", ErrInvalidDate, m.Day, m.Year, m.Month)
	}
	if m.Hour < 0 || m.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidDate, m.Hour)
	}
	if m.Minute < 0 || m.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidDate, m.Minute)
	}
	if m.Second < 0 || m.Second > 59 {
		return fmt.Errorf("%w: second %d", ErrInvalidDate, m.Second)
	}
	if m.UTCOffsetMinutes < -MaxUTCOffsetMinutes || m.UTCOffsetMinutes > MaxUTCOffsetMinutes {
		return fmt.Errorf("%w: utc offset %d minutes", ErrInvalidDate, m.UTCOffsetMinutes)
	}
	return nil
}

// JulianDate validates m and converts it to a Julian Date (UT).
func (m BirthMoment) JulianDate() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	jd := timeutil.CivilToJulian(m.Year, m.Month, m.Day, m.Hour, m.Minute, float64(m.Second), m.UTCOffsetMinutes)
	if !timeutil.Finite(jd) {
		return 0, fmt.Errorf("%w: julian date", ErrNumericDomain)
	}
	return jd, nil
}

// UTC returns the instant as a time.Time in UTC. m must be valid.
func (m BirthMoment) UTC() time.Time {
	local := time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, m.Second, 0, time.UTC)
	return local.Add(-time.Duration(m.UTCOffsetMinutes) * time.Minute)
}

// daysIn returns the number of days in the given Gregorian month.
func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GeoCoordinate is an observer's location.
type GeoCoordinate struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Validate reports ErrInvalidCoordinate for non-finite or out-of-range values.
func (c GeoCoordinate) Validate() error {
	if !timeutil.Finite(c.Lat, c.Lon) {
		return fmt.Errorf("%w: non-finite value (lat=%v lon=%v)", ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside -90..90", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside -180..180", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// NatalChart maps every chart point to its sign. It marshals to the flat
// JSON record {"sun":"Capricorn","moon":...}.
type NatalChart struct {
	Sun       ZodiacSign `json:"sun"`
	Moon      ZodiacSign `json:"moon"`
	Ascendant ZodiacSign `json:"ascendant"`
	Mercury   ZodiacSign `json:"mercury"`
	Venus     ZodiacSign `json:"venus"`
	Mars      ZodiacSign `json:"mars"`
	Jupiter   ZodiacSign `json:"jupiter"`
	Saturn    ZodiacSign `json:"saturn"`
}

// Sign returns the sign of body b.
func (c NatalChart) Sign(b Body) (ZodiacSign, bool) {
	switch b {
	case Sun:
		return c.Sun, true
	case Moon:
		return c.Moon, true
	case Ascendant:
		return c.Ascendant, true
	case Mercury:
		return c.Mercury, true
	case Venus:
		return c.Venus, true
	case Mars:
		return c.Mars, true
	case Jupiter:
		return c.Jupiter, true
	case Saturn:
		return c.Saturn, true
	default:
		return 0, false
	}
}

// Positions holds the raw numbers behind a chart.
type Positions struct {
	JulianDate   float64          `json:"julian_date"`
	Obliquity    float64          `json:"obliquity"`     // degrees
	SiderealTime float64          `json:"sidereal_time"` // local, degrees [0, 360)
	Longitudes   map[Body]float64 `json:"longitudes"`    // ecliptic, degrees [0, 360)
	Midheaven    float64          `json:"midheaven"`     // ecliptic, degrees [0, 360)
	MoonPhase    MoonPhase        `json:"moon_phase"`
	SunDistance  float64          `json:"sun_distance_au"` // Earth–Sun, astronomical units
}

// Chart maps every longitude onto its sign.
func (p Positions) Chart() NatalChart {
	return NatalChart{
		Sun:       SignOf(p.Longitudes[Sun]),
		Moon:      SignOf(p.Longitudes[Moon]),
		Ascendant: SignOf(p.Longitudes[Ascendant]),
		Mercury:   SignOf(p.Longitudes[Mercury]),
		Venus:     SignOf(p.Longitudes[Venus]),
		Mars:      SignOf(p.Longitudes[Mars]),
		Jupiter:   SignOf(p.Longitudes[Jupiter]),
		Saturn:    SignOf(p.Longitudes[Saturn]),
	}
}

// DefaultPolarLimit is the default largest |latitude| for which an
// Ascendant is computed: the polar circles.
const DefaultPolarLimit = 66.5

// Calculator computes charts. The zero value is not usable; build one with
// NewCalculator. A Calculator is immutable and safe for concurrent use.
type Calculator struct {
	polarLimit float64
	validate   *validator.Validate
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithPolarLimit sets the largest |latitude| (degrees) for which the
// Ascendant is computed. Beyond it Chart fails with ErrAscendantUndefined.
func WithPolarLimit(deg float64) Option {
	return func(c *Calculator) {
		c.polarLimit = deg
	}
}

// NewCalculator returns a Calculator with the given options applied.
func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		polarLimit: DefaultPolarLimit,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !timeutil.Finite(c.polarLimit) || c.polarLimit <= 0 || c.polarLimit >= 90 {
		return nil, fmt.Errorf("polar limit %v must be in (0, 90)", c.polarLimit)
	}
	return c, nil
}

// PolarLimit returns the configured polar latitude limit.
func (c *Calculator) PolarLimit() float64 {
	return c.polarLimit
}

// Chart computes the natal chart for a birth moment and place.
func (c *Calculator) Chart(m BirthMoment, loc GeoCoordinate) (NatalChart, error) {
	p, err := c.Positions(m, loc)
	if err != nil {
		return NatalChart{}, err
	}
	return p.Chart(), nil
}

// Positions computes the longitudes, angles and Moon phase behind a chart.
func (c *Calculator) Positions(m BirthMoment, loc GeoCoordinate) (Positions, error) {
	jd, err := m.JulianDate()
	if err != nil {
		return Positions{}, err
	}
	if err := loc.Validate(); err != nil {
		return Positions{}, err
	}

	lons, err := EclipticLongitudes(jd)
	if err != nil {
		return Positions{}, err
	}

	eps, err := Obliquity(jd)
	if err != nil {
		return Positions{}, err
	}
	lst, err := SiderealTime(jd, loc.Lon)
	if err != nil {
		return Positions{}, err
	}

	asc, err := angles.Ascendant(lst, eps, loc.Lat, c.polarLimit)
	if err != nil {
		return Positions{}, fmt.Errorf("%w: |%.4f| > %.4f", ErrAscendantUndefined, loc.Lat, math.Min(c.polarLimit, 90-eps))
	}
	mc := angles.Midheaven(lst, eps)
	if !timeutil.Finite(asc, mc) {
		return Positions{}, fmt.Errorf("%w: chart angles", ErrNumericDomain)
	}
	lons[Ascendant] = asc

	return Positions{
		JulianDate:   jd,
		Obliquity:    eps,
		SiderealTime: lst,
		Longitudes:   lons,
		Midheaven:    mc,
		MoonPhase:    moonPhaseOf(lons[Sun], lons[Moon]),
		SunDistance:  sun.Distance(timeutil.JulianCenturies(jd)),
	}, nil
}

// EclipticLongitudes returns the geocentric ecliptic longitude of the Sun,
// Moon and five planets at the Julian Date jd, each in [0, 360). The
// returned map has no Ascendant entry.
func EclipticLongitudes(jd float64) (map[Body]float64, error) {
	if !timeutil.Finite(jd) {
		return nil, fmt.Errorf("%w: julian date %v", ErrNumericDomain, jd)
	}
	T := timeutil.JulianCenturies(jd)

	lons := make(map[Body]float64, len(Bodies))
	lons[Sun] = sun.EclipticLongitude(T)
	lons[Moon] = moon.EclipticLongitude(T)

	for _, p := range planets.All {
		lon, err := planets.EclipticLongitude(p, T)
		if err != nil {
			return nil, err
		}
		lons[planetBodies[p]] = lon
	}

	for _, b := range Bodies {
		if lon, ok := lons[b]; ok && !timeutil.Finite(lon) {
			return nil, fmt.Errorf("%w: %s longitude", ErrNumericDomain, b)
		}
	}
	return lons, nil
}

// EclipticLongitude returns the longitude of a single body at jd. The
// Ascendant depends on place and is rejected with ErrUnsupportedBody.
func EclipticLongitude(b Body, jd float64) (float64, error) {
	if !timeutil.Finite(jd) {
		return 0, fmt.Errorf("%w: julian date %v", ErrNumericDomain, jd)
	}
	T := timeutil.JulianCenturies(jd)

	switch b {
	case Sun:
		return sun.EclipticLongitude(T), nil
	case Moon:
		return moon.EclipticLongitude(T), nil
	}
	p, ok := bodyPlanets[b]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no ephemeris", ErrUnsupportedBody, b)
	}
	return planets.EclipticLongitude(p, T)
}

// Obliquity returns the mean obliquity of the ecliptic in degrees at jd.
func Obliquity(jd float64) (float64, error) {
	if !timeutil.Finite(jd) {
		return 0, fmt.Errorf("%w: julian date %v", ErrNumericDomain, jd)
	}
	return sidereal.MeanObliquity(timeutil.JulianCenturies(jd)), nil
}

// SiderealTime returns local mean sidereal time in degrees [0, 360) at jd
// for an observer at east-positive longitude lon.
func SiderealTime(jd, lon float64) (float64, error) {
	if !timeutil.Finite(jd, lon) {
		return 0, fmt.Errorf("%w: julian date %v, longitude %v", ErrNumericDomain, jd, lon)
	}
	return sidereal.Local(jd, lon), nil
}

// defaultCalculator is built per call; it carries no validator, which
// Chart and Positions don't need.
func defaultCalculator() *Calculator {
	return &Calculator{polarLimit: DefaultPolarLimit}
}

// ChartFor computes a natal chart with the default polar limit.
func ChartFor(m BirthMoment, loc GeoCoordinate) (NatalChart, error) {
	return defaultCalculator().Chart(m, loc)
}

// PositionsFor computes chart positions with the default polar limit.
func PositionsFor(m BirthMoment, loc GeoCoordinate) (Positions, error) {
	return defaultCalculator().Positions(m, loc)
}

// julianOf converts an instant to a Julian Date (UT).
func julianOf(t time.Time) float64 {
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	return timeutil.CivilToJulian(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), sec, 0)
}
