package natalglide

import (
	"fmt"
	"math"
	"strings"

	"github.com/thurmanmarka/natalglide/internal/timeutil"
)

// ZodiacSign is one of the twelve 30° sectors of ecliptic longitude,
// numbered from Aries (0°–30°) to Pisces (330°–360°).
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignWidth is the width of every zodiac sector in degrees.
const SignWidth = 30.0

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Element is the classical element of a sign.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

// Modality is the quality (cardinal, fixed, mutable) of a sign.
type Modality string

const (
	Cardinal Modality = "Cardinal"
	Fixed    Modality = "Fixed"
	Mutable  Modality = "Mutable"
)

// SignOf maps any finite ecliptic longitude to its zodiac sign. The input is
// normalized first, so -10° is Pisces and 370° is Aries. Boundaries belong to
// the sign that starts there: exactly 30° is Taurus.
func SignOf(lon float64) ZodiacSign {
	idx := int(math.Floor(timeutil.Normalize360(lon) / SignWidth))
	// Guard the top edge against rounding in the division.
	if idx > int(Pisces) {
		idx = int(Pisces)
	}
	return ZodiacSign(idx)
}

// DegreeInSign returns how far lon lies into its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	n := timeutil.Normalize360(lon)
	return n - float64(SignOf(n))*SignWidth
}

// Cusp returns the ecliptic longitude at which s begins.
func (s ZodiacSign) Cusp() float64 {
	return float64(s) * SignWidth
}

// Valid reports whether s is one of the twelve signs.
func (s ZodiacSign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s ZodiacSign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ZodiacSign(%d)", int(s))
	}
	return signNames[s]
}

// Element returns Fire, Earth, Air or Water, cycling from Aries.
func (s ZodiacSign) Element() Element {
	switch int(s) % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// Modality returns Cardinal, Fixed or Mutable, cycling from Aries.
func (s ZodiacSign) Modality() Modality {
	switch int(s) % 3 {
	case 0:
		return Cardinal
	case 1:
		return Fixed
	default:
		return Mutable
	}
}

// Next returns the following sign, wrapping Pisces to Aries.
func (s ZodiacSign) Next() ZodiacSign {
	return (s + 1) % 12
}

// Prev returns the preceding sign, wrapping Aries to Pisces.
func (s ZodiacSign) Prev() ZodiacSign {
	return (s + 11) % 12
}

// ParseSign parses a sign name case-insensitively.
func ParseSign(name string) (ZodiacSign, error) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ZodiacSign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown zodiac sign %q", name)
}

// MarshalText encodes the sign as its name, so charts serialize as
// {"sun":"Capricorn",...}.
func (s ZodiacSign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid zodiac sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a sign name.
func (s *ZodiacSign) UnmarshalText(b []byte) error {
	v, err := ParseSign(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
