package color

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxDecimal is the largest 24-bit color value (#ffffff).
const MaxDecimal = 0xffffff

// ErrInvalidHexFormat is returned when a string is not six hex digits with an optional leading '#'.
var ErrInvalidHexFormat = errors.New("invalid hex format")

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them.
type Color struct {
	R, G, B uint8
}

// IsValidHex reports whether s is exactly six hexadecimal digits after an
// optional leading '#'.
func IsValidHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexDigit(s[i]); !ok {
			return false
		}
	}
	return true
}

// IsCanonicalHex reports whether s is the document form of a color: '#'
// followed by exactly six hexadecimal digits.
func IsCanonicalHex(s string) bool {
	return strings.HasPrefix(s, "#") && IsValidHex(s)
}

// ToDecimal converts a hex color string to its 24-bit integer value.
func ToDecimal(s string) (int, error) {
	if !IsValidHex(s) {
		return 0, fmt.Errorf("%w: %q: must be 6 hex digits", ErrInvalidHexFormat, s)
	}
	n := 0
	for _, b := range []byte(strings.TrimPrefix(s, "#")) {
		d, _ := hexDigit(b)
		n = n<<4 | d
	}
	return n, nil
}

// FromDecimal builds a Color from a 24-bit integer. Values outside
// [0, MaxDecimal] are clamped.
func FromDecimal(n int) Color {
	n = max(0, min(MaxDecimal, n))
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}

// ParseHex parses a hex color string like "#eb6f92" into a Color.
func ParseHex(s string) (Color, error) {
	n, err := ToDecimal(s)
	if err != nil {
		return Color{}, err
	}
	return FromDecimal(n), nil
}

// Decimal returns the color as a 24-bit integer, e.g. 0x3b82f6.
func (c Color) Decimal() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// DistanceLab returns the perceptual distance between two colors in CIE L*a*b* space.
func DistanceLab(a, b Color) float64 {
	return toColorful(a).DistanceLab(toColorful(b))
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}
