package color

import "github.com/lucasb-eyer/go-colorful"

// Brighten returns c with its HSL lightness raised by amount (0..1).
func Brighten(c Color, amount float64) Color {
	h, s, l := toColorful(c).Hsl()
	return fromColorful(colorful.Hsl(h, s, min(1, l+amount)))
}

// Darken returns c with its HSL lightness lowered by amount (0..1).
func Darken(c Color, amount float64) Color {
	h, s, l := toColorful(c).Hsl()
	return fromColorful(colorful.Hsl(h, s, max(0, l-amount)))
}

// Blend mixes a and b in Lab space; t=0 gives a, t=1 gives b.
func Blend(a, b Color, t float64) Color {
	return fromColorful(toColorful(a).BlendLab(toColorful(b), max(0, min(1, t))))
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
