// Package search finds the palette entry nearest to a given color.
package search

import (
	"github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/palette"
)

// Match is a palette entry together with its distance from the target.
type Match struct {
	Family   string
	Slot     int
	Color    color.Color
	Distance int
}

// PerceptualMatch is a Match scored by CIE Lab distance instead of decimal
// distance.
type PerceptualMatch struct {
	Family   string
	Slot     int
	Color    color.Color
	Distance float64
}

// Closest scans every color in document order and returns the one whose
// 24-bit value is nearest to target. Ties go to the entry seen first. The
// boolean is false only when the document holds no colors.
func Closest(target color.Color, doc *palette.Document) (Match, bool) {
	best, ok := scan(doc, func(c color.Color) int {
		return abs(target.Decimal() - c.Decimal())
	})
	return Match(best), ok
}

// ClosestPerceptual is Closest using color.DistanceLab as the metric.
func ClosestPerceptual(target color.Color, doc *palette.Document) (PerceptualMatch, bool) {
	best, ok := scan(doc, func(c color.Color) float64 {
		return color.DistanceLab(target, c)
	})
	return PerceptualMatch(best), ok
}

// ClosestHex parses hex and runs Closest.
func ClosestHex(hex string, doc *palette.Document) (Match, bool, error) {
	target, err := color.ParseHex(hex)
	if err != nil {
		return Match{}, false, err
	}
	m, ok := Closest(target, doc)
	return m, ok, nil
}

type scored[D int | float64] struct {
	Family   string
	Slot     int
	Color    color.Color
	Distance D
}

func scan[D int | float64](doc *palette.Document, dist func(color.Color) D) (scored[D], bool) {
	var (
		best  scored[D]
		found bool
	)
	if doc == nil {
		return best, false
	}
	doc.Each(func(family string, e palette.Entry) bool {
		d := dist(e.Color)
		if !found || d < best.Distance {
			best = scored[D]{Family: family, Slot: e.Slot, Color: e.Color, Distance: d}
			found = true
		}
		return true
	})
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
