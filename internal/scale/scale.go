// Package scale picks scale slots for new colors within a family.
//
// Slots follow the usual design-token convention: higher numbers are darker.
// A color's position is derived from its 24-bit value, so pure white lands
// near 50 and pure black near 950.
package scale

import (
	"errors"
	"math"

	"github.com/jsvensson/palettekit/internal/color"
)

const (
	// DefaultSlot is used for the first color of an empty family.
	DefaultSlot = 500
	// MinSlot and MaxSlot bound every assigned slot.
	MinSlot = 25
	MaxSlot = 975
	// Step is the spacing between slots.
	Step = 25

	minScale = 50
	maxScale = 950
	maxProbe = 200
)

// ErrSlotCollisionUnresolved reports that no free slot was found within the
// probe range and the returned slot is already occupied.
var ErrSlotCollisionUnresolved = errors.New("no free slot within probe range")

// Base maps a color to its unsnapped scale value in [50, 950].
func Base(c color.Color) int {
	dark := float64(color.MaxDecimal-c.Decimal()) / color.MaxDecimal
	return int(math.Round(dark*(maxScale-minScale) + minScale))
}

// Target returns the preferred slot for c, before collision handling.
func Target(c color.Color) int {
	snapped := int(math.Round(float64(Base(c))/Step)) * Step
	return max(MinSlot, min(MaxSlot, snapped))
}

// Assign picks a slot for c given the slots already occupied in its family.
//
// An empty family gets DefaultSlot. Otherwise the preferred slot is used when
// free; if taken, slots are probed outward in steps of Step up to 200 away,
// lower side first. When every probed slot is taken the preferred slot is
// returned even though it collides; use AssignChecked to detect that case.
func Assign(occupied []int, c color.Color) int {
	slot, _ := assign(occupied, c)
	return slot
}

// AssignChecked is Assign but reports ErrSlotCollisionUnresolved when the
// returned slot is already occupied.
func AssignChecked(occupied []int, c color.Color) (int, error) {
	slot, ok := assign(occupied, c)
	if !ok {
		return slot, ErrSlotCollisionUnresolved
	}
	return slot, nil
}

// AssignHex is Assign for a hex string.
func AssignHex(occupied []int, hex string) (int, error) {
	c, err := color.ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return Assign(occupied, c), nil
}

func assign(occupied []int, c color.Color) (int, bool) {
	if len(occupied) == 0 {
		return DefaultSlot, true
	}

	taken := make(map[int]bool, len(occupied))
	for _, s := range occupied {
		taken[s] = true
	}

	target := Target(c)
	if !taken[target] {
		return target, true
	}

	for offset := Step; offset <= maxProbe; offset += Step {
		if lower := target - offset; lower >= MinSlot && !taken[lower] {
			return lower, true
		}
		if higher := target + offset; higher <= MaxSlot && !taken[higher] {
			return higher, true
		}
	}

	return target, false
}
