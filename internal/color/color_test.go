package color

import (
	"errors"
	"testing"
)

func TestIsValidHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#3b82f6", true},
		{"3b82f6", true},
		{"#AABBCC", true},
		{"aBcDeF", true},
		{"#000000", true},
		{"#fff", false},
		{"fff", false},
		{"#aabbccdd", false},
		{"##aabbcc", false},
		{"#zzzzzz", false},
		{"#aabbc ", false},
		{"#aabbcé", false},
		{"", false},
		{"#", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidHex(tt.input); got != tt.want {
				t.Errorf("IsValidHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCanonicalHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#3b82f6", true},
		{"#ABCDEF", true},
		{"3b82f6", false},
		{"#3b82f", false},
		{"notahex", false},
	}

	for _, tt := range tests {
		if got := IsCanonicalHex(tt.input); got != tt.want {
			t.Errorf("IsCanonicalHex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"#000000", 0, false},
		{"#ffffff", 16777215, false},
		{"FFFFFF", 16777215, false},
		{"#3b82f6", 0x3b82f6, false},
		{"#808080", 8421504, false},
		{"#ggg000", 0, true},
		{"#12345", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToDecimal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToDecimal(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHexFormat) {
					t.Errorf("ToDecimal(%q) error = %v, want ErrInvalidHexFormat", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ToDecimal(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"with hash", "#eb6f92", Color{235, 111, 146}, false},
		{"without hash", "eb6f92", Color{235, 111, 146}, false},
		{"black", "#000000", Color{0, 0, 0}, false},
		{"white", "#ffffff", Color{255, 255, 255}, false},
		{"uppercase", "#AABBCC", Color{170, 187, 204}, false},
		{"too short", "#fff", Color{}, true},
		{"too long", "#aabbccdd", Color{}, true},
		{"invalid chars", "#zzzzzz", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 0x3b82f6, MaxDecimal} {
		c := FromDecimal(n)
		if got := c.Decimal(); got != n {
			t.Errorf("FromDecimal(%d).Decimal() = %d", n, got)
		}
	}
}

func TestFromDecimalClamps(t *testing.T) {
	if got := FromDecimal(-5); got != (Color{}) {
		t.Errorf("FromDecimal(-5) = %v, want black", got)
	}
	if got := FromDecimal(MaxDecimal + 10); got != (Color{255, 255, 255}) {
		t.Errorf("FromDecimal(max+10) = %v, want white", got)
	}
}

func TestColorHex(t *testing.T) {
	c := Color{235, 111, 146}
	want := "#eb6f92"
	if got := c.Hex(); got != want {
		t.Errorf("Color.Hex() = %q, want %q", got, want)
	}
}

func TestColorHexZeroPadding(t *testing.T) {
	c := Color{0, 5, 10}
	want := "#00050a"
	if got := c.Hex(); got != want {
		t.Errorf("Color.Hex() = %q, want %q", got, want)
	}
}

func TestColorHexBare(t *testing.T) {
	c := Color{235, 111, 146}
	want := "eb6f92"
	if got := c.HexBare(); got != want {
		t.Errorf("Color.HexBare() = %q, want %q", got, want)
	}
}

func TestColorRGB(t *testing.T) {
	c := Color{235, 111, 146}
	want := "rgb(235, 111, 146)"
	if got := c.RGB(); got != want {
		t.Errorf("Color.RGB() = %q, want %q", got, want)
	}
}

func TestDistanceLab(t *testing.T) {
	red := Color{255, 0, 0}
	darkRed := Color{200, 0, 0}
	blue := Color{0, 0, 255}

	if d := DistanceLab(red, red); d != 0 {
		t.Errorf("DistanceLab(red, red) = %f, want 0", d)
	}
	if DistanceLab(red, darkRed) >= DistanceLab(red, blue) {
		t.Errorf("expected dark red to be perceptually closer to red than blue")
	}
}
