package color

import "testing"

func TestBrighten(t *testing.T) {
	tests := []struct {
		name   string
		in     Color
		amount float64
		want   Color
	}{
		{"black to mid gray", Color{}, 0.5, Color{R: 128, G: 128, B: 128}},
		{"white stays white", Color{R: 255, G: 255, B: 255}, 0.3, Color{R: 255, G: 255, B: 255}},
		{"zero amount", Color{R: 59, G: 130, B: 246}, 0, Color{R: 59, G: 130, B: 246}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Brighten(tt.in, tt.amount); got != tt.want {
				t.Errorf("Brighten(%s, %v) = %s, want %s", tt.in, tt.amount, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	if got := Darken(Color{R: 255, G: 255, B: 255}, 1); got != (Color{}) {
		t.Errorf("Darken(white, 1) = %s, want #000000", got)
	}
	in := Color{R: 239, G: 68, B: 68}
	if got := Darken(in, 0.2); got.Decimal() >= in.Decimal() {
		t.Errorf("Darken(%s, 0.2) = %s, want a darker color", in, got)
	}
}

func TestBlend(t *testing.T) {
	a := Color{R: 255}
	b := Color{B: 255}
	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend(t=0) = %s, want %s", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend(t=1) = %s, want %s", got, b)
	}
	if got := Blend(a, b, 2); got != b {
		t.Errorf("Blend(t=2) = %s, want clamped to %s", got, b)
	}
}
