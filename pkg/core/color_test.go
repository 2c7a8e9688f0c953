package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColor_Constructors(t *testing.T) {
	if got := Black(); got != (Color{0, 0, 0, 255}) {
		t.Errorf("Black() = %v", got)
	}
	if got := Gray(0.5); got != (Color{0.5, 0.5, 0.5, 255}) {
		t.Errorf("Gray(0.5) = %v", got)
	}
	if got := NewColor(0.2, 0.6, 0.8, 100); got.A != 100 {
		t.Errorf("Expected alpha 100, got %d", got.A)
	}
}

func TestColor_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Color
		want Color
	}{
		{"scale keeps alpha", NewColor(0.2, 0.6, 0.8, 100).Multiply(0.5), NewColor(0.1, 0.3, 0.4, 100)},
		{"componentwise multiply", RGB(0.3, 1, 0.9).MultiplyColor(RGB(0.1, 0.2, 0.3)), RGB(0.03, 0.2, 0.27)},
		{"add", RGB(0.2, 0.1, 0.9).Add(RGB(0.1, 0.2, 0.3)), RGB(0.3, 0.3, 1.2)},
		{"sky blend", Gray(1).Lerp(RGB(0.5, 0.7, 1.0), 0.5), RGB(0.75, 0.85, 1.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.got, tt.want, approx); diff != "" {
				t.Errorf("unexpected color (-got +want):\n%s", diff)
			}
		})
	}
}

func TestColor_GammaCorrect(t *testing.T) {
	c := RGB(0.25, 0.81, 1.0)
	if diff := cmp.Diff(c.GammaCorrect(2), RGB(0.5, 0.9, 1.0), approx); diff != "" {
		t.Errorf("gamma 2 (-got +want):\n%s", diff)
	}
	for _, gamma := range []float64{0, -1} {
		if got := c.GammaCorrect(gamma); got != c {
			t.Errorf("gamma %f should be a passthrough, got %v", gamma, got)
		}
	}
}

func TestColor_Clamp(t *testing.T) {
	got := RGB(2, 0.8, -3).Clamp(0, 1)
	if diff := cmp.Diff(got, RGB(1, 0.8, 0), approx); diff != "" {
		t.Errorf("unexpected clamp (-got +want):\n%s", diff)
	}
}
