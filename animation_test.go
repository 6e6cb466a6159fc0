package spotlight

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// sameCurve compares two easing functions by sampling them.
func sameCurve(a, b ease.TweenFunc) bool {
	for _, x := range []float32{0, 0.13, 0.5, 0.87, 1} {
		if a(x, 0, 1, 1) != b(x, 0, 1, 1) {
			return false
		}
	}
	return true
}

func TestParseEase(t *testing.T) {
	tests := []struct {
		name string
		want ease.TweenFunc
	}{
		{"", ease.OutQuart},
		{"power3.out", ease.OutQuart},
		{"power1.in", ease.InQuad},
		{"power2.inOut", ease.InOutCubic},
		{"power4.out", ease.OutQuint},
		{"sine.inOut", ease.InOutSine},
		{"expo", ease.OutExpo},
		{"back.in", ease.InBack},
		{"bounce.out", ease.OutBounce},
		{"elastic.out(1, 0.9)", ease.OutElastic},
		{"  Circ.InOut ", ease.InOutCirc},
		{"linear", ease.Linear},
		{"none", ease.Linear},
	}
	for _, tt := range tests {
		got, err := ParseEase(tt.name)
		if err != nil {
			t.Errorf("ParseEase(%q) error: %v", tt.name, err)
			continue
		}
		if !sameCurve(got, tt.want) {
			t.Errorf("ParseEase(%q) returned the wrong curve", tt.name)
		}
	}
}

func TestParseEaseErrors(t *testing.T) {
	for _, name := range []string{"wobble.out", "power3.sideways", "power9"} {
		if _, err := ParseEase(name); err == nil {
			t.Errorf("ParseEase(%q) expected error", name)
		}
	}
}

func TestMustParseEaseFallsBack(t *testing.T) {
	if !sameCurve(MustParseEase("wobble"), ease.OutQuart) {
		t.Error("MustParseEase should fall back to the default curve")
	}
	if !sameCurve(MustParseEase("quad.in"), ease.InQuad) {
		t.Error("MustParseEase should pass valid names through")
	}
}

func TestEaseEndpoints(t *testing.T) {
	for family := range easeFamilies {
		for _, variant := range []string{"in", "out", "inout"} {
			fn, err := ParseEase(family + "." + variant)
			if err != nil {
				t.Fatal(err)
			}
			if got := fn(0, 0, 1, 1); got < -0.01 || got > 0.01 {
				t.Errorf("%s.%s(0) = %v, want 0", family, variant, got)
			}
			if got := fn(1, 0, 1, 1); got < 0.99 || got > 1.01 {
				t.Errorf("%s.%s(1) = %v, want 1", family, variant, got)
			}
		}
	}
}
