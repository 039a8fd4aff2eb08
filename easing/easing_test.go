package easing

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	for name, e := range Catalogue {
		t.Run(name, func(t *testing.T) {
			if got := e.Sample(0); math.Abs(got) > 1e-6 {
				t.Errorf("Sample(0) = %v, want ~0", got)
			}
			if got := e.Sample(1); math.Abs(got-1) > 1e-6 {
				t.Errorf("Sample(1) = %v, want ~1", got)
			}
		})
	}
}

func TestEaseInOutQuartSymmetric(t *testing.T) {
	got := EaseInOutQuart.Sample(0.5)
	if math.Abs(got-0.5) > 1e-6 {
		t.Errorf("Sample(0.5) = %v, want ~0.5", got)
	}
}

func TestMonotoneCurveIsMonotone(t *testing.T) {
	// EaseInOutQuad's control points define a monotone curve.
	prev := EaseInOutQuad.Sample(0)
	for i := 1; i <= 20; i++ {
		x := float64(i) / 20
		got := EaseInOutQuad.Sample(x)
		if got < prev-1e-9 {
			t.Errorf("Sample not monotone at x=%v: %v < %v", x, got, prev)
		}
		prev = got
	}
}

func TestLinearExtrapolation(t *testing.T) {
	e := NewCubicBezier(0.3, 0.3, 0.7, 0.7)
	below := e.Sample(-1)
	above := e.Sample(2)
	if below >= 0 {
		t.Errorf("Sample(-1) = %v, want < 0 given positive gradient at start", below)
	}
	if above <= 1 {
		t.Errorf("Sample(2) = %v, want > 1 given positive gradient at end", above)
	}
}
