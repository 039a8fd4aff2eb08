package timecode

import "testing"

func TestFromSeconds(t *testing.T) {
	cases := []struct {
		name string
		secs float64
		want Code
	}{
		{"one second", 1.0, Code(TicksPerSecond)},
		{"half second", 0.5, Code(TicksPerSecond / 2)},
		{"zero", 0.0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FromSeconds(c.secs); got != c.want {
				t.Errorf("FromSeconds(%v) = %v, want %v", c.secs, got, c.want)
			}
		})
	}
}

func TestMillisRoundTrip(t *testing.T) {
	c := FromMillis(1500)
	if got := c.Millis(); got != 1500 {
		t.Errorf("Millis() = %v, want 1500", got)
	}
}

func TestFrameCount(t *testing.T) {
	d := FromSeconds(5)
	if got := FrameCount(d, 60); got != 300 {
		t.Errorf("FrameCount(5s, 60fps) = %v, want 300", got)
	}
}

func TestRangeContains(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		t     Code
		want  bool
	}{
		{"unbounded always true", Unbounded(), FromSeconds(1000), true},
		{"bounded inside", NewRange(FromSeconds(0), FromSeconds(1)), FromSeconds(0.5), true},
		{"bounded at start inclusive", NewRange(FromSeconds(0), FromSeconds(1)), FromSeconds(0), true},
		{"bounded at end exclusive", NewRange(FromSeconds(0), FromSeconds(1)), FromSeconds(1), false},
		{"bounded before start", NewRange(FromSeconds(2), FromSeconds(3)), FromSeconds(1.5), false},
		{"lower bound only inside", From(FromSeconds(1)), FromSeconds(5), true},
		{"lower bound only before", From(FromSeconds(1)), FromSeconds(0), false},
		{"upper bound only inside", Until(FromSeconds(1)), FromSeconds(0.5), true},
		{"upper bound only at bound excluded", Until(FromSeconds(1)), FromSeconds(1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.r.Contains(c.t); got != c.want {
				t.Errorf("Contains(%v) = %v, want %v", c.t, got, c.want)
			}
		})
	}
}

func TestMakeAbsolute(t *testing.T) {
	parent := NewRange(FromSeconds(10), FromSeconds(20))
	child := NewRange(FromSeconds(1), FromSeconds(3))

	abs := child.MakeAbsolute(parent)
	if *abs.Start != FromSeconds(11) {
		t.Errorf("Start = %v, want 11s", abs.Start.Seconds())
	}
	if *abs.End != FromSeconds(14) {
		t.Errorf("End = %v, want 14s", abs.End.Seconds())
	}
}

func TestMakeAbsoluteClampsToParentDuration(t *testing.T) {
	parent := NewRange(FromSeconds(0), FromSeconds(2))
	child := NewRange(FromSeconds(1), FromSeconds(5))

	// abs_start = 1s; parent duration = 2s; own End (5s) is clamped to the
	// 2s parent duration before being added to abs_start: 1s + 2s = 3s.
	abs := child.MakeAbsolute(parent)
	if *abs.End != FromSeconds(3) {
		t.Errorf("End = %v, want 3s (abs_start + clamped duration)", abs.End.Seconds())
	}
}

func TestMakeAbsoluteMissingEndPropagates(t *testing.T) {
	parent := From(FromSeconds(0))
	child := From(FromSeconds(1))

	abs := child.MakeAbsolute(parent)
	if abs.End != nil {
		t.Errorf("End = %v, want nil", abs.End)
	}
}

func TestSetDuration(t *testing.T) {
	r := From(FromSeconds(2))
	r.SetDuration(FromSeconds(3))
	if *r.End != FromSeconds(5) {
		t.Errorf("End = %v, want 5s", r.End.Seconds())
	}
}
