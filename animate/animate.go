// Package animate implements keyframe-based animated properties: ordered
// keyframe sequences with absolute/relative placement, hold segments, and
// eased evaluation.
package animate

import (
	"github.com/intuitionamiga/lumen/easing"
	"github.com/intuitionamiga/lumen/timecode"
)

// Keyframe is a single (time, value, easing?) point. Value is any type the
// caller's Interpolator can combine; easing may be nil, meaning linear.
type Keyframe[T any] struct {
	Time   timecode.Code
	Value  T
	Easing easing.Easing
}

// Interpolator combines two values of T at parameter u in [0,1]. Host code
// supplies this per value type (e.g. interpolate.Scalar[float64]).
type Interpolator[T any] func(a, b T, u float64) T

// Property is a default value plus an ordered, strictly non-decreasing
// keyframe sequence. The first keyframe is compared against an implicit
// virtual keyframe at time 0 holding Default.
type Property[T any] struct {
	Default     T
	Keyframes   []Keyframe[T]
	interpolate Interpolator[T]
}

// NewProperty starts a builder at the given default value, using interp to
// combine values during evaluation.
func NewProperty[T any](def T, interp Interpolator[T]) *Property[T] {
	return &Property[T]{Default: def, interpolate: interp}
}

// Placement selects how a keyframe's time code is resolved relative to the
// timeline (Abs) or the previously placed keyframe (Rel).
type Placement struct {
	relative bool
	offset   timecode.Code
}

// Abs places a keyframe at an absolute time from the timeline origin.
func Abs(t timecode.Code) Placement { return Placement{relative: false, offset: t} }

// Rel places a keyframe after the previously placed keyframe (or after
// origin if none has been placed yet).
func Rel(d timecode.Code) Placement { return Placement{relative: true, offset: d} }

func (p *Property[T]) resolve(pl Placement) timecode.Code {
	if !pl.relative {
		return pl.offset
	}
	if len(p.Keyframes) == 0 {
		return pl.offset
	}
	return p.Keyframes[len(p.Keyframes)-1].Time + pl.offset
}

// Keyframe appends a keyframe at the resolved placement with no easing
// (linear). When the resolved time equals 0, the keyframe replaces Default
// instead of being appended.
func (p *Property[T]) Keyframe(pl Placement, value T) *Property[T] {
	return p.KeyframeEase(pl, value, nil)
}

// KeyframeEase appends a keyframe at the resolved placement using the given
// easing (nil means linear).
func (p *Property[T]) KeyframeEase(pl Placement, value T, ease easing.Easing) *Property[T] {
	t := p.resolve(pl)
	if t == 0 {
		p.Default = value
		return p
	}
	p.Keyframes = append(p.Keyframes, Keyframe[T]{Time: t, Value: value, Easing: ease})
	return p
}

// Hold appends a keyframe at last.Time+duration (or duration from origin if
// empty) whose value repeats the previous value.
func (p *Property[T]) Hold(duration timecode.Code) *Property[T] {
	var prevValue T
	var baseTime timecode.Code
	if len(p.Keyframes) > 0 {
		last := p.Keyframes[len(p.Keyframes)-1]
		prevValue = last.Value
		baseTime = last.Time
	} else {
		prevValue = p.Default
		baseTime = 0
	}
	t := baseTime + duration
	if t == 0 {
		p.Default = prevValue
		return p
	}
	p.Keyframes = append(p.Keyframes, Keyframe[T]{Time: t, Value: prevValue})
	return p
}

// Build finalises the builder. Property is already usable mid-build; Build
// exists for readability at call sites that chain builder calls.
func (p *Property[T]) Build() *Property[T] { return p }

// Evaluate returns the property's value at time t. At or after the last
// keyframe's time it returns the last keyframe's value.
func (p *Property[T]) Evaluate(t timecode.Code) T {
	if len(p.Keyframes) == 0 {
		return p.Default
	}

	last := p.Keyframes[len(p.Keyframes)-1]
	if t >= last.Time {
		return last.Value
	}

	first := p.Keyframes[0]
	if t <= first.Time {
		return p.segment(Keyframe[T]{Time: 0, Value: p.Default}, first, t)
	}

	for i := 1; i < len(p.Keyframes); i++ {
		cur := p.Keyframes[i]
		if cur.Time >= t {
			return p.segment(p.Keyframes[i-1], cur, t)
		}
	}

	return p.Keyframes[len(p.Keyframes)-1].Value
}

// segment interpolates between prev and cur at query time t, per spec:
// u = (t-prev.Time)/(cur.Time-prev.Time), eased by cur.Easing if present,
// then combined via the property's Interpolator. prev.Time == cur.Time is
// special-cased to avoid division by zero, returning cur.Value directly.
func (p *Property[T]) segment(prev, cur Keyframe[T], t timecode.Code) T {
	if prev.Time == cur.Time {
		return cur.Value
	}
	u := float64(t-prev.Time) / float64(cur.Time-prev.Time)
	if cur.Easing != nil {
		u = cur.Easing.Sample(u)
	}
	return p.interpolate(prev.Value, cur.Value, u)
}
