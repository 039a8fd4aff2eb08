// Package timecode implements the engine's fixed-point time representation
// and half-open time range algebra.
package timecode

import "fmt"

// TicksPerSecond is the tick rate: divisible by 24/30/60/120/240 without
// remainder.
const TicksPerSecond int64 = 60000

// Code is a signed count of ticks since the timeline origin.
type Code int64

// FromSeconds truncates: multiply then cast, matching ticks/ms exactness and
// seconds truncation.
func FromSeconds(s float64) Code {
	return Code(s * float64(TicksPerSecond))
}

// FromMillis is exact.
func FromMillis(ms int64) Code {
	return Code(ms * TicksPerSecond / 1000)
}

// FromTicks is exact, provided for symmetry with the other constructors.
func FromTicks(t int64) Code { return Code(t) }

// Seconds converts back to floating-point seconds.
func (c Code) Seconds() float64 {
	return float64(c) / float64(TicksPerSecond)
}

// Millis converts back to integer milliseconds.
func (c Code) Millis() int64 {
	return int64(c) * 1000 / TicksPerSecond
}

// Ticks returns the raw tick count.
func (c Code) Ticks() int64 { return int64(c) }

func (c Code) Add(d Code) Code { return c + d }
func (c Code) Sub(d Code) Code { return c - d }
func (c Code) Less(o Code) bool    { return c < o }
func (c Code) Greater(o Code) bool { return c > o }

func (c Code) String() string {
	return fmt.Sprintf("%gs", c.Seconds())
}

// FrameCount returns floor(seconds(c) * fps).
func FrameCount(c Code, fps float64) int {
	return int(c.Seconds() * fps)
}
