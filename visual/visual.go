// Package visual defines the polymorphic contract the compositor drives:
// any visual object implementing Object can be attached to a clip.
package visual

import (
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/timecode"
)

// FrameInfo describes one output frame, either globally or re-based to a
// clip's local time.
type FrameInfo struct {
	TimeCode   timecode.Code
	Progress   float64
	Resolution [2]int
}

// Object is the core capability every visual object must implement.
type Object interface {
	// Init is called once before rendering, and may allocate GPU resources.
	Init(bundle *gpu.Bundle, config Config) error

	// SetTransform is called each frame before Update with the clip's
	// cumulative transform.
	SetTransform(m geom.Mat4)

	// Update evaluates animated properties and uploads uniforms. Called on
	// every frame the object is live.
	Update(bundle *gpu.Bundle, frame, local FrameInfo)

	// Render emits GPU commands that write the object's visuals into dst.
	// dst is a render-attachment texture matching the engine's internal
	// colour target; the implementation must clear it to transparent
	// before drawing.
	Render(bundle *gpu.Bundle, frame, local FrameInfo, dst *gpu.Texture) error
}

// Durationer is an optional capability: objects that know their own
// intrinsic duration implement it so Clip.InferDuration can consume it.
type Durationer interface {
	Duration() (timecode.Code, bool)
}

// Cloner is an optional capability for objects that carry GPU resources:
// Clone must discard GPU handles and keep only transport/animation state,
// requiring a fresh Init call on the result before use.
type Cloner interface {
	Clone() Object
}

// Config is the render configuration passed to Init: the render resolution
// and the engine's internal working colour format. Init runs before the
// sink is configured, so the sink's format is not part of it.
type Config struct {
	Resolution [2]int
	ColorFormat gpu.Format
}
