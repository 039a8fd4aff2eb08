// Package rect is a reference visual.Object implementation: a solid colour
// fill covering the clip's entire local extent. It exists so the engine's
// own tests have a concrete object to drive; it is not a production visual
// effect.
package rect

import (
	"github.com/intuitionamiga/lumen/animate"
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/interpolate"
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/visual"
)

// Rect fills its clip's render target with an animated solid colour, clamped
// to [0,1] per channel and read back as straight (non-premultiplied) alpha.
type Rect struct {
	Color *animate.Property[interpolate.Vec4]

	transform geom.Mat4
	evaluated interpolate.Vec4
}

// New builds a Rect holding colour constant at def until animated further
// via Color's builder methods.
func New(def interpolate.Vec4) *Rect {
	return &Rect{
		Color:     animate.NewProperty(def, interpolate.LerpVec4),
		transform: geom.IdentityMat4(),
		evaluated: def,
	}
}

// Init has no GPU resources to allocate: the texture pool already owns the
// render target this object draws into.
func (r *Rect) Init(bundle *gpu.Bundle, config visual.Config) error { return nil }

// SetTransform records the clip's cumulative transform. Rect does not use it
// for shaping (it always fills its target), but keeps it for subclassers
// that want to honour scale/position.
func (r *Rect) SetTransform(m geom.Mat4) { r.transform = m }

// Update evaluates Color at the clip-local time code; Render reads the
// evaluated value back out.
func (r *Rect) Update(bundle *gpu.Bundle, frame, local visual.FrameInfo) {
	r.evaluated = r.Color.Evaluate(local.TimeCode)
}

// Render clears dst to the evaluated colour, quantised to 8 bits per
// channel.
func (r *Rect) Render(bundle *gpu.Bundle, frame, local visual.FrameInfo, dst *gpu.Texture) error {
	c := r.evaluated
	return dst.Clear(bundle, toByte(c.X), toByte(c.Y), toByte(c.Z), toByte(c.W))
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}
