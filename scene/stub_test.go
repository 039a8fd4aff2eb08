package scene

import (
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/visual"
)

// stubVisual is a minimal visual.Object used only to exercise Clip's
// attach/replace semantics; it renders nothing.
type stubVisual struct{}

func (s *stubVisual) Init(b *gpu.Bundle, cfg visual.Config) error    { return nil }
func (s *stubVisual) SetTransform(m geom.Mat4)                      {}
func (s *stubVisual) Update(b *gpu.Bundle, frame, local visual.FrameInfo) {}
func (s *stubVisual) Render(b *gpu.Bundle, frame, local visual.FrameInfo, dst *gpu.Texture) error {
	return nil
}
