// Package sink defines the frame hand-off contract downstream consumers
// implement.
package sink

import (
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/visual"
)

// Config is the render configuration handed to Configure.
type Config struct {
	Resolution [2]int
}

// Sink is the downstream consumer of rendered frames, responsible for
// encoding/writing them. The sink submits its own GPU work; the engine does
// not interpret sink errors beyond propagating them.
type Sink interface {
	// Configure is called once before rendering and returns the sink's
	// preferred output texture format.
	Configure(bundle *gpu.Bundle, cfg Config) (gpu.Format, error)

	// PublishFrame receives one rendered frame's texture. The sink is
	// responsible for any CPU readback and encoding to its destination.
	PublishFrame(bundle *gpu.Bundle, texture *gpu.Texture, frameIndex int, frame visual.FrameInfo) error

	// Finish flushes buffered output. Optional in spirit but always
	// called; a no-op implementation is valid.
	Finish(bundle *gpu.Bundle) error
}
