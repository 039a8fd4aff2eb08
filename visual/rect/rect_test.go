//go:build headless

package rect

import (
	"testing"

	"github.com/intuitionamiga/lumen/animate"
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/interpolate"
	"github.com/intuitionamiga/lumen/timecode"
	"github.com/intuitionamiga/lumen/visual"
)

func TestRenderFillsTextureWithEvaluatedColour(t *testing.T) {
	bundle, err := gpu.NewBundle(4, 4)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	defer bundle.Destroy()

	pool := bundle.NewTexturePool(gpu.FormatRGBA8UnormSRGB)
	tex, err := pool.Borrow()
	if err != nil {
		t.Fatalf("Borrow: %v", err)
	}

	r := New(interpolate.Vec4{X: 1, Y: 0, Z: 0, W: 1})
	if err := r.Init(bundle, visual.Config{Resolution: [2]int{4, 4}}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	frame := visual.FrameInfo{TimeCode: timecode.FromSeconds(0), Resolution: [2]int{4, 4}}
	r.Update(bundle, frame, frame)
	if err := r.Render(bundle, frame, frame, tex); err != nil {
		t.Fatalf("Render: %v", err)
	}

	px := tex.Pixels.Pix
	if px[0] != 255 || px[1] != 0 || px[2] != 0 || px[3] != 255 {
		t.Errorf("pixel 0 = %v, want opaque red", px[0:4])
	}
	last := len(px) - 4
	if px[last] != 255 || px[last+3] != 255 {
		t.Errorf("last pixel = %v, want opaque red (fill should cover entire texture)", px[last:last+4])
	}
}

func TestColorAnimatesAcrossUpdate(t *testing.T) {
	bundle, err := gpu.NewBundle(2, 2)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	defer bundle.Destroy()

	pool := bundle.NewTexturePool(gpu.FormatRGBA8UnormSRGB)
	tex, err := pool.Borrow()
	if err != nil {
		t.Fatalf("Borrow: %v", err)
	}

	r := New(interpolate.Vec4{X: 0, Y: 0, Z: 0, W: 1})
	r.Color.Keyframe(animate.Abs(timecode.FromSeconds(1)), interpolate.Vec4{X: 1, Y: 1, Z: 1, W: 1})

	mid := visual.FrameInfo{TimeCode: timecode.FromSeconds(0.5)}
	r.Update(bundle, mid, mid)
	if err := r.Render(bundle, mid, mid, tex); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := tex.Pixels.Pix[0]; got < 100 || got > 155 {
		t.Errorf("midpoint channel = %d, want roughly 127", got)
	}
}
