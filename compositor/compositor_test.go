//go:build headless

package compositor

import (
	"testing"

	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/interpolate"
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/scene"
	"github.com/intuitionamiga/lumen/sink"
	"github.com/intuitionamiga/lumen/timecode"
	"github.com/intuitionamiga/lumen/visual"
	"github.com/intuitionamiga/lumen/visual/rect"
)

// countingSink records every published frame's index and the colour of its
// first pixel, so tests can assert on both frame count and content without
// touching disk.
type countingSink struct {
	configured  bool
	resolution  [2]int
	published   []int
	firstPixels [][4]byte
	finished    bool
}

func (s *countingSink) Configure(bundle *gpu.Bundle, cfg sink.Config) (gpu.Format, error) {
	s.configured = true
	s.resolution = cfg.Resolution
	return gpu.FormatRGBA8Unorm, nil
}

func (s *countingSink) PublishFrame(bundle *gpu.Bundle, texture *gpu.Texture, frameIndex int, frame visual.FrameInfo) error {
	pixels, err := texture.Readback(bundle)
	if err != nil {
		return err
	}
	var first [4]byte
	copy(first[:], pixels[0:4])
	s.published = append(s.published, frameIndex)
	s.firstPixels = append(s.firstPixels, first)
	return nil
}

func (s *countingSink) Finish(bundle *gpu.Bundle) error {
	s.finished = true
	return nil
}

func TestEmptyProjectPublishesDefaultDurationFrames(t *testing.T) {
	project := scene.NewProject()
	s := &countingSink{}

	cfg := Config{Resolution: [2]int{8, 8}, FPS: 60}
	if err := Render(project, cfg, s); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := timecode.FrameCount(scene.DefaultProjectDuration, cfg.FPS)
	if len(s.published) != want {
		t.Fatalf("published %d frames, want %d", len(s.published), want)
	}
	if !s.configured || !s.finished {
		t.Errorf("Configure/Finish not both called: configured=%v finished=%v", s.configured, s.finished)
	}
}

func TestStaticRedRectangleFillsEveryPublishedFrame(t *testing.T) {
	project := scene.NewProject()
	clip := scene.NewClip(timecode.NewRange(0, timecode.FromSeconds(1)))
	clip.AttachVideo(rect.New(interpolate.Vec4{X: 1, Y: 0, Z: 0, W: 1}))
	project.AddClip(clip)

	s := &countingSink{}
	cfg := Config{Resolution: [2]int{4, 4}, FPS: 10}
	if err := Render(project, cfg, s); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(s.published) != 10 {
		t.Fatalf("published %d frames, want 10", len(s.published))
	}
	for i, px := range s.firstPixels {
		if px[0] != 255 || px[3] != 255 {
			t.Errorf("frame %d pixel = %v, want opaque red", i, px)
		}
	}
}

func TestClipOutsideRangeIsCulledButFramesStillPublish(t *testing.T) {
	project := scene.NewProject()
	// Clip only live in [0.5s, 1s) of a 1s project; frames before 0.5s should
	// see the transparent background, not the rectangle.
	clip := scene.NewClip(timecode.NewRange(timecode.FromSeconds(0.5), timecode.FromSeconds(1)))
	clip.AttachVideo(rect.New(interpolate.Vec4{X: 0, Y: 1, Z: 0, W: 1}))
	project.AddClip(clip)

	background := scene.NewClip(timecode.NewRange(0, timecode.FromSeconds(1)))
	project.AddClip(background)

	s := &countingSink{}
	cfg := Config{Resolution: [2]int{2, 2}, FPS: 10}
	if err := Render(project, cfg, s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(s.published) != 10 {
		t.Fatalf("published %d frames, want 10", len(s.published))
	}

	for i, px := range s.firstPixels {
		t.Run("", func(t *testing.T) {
			isGreen := px[1] == 255 && px[0] == 0
			if i < 5 && isGreen {
				t.Errorf("frame %d should be culled (before clip start), got green", i)
			}
			if i >= 5 && !isGreen {
				t.Errorf("frame %d should show the rectangle, got %v", i, px)
			}
		})
	}
}

func TestNestedClipComposesChildOverParentTransform(t *testing.T) {
	project := scene.NewProject()
	parent := scene.NewClip(timecode.NewRange(0, timecode.FromSeconds(1)))
	child := scene.NewClip(timecode.NewRange(0, timecode.FromSeconds(1)))
	child.AttachVideo(rect.New(interpolate.Vec4{X: 0, Y: 0, Z: 1, W: 1}))
	parent.Transform.Position = geom.Vec3{X: 1, Y: 2, Z: 0}
	parent.AddClip(child)
	project.AddClip(parent)

	s := &countingSink{}
	cfg := Config{Resolution: [2]int{2, 2}, FPS: 10}
	if err := Render(project, cfg, s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i, px := range s.firstPixels {
		if px[2] != 255 || px[3] != 255 {
			t.Errorf("frame %d = %v, want opaque blue from nested clip", i, px)
		}
	}
}
