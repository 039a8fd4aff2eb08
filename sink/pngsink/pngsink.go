// Package pngsink is a reference Sink implementation: it encodes each
// published frame to a PNG file, and periodically writes a downsampled
// thumbnail alongside it.
package pngsink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/log"
	"github.com/intuitionamiga/lumen/sink"
	"github.com/intuitionamiga/lumen/visual"
)

// Sink writes one frame-%05d.png per published frame under Dir, using
// stdlib image/png. Every ThumbnailEvery'th frame (default 30) it also
// writes a thumb-%05d.png contact-sheet-style preview, downsampled with
// golang.org/x/image/draw.BiLinear.
type Sink struct {
	Dir             string
	ThumbnailEvery  int
	ThumbnailWidth  int
	ThumbnailHeight int

	resolution [2]int
}

// New returns a Sink writing into dir with the default thumbnail cadence.
func New(dir string) *Sink {
	return &Sink{
		Dir:             dir,
		ThumbnailEvery:  30,
		ThumbnailWidth:  160,
		ThumbnailHeight: 90,
	}
}

// Configure creates the output directory and requests FormatRGBA8Unorm,
// whose read-back bytes are encoded to PNG as they are: this reference sink
// has no format-conversion step of its own.
func (s *Sink) Configure(bundle *gpu.Bundle, cfg sink.Config) (gpu.Format, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("pngsink configure: %w", err)
	}
	s.resolution = cfg.Resolution
	if s.ThumbnailEvery <= 0 {
		s.ThumbnailEvery = 30
	}
	return gpu.FormatRGBA8Unorm, nil
}

// PublishFrame performs the CPU readback and PNG encode. A readback failure
// is a per-frame error: it is logged and the frame dropped, matching
// spec.md §7's error-handling taxonomy.
func (s *Sink) PublishFrame(bundle *gpu.Bundle, texture *gpu.Texture, frameIndex int, frame visual.FrameInfo) error {
	pixels, err := texture.Readback(bundle)
	if err != nil {
		log.Warn("pngsink: readback failed, dropping frame", "frame", frameIndex, "error", err)
		return nil
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: s.resolution[0] * 4,
		Rect:   image.Rect(0, 0, s.resolution[0], s.resolution[1]),
	}

	if err := s.writePNG(fmt.Sprintf("frame-%05d.png", frameIndex), img); err != nil {
		return err
	}

	if frameIndex%s.ThumbnailEvery == 0 {
		thumb := image.NewRGBA(image.Rect(0, 0, s.ThumbnailWidth, s.ThumbnailHeight))
		draw.BiLinear.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Src, nil)
		if err := s.writePNG(fmt.Sprintf("thumb-%05d.png", frameIndex), thumb); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sink) writePNG(name string, img image.Image) error {
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("pngsink: create %s: %w", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("pngsink: encode %s: %w", name, err)
	}
	return nil
}

// Finish is a no-op: every frame is flushed to disk as it's published.
func (s *Sink) Finish(bundle *gpu.Bundle) error { return nil }
