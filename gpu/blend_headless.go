//go:build headless

package gpu

import "sync"

// blendPipeline is the headless stand-in for a GPU blend pipeline: plain
// per-pixel alpha compositing, parallelised across row strips exactly as
// the teacher's video_compositor.go blendFrame1to1 splits work across
// goroutines guarded by a sync.WaitGroup.
type blendPipeline struct{}

// BlendModes holds the engine's named blend pipelines.
type BlendModes struct {
	Normal *blendPipeline
}

// NewBlendModes builds the headless blend pipelines. There is no GPU
// pipeline object to construct or cache here.
func NewBlendModes(b *Bundle, target Format) (*BlendModes, error) {
	return &BlendModes{Normal: &blendPipeline{}}, nil
}

const stripHeight = 60

// Blend writes the "A over B" composite into target using straight alpha
// compositing, one goroutine per row strip, all running concurrently.
func (bm *blendPipeline) Blend(b *Bundle, a, src, target *Texture) error {
	h := target.Pixels.Bounds().Dy()
	w := target.Pixels.Bounds().Dx()

	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += stripHeight {
		y1 := y0 + stripHeight
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			blendStrip(a, src, target, w, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return nil
}

func blendStrip(a, src, target *Texture, w, y0, y1 int) {
	aPix := a.Pixels.Pix
	srcPix := src.Pixels.Pix
	dstPix := target.Pixels.Pix
	stride := target.Pixels.Stride

	for y := y0; y < y1; y++ {
		rowStart := y * stride
		for x := 0; x < w; x++ {
			i := rowStart + x*4
			ar := float64(aPix[i+0])
			ag := float64(aPix[i+1])
			ab := float64(aPix[i+2])
			aa := float64(aPix[i+3]) / 255.0

			sr := float64(srcPix[i+0])
			sg := float64(srcPix[i+1])
			sb := float64(srcPix[i+2])
			sa := float64(srcPix[i+3])

			dstPix[i+0] = uint8(ar*aa + sr*(1-aa))
			dstPix[i+1] = uint8(ag*aa + sg*(1-aa))
			dstPix[i+2] = uint8(ab*aa + sb*(1-aa))
			dstPix[i+3] = uint8(aa*255 + sa*(1-aa))
		}
	}
}
