// Package compositor implements the per-frame tree walk, blend ordering,
// and sink handoff described in spec.md §4.9, grounded on the teacher's own
// video_compositor.go per-frame composite/blend loop.
package compositor

import (
	"github.com/intuitionamiga/lumen/gpu"
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/log"
	"github.com/intuitionamiga/lumen/scene"
	"github.com/intuitionamiga/lumen/sink"
	"github.com/intuitionamiga/lumen/timecode"
	"github.com/intuitionamiga/lumen/visual"
)

// Config is the render configuration the driver is invoked with.
type Config struct {
	Resolution [2]int
	FPS        float64
}

// pools bundles the two texture pools and the two blend pipelines a render
// needs: the internal working-format pool and blend modes, and the
// sink-format pool and blend modes built from the sink's preferred output
// format.
type pools struct {
	internal *gpu.Pool[*gpu.Texture]
	sinkPool *gpu.Pool[*gpu.Texture]
	blend    *gpu.BlendModes
	sinkBlend *gpu.BlendModes
}

// Render is the single compositor entry point: walks project once per
// frame, composites each top-level clip, blends the results into a rolling
// canvas, and hands the result to sink.
func Render(project *scene.Project, cfg Config, s sink.Sink) error {
	bundle, err := gpu.NewBundle(cfg.Resolution[0], cfg.Resolution[1])
	if err != nil {
		return err
	}
	defer bundle.Destroy()

	if err := visitAll(project, func(v visual.Object) error {
		return v.Init(bundle, visual.Config{Resolution: cfg.Resolution, ColorFormat: gpu.FormatRGBA8UnormSRGB})
	}); err != nil {
		return err
	}

	sinkFormat, err := s.Configure(bundle, sink.Config{Resolution: cfg.Resolution})
	if err != nil {
		return err
	}

	internalBlend, err := gpu.NewBlendModes(bundle, gpu.FormatRGBA8UnormSRGB)
	if err != nil {
		return err
	}
	sinkBlend, err := gpu.NewBlendModes(bundle, sinkFormat)
	if err != nil {
		return err
	}

	p := &pools{
		internal:  bundle.NewTexturePool(gpu.FormatRGBA8UnormSRGB),
		sinkPool:  bundle.NewTexturePool(sinkFormat),
		blend:     internalBlend,
		sinkBlend: sinkBlend,
	}

	frames := project.FrameCount(cfg.FPS)
	projectRange := timecode.NewRange(0, project.Duration())

	for f := 0; f < frames; f++ {
		if err := renderFrame(bundle, project, p, cfg, projectRange, f, frames, s); err != nil {
			return err
		}
	}

	if err := s.Finish(bundle); err != nil {
		return err
	}

	p.internal.WarnIfLeaked()
	p.sinkPool.WarnIfLeaked()
	return nil
}

func renderFrame(bundle *gpu.Bundle, project *scene.Project, p *pools, cfg Config,
	projectRange timecode.Range, f, frames int, s sink.Sink) error {

	t := timecode.FromSeconds(float64(f) / cfg.FPS)
	progress := float64(f) / float64(frames)
	frame := visual.FrameInfo{TimeCode: t, Progress: progress, Resolution: cfg.Resolution}

	// canvas and blended are the rolling composite: canvas is read as the
	// background layer of the first blend, and blended may be read back
	// unwritten if every top-level clip is culled this frame, so both must
	// start transparent rather than carrying over a previous frame's pixels
	// from the pool (spec §4.9 step 6's "fresh canvas" invariant).
	canvas, err := borrowCleared(bundle, p.internal)
	if err != nil {
		return err
	}
	blended, err := borrowCleared(bundle, p.internal)
	if err != nil {
		return err
	}

	for _, clip := range project.Clips {
		output, err := renderClip(bundle, clip, frame, projectRange, geom.IdentityMat4(), p.internal, p.blend)
		if err != nil {
			return err
		}
		if output != nil {
			canvas, blended = blended, canvas
			if err := p.blend.Normal.Blend(bundle, output, canvas, blended); err != nil {
				log.Warn("per-frame blend failed, dropping frame", "frame", f, "error", err)
				p.internal.Return(output)
				p.internal.Return(canvas)
				p.internal.Return(blended)
				return nil
			}
			p.internal.Return(output)
		}
	}

	// sinkCanvas is read as the final blend's background layer, so it too
	// must start transparent; sinkBlended is the blend's full-frame output
	// and is always completely overwritten by the unconditional Blend call
	// below, so it needs no pre-clear.
	sinkCanvas, err := borrowCleared(bundle, p.sinkPool)
	if err != nil {
		return err
	}
	sinkBlended, err := p.sinkPool.Borrow()
	if err != nil {
		return err
	}
	if err := p.sinkBlend.Normal.Blend(bundle, blended, sinkCanvas, sinkBlended); err != nil {
		log.Warn("sink blend failed, dropping frame", "frame", f, "error", err)
		p.internal.Return(canvas)
		p.internal.Return(blended)
		p.sinkPool.Return(sinkCanvas)
		p.sinkPool.Return(sinkBlended)
		return nil
	}

	p.internal.Return(canvas)
	p.internal.Return(blended)
	p.sinkPool.Return(sinkCanvas)

	if err := s.PublishFrame(bundle, sinkBlended, f, frame); err != nil {
		return err
	}
	p.sinkPool.Return(sinkBlended)
	return nil
}

// renderClip implements spec.md §4.9's render_clip: cull against the
// clip's absolute range, recurse into children in insertion order (each
// composited before the clip's own visual object, which is drawn on top),
// then render the clip's own visual object if present.
func renderClip(bundle *gpu.Bundle, clip *scene.Clip, frame visual.FrameInfo,
	parentRange timecode.Range, parentTransform geom.Mat4,
	pool *gpu.Pool[*gpu.Texture], blend *gpu.BlendModes) (*gpu.Texture, error) {

	absRange := clip.Range().MakeAbsolute(parentRange)
	if !absRange.Contains(frame.TimeCode) {
		return nil, nil
	}

	absTransform := geom.Mul(parentTransform, clip.Transform.Matrix())

	// Same "fresh canvas" requirement as renderFrame: a clip with no live
	// children and no attached video falls through to returning blended
	// unwritten, so both borrows must start transparent rather than
	// whatever the pool's previous tenant left behind.
	canvas, err := borrowCleared(bundle, pool)
	if err != nil {
		return nil, err
	}
	blended, err := borrowCleared(bundle, pool)
	if err != nil {
		return nil, err
	}

	for _, child := range clip.Children() {
		output, err := renderClip(bundle, child, frame, absRange, absTransform, pool, blend)
		if err != nil {
			return nil, err
		}
		if output != nil {
			canvas, blended = blended, canvas
			if err := blend.Normal.Blend(bundle, output, canvas, blended); err != nil {
				return nil, err
			}
			pool.Return(output)
		}
	}

	if v := clip.Video(); v != nil {
		canvas, blended = blended, canvas
		output, err := pool.Borrow()
		if err != nil {
			return nil, err
		}
		local := makeLocal(frame, absRange)
		v.SetTransform(absTransform)
		v.Update(bundle, frame, local)
		if err := v.Render(bundle, frame, local, output); err != nil {
			return nil, err
		}
		if err := blend.Normal.Blend(bundle, output, canvas, blended); err != nil {
			return nil, err
		}
		pool.Return(output)
	}

	pool.Return(canvas)
	return blended, nil
}

// makeLocal re-bases time_code to the clip's start and recomputes progress
// against the clip's duration, defaulting to 1 second if unbounded.
func makeLocal(frame visual.FrameInfo, absRange timecode.Range) visual.FrameInfo {
	var start timecode.Code
	if absRange.Start != nil {
		start = *absRange.Start
	}
	local := frame.TimeCode - start

	duration := timecode.FromSeconds(1)
	if d, ok := absRange.Duration(); ok {
		duration = d
	}
	progress := 0.0
	if duration != 0 {
		progress = local.Seconds() / duration.Seconds()
	}

	return visual.FrameInfo{TimeCode: local, Progress: progress, Resolution: frame.Resolution}
}

func visitAll(project *scene.Project, f func(visual.Object) error) error {
	var walk func(c *scene.Clip) error
	walk = func(c *scene.Clip) error {
		if v := c.Video(); v != nil {
			if err := f(v); err != nil {
				return err
			}
		}
		for _, child := range c.Children() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range project.Clips {
		if err := walk(c); err != nil {
			return err
		}
	}
	return nil
}

// borrowCleared borrows a texture from pool and clears it to transparent.
// Pool recycles textures verbatim, so any texture read as a blend's
// background layer (or potentially returned unwritten) must be explicitly
// cleared rather than trusted to already hold transparent pixels.
func borrowCleared(bundle *gpu.Bundle, pool *gpu.Pool[*gpu.Texture]) (*gpu.Texture, error) {
	t, err := pool.Borrow()
	if err != nil {
		return nil, err
	}
	if err := t.Clear(bundle, 0, 0, 0, 0); err != nil {
		return nil, err
	}
	return t, nil
}
