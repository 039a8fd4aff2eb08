// Package scene implements the hierarchical timeline model: a tree of Clips
// under a Project, each optionally owning one visual object.
package scene

import (
	"github.com/intuitionamiga/lumen/internal/geom"
	"github.com/intuitionamiga/lumen/timecode"
	"github.com/intuitionamiga/lumen/visual"
)

// Clip is a node in the timeline tree with a time range, an ordered
// sequence of children, an optional visual object, and a cumulative
// transform. A clip owns its subtree and its optional visual object
// exclusively.
type Clip struct {
	rng       timecode.Range
	children  []*Clip
	video     visual.Object
	Transform geom.Transform
}

// NewClip starts a clip with the given declared range and identity
// transform.
func NewClip(rng timecode.Range) *Clip {
	return &Clip{rng: rng, Transform: geom.Identity()}
}

// AttachVideo assigns the clip's optional visual object. At most one per
// clip: attaching twice silently replaces the prior object (spec.md §7).
func (c *Clip) AttachVideo(v visual.Object) {
	c.video = v
}

// Video returns the clip's attached visual object, or nil.
func (c *Clip) Video() visual.Object { return c.video }

// AddClip appends child to this clip's children. No cycle check is
// performed: tree construction is additive only.
func (c *Clip) AddClip(child *Clip) {
	c.children = append(c.children, child)
}

// Children returns the clip's children in insertion order.
func (c *Clip) Children() []*Clip { return c.children }

// Range returns the declared range, except that a missing End is replaced
// by the maximum End across children, if any child has one.
func (c *Clip) Range() timecode.Range {
	r := c.rng
	if r.End != nil {
		return r
	}
	var maxEnd *timecode.Code
	for _, child := range c.children {
		cr := child.Range()
		if cr.End == nil {
			continue
		}
		if maxEnd == nil || *cr.End > *maxEnd {
			e := *cr.End
			maxEnd = &e
		}
	}
	r.End = maxEnd
	return r
}

// InferDuration sets the clip's range duration from the visual object's
// advertised duration, if any.
func (c *Clip) InferDuration() {
	d, ok := durationOf(c.video)
	if !ok {
		return
	}
	c.rng.SetDuration(d)
}

func durationOf(v visual.Object) (timecode.Code, bool) {
	if v == nil {
		return 0, false
	}
	d, ok := v.(visual.Durationer)
	if !ok {
		return 0, false
	}
	return d.Duration()
}

// DefaultProjectDuration is used when every top-level clip's end is
// unbounded.
const DefaultProjectDuration = timecode.Code(5 * timecode.TicksPerSecond)

// Project is an ordered sequence of top-level clips.
type Project struct {
	Clips []*Clip
}

// NewProject returns an empty project.
func NewProject() *Project { return &Project{} }

// AddClip appends a top-level clip.
func (p *Project) AddClip(c *Clip) { p.Clips = append(p.Clips, c) }

// Duration is the maximum End time across clips, or DefaultProjectDuration
// if every clip's end is unbounded.
func (p *Project) Duration() timecode.Code {
	var maxEnd *timecode.Code
	for _, c := range p.Clips {
		r := c.Range()
		if r.End == nil {
			continue
		}
		if maxEnd == nil || *r.End > *maxEnd {
			e := *r.End
			maxEnd = &e
		}
	}
	if maxEnd == nil {
		return DefaultProjectDuration
	}
	return *maxEnd
}

// FrameCount returns floor(seconds(duration) * fps).
func (p *Project) FrameCount(fps float64) int {
	return timecode.FrameCount(p.Duration(), fps)
}
