package scene

import (
	"testing"

	"github.com/intuitionamiga/lumen/timecode"
)

func TestEmptyProjectDuration(t *testing.T) {
	p := NewProject()
	if got := p.Duration(); got != DefaultProjectDuration {
		t.Errorf("Duration() = %v, want default 5s", got)
	}
	if got := p.FrameCount(60); got != 300 {
		t.Errorf("FrameCount(60) = %v, want 300", got)
	}
}

func TestProjectDurationIsMaxClipEnd(t *testing.T) {
	p := NewProject()
	p.AddClip(NewClip(timecode.NewRange(0, timecode.FromSeconds(2))))
	p.AddClip(NewClip(timecode.NewRange(0, timecode.FromSeconds(7))))
	if got := p.Duration(); got != timecode.FromSeconds(7) {
		t.Errorf("Duration() = %v, want 7s", got)
	}
}

func TestClipRangeInheritsMaxChildEnd(t *testing.T) {
	parent := NewClip(timecode.From(0))
	parent.AddClip(NewClip(timecode.NewRange(0, timecode.FromSeconds(1))))
	parent.AddClip(NewClip(timecode.NewRange(0, timecode.FromSeconds(3))))

	r := parent.Range()
	if r.End == nil || *r.End != timecode.FromSeconds(3) {
		t.Errorf("Range().End = %v, want 3s", r.End)
	}
}

func TestClipRangeWithDeclaredEndIsUnaffectedByChildren(t *testing.T) {
	parent := NewClip(timecode.NewRange(0, timecode.FromSeconds(1)))
	parent.AddClip(NewClip(timecode.NewRange(0, timecode.FromSeconds(10))))

	r := parent.Range()
	if *r.End != timecode.FromSeconds(1) {
		t.Errorf("Range().End = %v, want declared 1s", r.End)
	}
}

func TestAttachVideoReplacesPrior(t *testing.T) {
	c := NewClip(timecode.Unbounded())
	first := &stubVisual{}
	second := &stubVisual{}
	c.AttachVideo(first)
	c.AttachVideo(second)
	if c.Video() != second {
		t.Errorf("Video() did not reflect the most recent AttachVideo call")
	}
}
