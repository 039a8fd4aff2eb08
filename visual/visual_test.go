package visual

import (
	"testing"

	"github.com/intuitionamiga/lumen/timecode"
)

type durationObject struct{ d timecode.Code }

func (o *durationObject) Duration() (timecode.Code, bool) { return o.d, o.d > 0 }

func TestDurationerIsOptionalCapability(t *testing.T) {
	var obj any = &durationObject{d: timecode.FromSeconds(2)}
	d, ok := obj.(Durationer)
	if !ok {
		t.Fatal("expected durationObject to satisfy Durationer")
	}
	got, has := d.Duration()
	if !has || got != timecode.FromSeconds(2) {
		t.Errorf("Duration() = (%v, %v), want (2s, true)", got, has)
	}
}

func TestNonDurationerDoesNotSatisfy(t *testing.T) {
	var obj any = struct{}{}
	if _, ok := obj.(Durationer); ok {
		t.Errorf("expected empty struct to not satisfy Durationer")
	}
}
