//go:build headless

package gpu

import "testing"

func TestNewBundleHeadlessNeverFails(t *testing.T) {
	b, err := NewBundle(64, 64)
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	defer b.Destroy()
}

func TestTexturePoolRoundTrip(t *testing.T) {
	b, _ := NewBundle(4, 4)
	pool := b.NewTexturePool(FormatRGBA8UnormSRGB)

	tex, err := pool.Borrow()
	if err != nil {
		t.Fatalf("Borrow: %v", err)
	}
	if tex.Pixels.Bounds().Dx() != 4 || tex.Pixels.Bounds().Dy() != 4 {
		t.Errorf("texture dims = %v, want 4x4", tex.Pixels.Bounds())
	}
	pool.Return(tex)
	if pool.Outstanding() != 0 {
		t.Errorf("Outstanding() = %v, want 0 after return", pool.Outstanding())
	}
}

func TestBlendNormalOverOpaqueSource(t *testing.T) {
	b, _ := NewBundle(2, 2)
	pool := b.NewTexturePool(FormatRGBA8UnormSRGB)

	a, _ := pool.Borrow()
	a.Clear(b, 255, 0, 0, 255) // opaque red "on top"
	src, _ := pool.Borrow()
	src.Clear(b, 0, 0, 255, 255) // opaque blue "underneath"
	target, _ := pool.Borrow()

	modes, err := NewBlendModes(b, FormatRGBA8UnormSRGB)
	if err != nil {
		t.Fatalf("NewBlendModes: %v", err)
	}
	if err := modes.Normal.Blend(b, a, src, target); err != nil {
		t.Fatalf("Blend: %v", err)
	}

	px := target.Pixels.Pix
	if px[0] != 255 || px[1] != 0 || px[2] != 0 {
		t.Errorf("blended pixel = %v, want opaque red (A fully covers opaque B)", px[:4])
	}
}

func TestBlendTransparentSourceShowsDestination(t *testing.T) {
	b, _ := NewBundle(2, 2)
	pool := b.NewTexturePool(FormatRGBA8UnormSRGB)

	a, _ := pool.Borrow()
	a.Clear(b, 0, 0, 0, 0) // fully transparent "on top"
	src, _ := pool.Borrow()
	src.Clear(b, 0, 255, 0, 255) // opaque green "underneath"
	target, _ := pool.Borrow()

	modes, _ := NewBlendModes(b, FormatRGBA8UnormSRGB)
	modes.Normal.Blend(b, a, src, target)

	px := target.Pixels.Pix
	if px[1] != 255 {
		t.Errorf("blended pixel green channel = %v, want 255 (transparent A reveals B)", px[1])
	}
}
