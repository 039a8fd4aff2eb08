//go:build headless

package gpu

import "image"

// Texture is the headless stand-in for a GPU render target: a plain
// image.RGBA buffer of the bundle's resolution.
type Texture struct {
	Pixels *image.RGBA
	format Format
}

// NewTexturePool builds a pool of fresh RGBA buffers against this bundle's
// resolution.
func (b *Bundle) NewTexturePool(format Format) *Pool[*Texture] {
	return NewPool(func() (*Texture, error) {
		return b.newTexture(format)
	})
}

func (b *Bundle) newTexture(format Format) (*Texture, error) {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	return &Texture{Pixels: img, format: format}, nil
}

// Destroy is a no-op: image.RGBA is garbage collected normally.
func (t *Texture) Destroy(b *Bundle) {}

// Readback returns the texture's pixels directly; there is no fence or
// device-to-host copy to perform in the headless backend.
func (t *Texture) Readback(b *Bundle) ([]byte, error) {
	return t.Pixels.Pix, nil
}

// Clear fills the texture with a transparent (or given) colour, mirroring
// the clear-before-draw requirement visual objects must honour (spec.md
// §4.6).
func (t *Texture) Clear(b *Bundle, r, g, bch, a uint8) error {
	px := t.Pixels.Pix
	for i := 0; i < len(px); i += 4 {
		px[i+0] = r
		px[i+1] = g
		px[i+2] = bch
		px[i+3] = a
	}
	return nil
}
