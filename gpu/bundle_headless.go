//go:build headless

package gpu

import "sync"

// Bundle is the headless, GPU-free stand-in for the Vulkan device bundle:
// it owns the render resolution only (there is no projection matrix to
// upload) and backs textures with in-process image.RGBA buffers,
// grounded on the teacher's own video_backend_headless.go /
// voodoo_vulkan_headless.go pattern of the same-named type behind the
// opposite build tag.
type Bundle struct {
	mu     sync.Mutex
	width  int
	height int
}

// NewBundle builds a headless bundle for the given resolution. It never
// fails: there is no adapter/device negotiation to fail fast on.
func NewBundle(width, height int) (*Bundle, error) {
	return &Bundle{width: width, height: height}, nil
}

// Destroy is a no-op for the headless backend; there are no GPU handles to
// release.
func (b *Bundle) Destroy() {}
