package gpu

import "github.com/intuitionamiga/lumen/log"

// Pool is a grow-only cache of render-target textures reused across frames.
// It is generic over the concrete texture type so the same pool logic backs
// both the Vulkan and headless Texture implementations. No bounded size:
// Borrow allocates a fresh entry via New when the free list is empty.
type Pool[T any] struct {
	New func() (T, error)

	free      []T
	created   int
	returned  int
	borrowed  int
}

// NewPool constructs a pool that allocates fresh entries with new.
func NewPool[T any](new func() (T, error)) *Pool[T] {
	return &Pool[T]{New: new}
}

// Borrow returns a pooled entry if one is free, otherwise allocates one.
func (p *Pool[T]) Borrow() (T, error) {
	if n := len(p.free); n > 0 {
		t := p.free[n-1]
		p.free = p.free[:n-1]
		p.borrowed++
		return t, nil
	}
	t, err := p.New()
	if err != nil {
		var zero T
		return zero, err
	}
	p.created++
	p.borrowed++
	return t, nil
}

// Return pushes a texture back onto the free list.
func (p *Pool[T]) Return(t T) {
	p.free = append(p.free, t)
	p.returned++
	p.borrowed--
}

// Created, Returned and Outstanding expose the pool's allocation accounting
// for the engine's end-of-render diagnostics and tests.
func (p *Pool[T]) Created() int     { return p.created }
func (p *Pool[T]) Returned() int    { return p.returned }
func (p *Pool[T]) Outstanding() int { return p.borrowed }

// WarnIfLeaked logs a warning if any borrowed textures were never returned.
func (p *Pool[T]) WarnIfLeaked() {
	if p.borrowed != 0 {
		log.Warn("texture pool has outstanding borrows at end of render",
			"created", p.created, "returned", p.returned, "outstanding", p.borrowed)
	}
}
