package gpu

import "testing"

func TestPoolBorrowAllocatesFreshWhenEmpty(t *testing.T) {
	created := 0
	p := NewPool(func() (int, error) {
		created++
		return created, nil
	})

	a, _ := p.Borrow()
	b, _ := p.Borrow()
	if a == b {
		t.Errorf("expected distinct fresh allocations, got %v and %v", a, b)
	}
	if p.Created() != 2 {
		t.Errorf("Created() = %v, want 2", p.Created())
	}
}

func TestPoolReuseAfterReturn(t *testing.T) {
	created := 0
	p := NewPool(func() (int, error) {
		created++
		return created, nil
	})

	a, _ := p.Borrow()
	p.Return(a)
	b, _ := p.Borrow()
	if a != b {
		t.Errorf("expected reuse of returned entry %v, got %v", a, b)
	}
	if p.Created() != 1 {
		t.Errorf("Created() = %v, want 1 (no reallocation)", p.Created())
	}
}

func TestPoolAccountingBalancedSession(t *testing.T) {
	p := NewPool(func() (int, error) { return 0, nil })

	var borrowed []int
	for i := 0; i < 5; i++ {
		v, _ := p.Borrow()
		borrowed = append(borrowed, v)
	}
	if p.Created() < p.Outstanding() {
		t.Errorf("Created() = %v, want >= max concurrent borrows %v", p.Created(), p.Outstanding())
	}
	for range borrowed {
		p.Return(0)
	}
	if p.Created() != p.Returned() {
		t.Errorf("Created() = %v, Returned() = %v, want equal at end of balanced session", p.Created(), p.Returned())
	}
	if p.Outstanding() != 0 {
		t.Errorf("Outstanding() = %v, want 0", p.Outstanding())
	}
}
