package engine

import "testing"

func TestObjectPoolReusesReleasedIdsBeforeAllocatingNew(t *testing.T) {
	var p objectPool

	a := p.alloc()
	b := p.alloc()
	if a == b {
		t.Fatalf("alloc() returned the same id twice: %d", a)
	}

	p.release(a)
	c := p.alloc()
	if c != a {
		t.Errorf("alloc() after release = %d, want reused id %d", c, a)
	}

	d := p.alloc()
	if d == a || d == b || d == c {
		t.Errorf("alloc() = %d collides with a live id", d)
	}
}

func TestObjectPoolSnapshotIsIndependentCopy(t *testing.T) {
	var p objectPool
	p.alloc()
	id := p.alloc()
	p.release(id)

	snap := p.snapshot()
	p.alloc()

	if len(snap.free) != 1 {
		t.Fatalf("snapshot free list = %v, want len 1", snap.free)
	}
	if len(p.free) != 0 {
		t.Errorf("original free list mutated by later alloc: %v", p.free)
	}
}
