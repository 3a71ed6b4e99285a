package engine

// objectPool hands out visualization ids for transient objects. It pops
// from a free list left behind by destroyed objects, or else allocates the
// next id from a monotonic counter. This is deliberately not a generational
// scheme: the visualization contract requires id reuse to happen exactly
// when the original implementation would reuse it, so event streams stay
// identical across implementations (see §9).
type objectPool struct {
	free []int
	next int
}

// alloc returns a fresh or recycled visualization id, starting from 1 (0 is
// reserved so a zero-valued id reads as "unset" in debugging contexts).
func (p *objectPool) alloc() int {
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		return id
	}
	p.next++
	return p.next
}

// release returns id to the free list for future reuse.
func (p *objectPool) release(id int) {
	p.free = append(p.free, id)
}

// snapshot returns a deep copy of the pool's state, for StatusToken.
func (p *objectPool) snapshot() objectPool {
	free := make([]int, len(p.free))
	copy(free, p.free)
	return objectPool{free: free, next: p.next}
}
