package engine

import "github.com/flak-sim/flak/flak"

// StatusToken is a snapshot of everything an Algorithm mutates during play:
// unit and fleet Status, per-player aggregates (including a deep copy of
// every in-flight fighter and torpedo), the RNG state, the clock, the
// termination flag, and the visualization id pool. Taking one lets a battle
// be paused and handed to another goroutine, or rewound for a "replay from
// here" request, without re-running the ticks that produced it.
type StatusToken struct {
	units   []flak.UnitStatus
	fleets  []flak.FleetStatus
	players [flak.NumOwners + 1]flak.PlayerAggregate

	seed       uint32
	time       int32
	terminated bool
	pool       objectPool
}

// SaveStatus captures the Algorithm's current mutable state.
func (a *Algorithm) SaveStatus() StatusToken {
	tok := StatusToken{
		units:      make([]flak.UnitStatus, len(a.units)),
		fleets:     make([]flak.FleetStatus, len(a.fleets)),
		seed:       a.rng.Seed(),
		time:       a.time,
		terminated: a.terminated,
		pool:       a.pool.snapshot(),
	}
	for i := range a.units {
		tok.units[i] = a.units[i].Status
	}
	for i := range a.fleets {
		tok.fleets[i] = a.fleets[i].Status
	}
	for p := 1; p <= flak.NumOwners; p++ {
		if a.players[p] == nil {
			continue
		}
		tok.players[p] = copyAggregate(a.players[p])
	}
	return tok
}

// RestoreStatus overwrites the Algorithm's mutable state with a previously
// captured token. The token must have been taken from an Algorithm built
// over the same Setup; indexes are not revalidated.
func (a *Algorithm) RestoreStatus(tok StatusToken) {
	for i := range a.units {
		a.units[i].Status = tok.units[i]
	}
	for i := range a.fleets {
		a.fleets[i].Status = tok.fleets[i]
	}
	a.rng.SetSeed(tok.seed)
	a.time = tok.time
	a.terminated = tok.terminated
	a.pool = tok.pool.snapshot()

	for p := 1; p <= flak.NumOwners; p++ {
		if tok.players[p].Number == 0 {
			a.players[p] = nil
			continue
		}
		agg := copyAggregate(&tok.players[p])
		a.players[p] = &agg
	}
}

func copyAggregate(src *flak.PlayerAggregate) flak.PlayerAggregate {
	cp := *src
	cp.Stuff = make([]*flak.Transient, len(src.Stuff))
	for i, t := range src.Stuff {
		tc := *t
		cp.Stuff[i] = &tc
	}
	return cp
}
