package engine

import "github.com/flak-sim/flak/flak"

// spawnTransient allocates a visualization id, appends the transient to its
// owner's player aggregate, and emits the matching create* event. owner is a
// unit index; pos is the launch position.
func (a *Algorithm) spawnTransient(kind flak.TransientKind, owner, enemy int, pos flak.Position, speed, strikes, kill, explosion int, vis Visualizer) *flak.Transient {
	u := &a.units[owner]
	t := &flak.Transient{
		Kind:           kind,
		CanChangeEnemy: kind == flak.KindFighter,
		Position:       pos,
		Enemy:          enemy,
		Owner:          owner,
		Speed:          speed,
		Strikes:        strikes,
		Kill:           kill,
		Explosion:      explosion,
		VisID:          a.pool.alloc(),
	}

	agg := a.playerAggregate(u.Data.Owner)
	agg.Stuff = append(agg.Stuff, t)

	switch kind {
	case flak.KindFighter:
		agg.HasEverHadFighters = true
		vis.CreateFighter(t.VisID, pos.X, pos.Y, pos.Z, u.Data.Owner, enemy)
	case flak.KindTorpedo:
		vis.CreateTorpedo(t.VisID, pos.X, pos.Y, pos.Z, u.Data.Owner, enemy)
	}
	return t
}

// releaseTransient removes t from its owner's player aggregate and returns
// its visualization id to the pool. Callers must already have emitted the
// matching kill/land/hit/miss event before calling this.
func (a *Algorithm) releaseTransient(t *flak.Transient) {
	owner := &a.units[t.Owner]
	agg := a.playerAggregate(owner.Data.Owner)
	for i, s := range agg.Stuff {
		if s == t {
			agg.Stuff = append(agg.Stuff[:i], agg.Stuff[i+1:]...)
			break
		}
	}
	a.pool.release(t.VisID)
}
