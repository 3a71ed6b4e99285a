package engine

import "github.com/flak-sim/flak/flak"

// phaseMoveTransients advances every fighter and torpedo by one tick.
// Torpedoes that reach their target resolve the hit/miss verdict decided at
// launch and are removed. A fighter whose target died takes its carrier
// fleet's current enemy if it may change enemy and the fleet has one, and
// otherwise lands at once; every other fighter closes the distance toward
// its target.
func (a *Algorithm) phaseMoveTransients(vis Visualizer) {
	for p := 1; p <= flak.NumOwners; p++ {
		agg := a.players[p]
		if agg == nil {
			continue
		}
		stuff := append([]*flak.Transient(nil), agg.Stuff...)
		for _, t := range stuff {
			switch t.Kind {
			case flak.KindTorpedo:
				a.moveTorpedo(t, vis)
			case flak.KindFighter:
				a.moveFighter(t, vis)
			}
		}
	}
}

func (a *Algorithm) moveTorpedo(t *flak.Transient, vis Visualizer) {
	if t.Enemy < 0 || !a.units[t.Enemy].Status.Alive {
		vis.MissTorpedo(t.VisID)
		a.releaseTransient(t)
		return
	}
	target := a.unitPosition(t.Enemy)
	dist := t.Position.DistanceTo(target)
	if dist <= float64(t.Speed) {
		t.Position = target
		if t.Strikes == 1 {
			a.hitShipWith(t.Owner, t.Enemy, t.Kill, t.Explosion, t.IsDeathRay(), vis)
			vis.HitTorpedo(t.VisID, t.Enemy)
		} else {
			vis.MissTorpedo(t.VisID)
		}
		a.releaseTransient(t)
		return
	}

	t.Position = stepToward(t.Position, target, t.Speed)
	vis.MoveTorpedo(t.VisID, t.Position.X, t.Position.Y, t.Position.Z)
}

func (a *Algorithm) moveFighter(t *flak.Transient, vis Visualizer) {
	if t.Enemy < 0 || !a.units[t.Enemy].Status.Alive {
		if t.CanChangeEnemy {
			if newEnemy := a.fleets[a.units[t.Owner].Data.Fleet].Status.Enemy; newEnemy >= 0 {
				t.Enemy = newEnemy
			} else {
				a.landFighter(t, vis)
				return
			}
		} else {
			a.landFighter(t, vis)
			return
		}
	}

	target := a.unitPosition(t.Enemy)
	t.Position = stepToward(t.Position, target, t.Speed)
	vis.MoveFighter(t.VisID, t.Position.X, t.Position.Y, t.Position.Z, t.Enemy)
}

// stepToward moves pos toward target by at most speed meters, in the X/Y
// plane; Z tracks the target's Z exactly (fighters and torpedoes don't
// stack).
func stepToward(pos, target flak.Position, speed int) flak.Position {
	dist := pos.DistanceTo(target)
	if dist <= 0 {
		return flak.Position{X: pos.X, Y: pos.Y, Z: target.Z}
	}
	frac := float64(speed) / dist
	if frac > 1 {
		frac = 1
	}
	dx := float64(target.X-pos.X) * frac
	dy := float64(target.Y-pos.Y) * frac
	return flak.Position{
		X: pos.X + int32(dx),
		Y: pos.Y + int32(dy),
		Z: target.Z,
	}
}

// phaseMoveFleets advances every living fleet toward its current enemy's
// fleet, stopping at the configured standoff distance, and emits MoveFleet
// plus a MoveShip per living unit so stacked units track their fleet.
func (a *Algorithm) phaseMoveFleets(vis Visualizer) {
	for fi := range a.fleets {
		f := &a.fleets[fi]
		if !f.Status.Alive || f.Data.Speed == 0 {
			continue
		}
		if f.Status.Enemy < 0 || !a.units[f.Status.Enemy].Status.Alive {
			continue
		}

		targetFleet := a.units[f.Status.Enemy].Data.Fleet
		targetPos := a.fleets[targetFleet].Status.Position
		dist := f.Status.Position.DistanceTo(targetPos)
		if dist <= float64(a.standoffDistance) {
			continue
		}

		step := f.Data.Speed
		if room := dist - float64(a.standoffDistance); room < float64(step) {
			step = int(room)
		}
		newPos := stepToward(f.Status.Position, targetPos, step)
		f.Status.Position = newPos
		vis.MoveFleet(fi, newPos.X, newPos.Y)

		for x := 0; x < f.Data.UnitCount; x++ {
			ui := f.Data.FirstUnit + x
			u := &a.units[ui]
			if !u.Status.Alive {
				continue
			}
			pos := a.unitPosition(ui)
			vis.MoveShip(ui, pos.X, pos.Y, pos.Z)
		}
	}
}
