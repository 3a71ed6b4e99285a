package engine

import "github.com/flak-sim/flak/flak"

// phaseFireBeams runs one pass of beam fire, fleet by fleet. Each living
// unit fires at most one beam this tick: it spends the first beam charged
// enough to threaten an attacking fighter on the closest qualifying
// target, and only if none qualifies does it try an anti-ship shot with
// the first beam charged enough for that.
func (a *Algorithm) phaseFireBeams(vis Visualizer) {
	for fi := range a.fleets {
		a.fireBeams(fi, vis)
	}
}

func (a *Algorithm) fireBeams(fi int, vis Visualizer) {
	f := &a.fleets[fi]
	if !f.Status.Alive {
		return
	}

	enemyAlive := f.Status.Enemy >= 0 && a.units[f.Status.Enemy].Status.Alive
	dist := 1e15
	if f.Status.Enemy >= 0 {
		enemyFleet := a.units[f.Status.Enemy].Data.Fleet
		dist = f.Status.Position.DistanceTo(a.fleets[enemyFleet].Status.Position)
	}

	for x := 0; x < f.Data.UnitCount; x++ {
		i := f.Data.FirstUnit + x
		u := &a.units[i]
		if !u.Status.Alive {
			continue
		}

		if a.fireAtFighter(fi, i, vis) {
			continue
		}

		if !enemyAlive || dist > float64(u.Config.BeamFiringRange) {
			continue
		}
		a.fireAtEnemyShip(i, f.Status.Enemy, vis)
	}
}

// fireAtFighter spends unit i's first beam charged enough to threaten a
// fighter on the closest qualifying attacker, if one exists in range.
// Reports whether a beam was spent, which ends this unit's turn regardless
// of whether the shot hit.
func (a *Algorithm) fireAtFighter(fi, i int, vis Visualizer) bool {
	u := &a.units[i]
	var target *flak.Transient
	searched := false

	for b := 0; b < u.Data.NumBeams; b++ {
		if u.Status.BeamCharge[b] < u.Config.BeamHitFighterCharge {
			continue
		}
		if !searched {
			target = a.findAttackingFighter(fi, u.Config.BeamFiringRange)
			searched = true
		}
		if target == nil {
			continue
		}
		u.Status.BeamCharge[b] = 0
		a.fireBeamAtFighter(i, b, target, vis)
		return true
	}
	return false
}

// findAttackingFighter returns the closest live enemy fighter in range that
// either targets a unit in fleet fi or was launched by a unit in fleet
// fi's current enemy fleet, or nil if none qualifies. If
// FireOnAttackFighters is set, any fighter still attacking (strikes > 0)
// beats any fighter that has spent its strikes and is returning to base,
// regardless of distance; ties within a tier go to the closer fighter.
// Fleets with no chosen enemy never fire at fighters.
func (a *Algorithm) findAttackingFighter(fi int, rng int32) *flak.Transient {
	f := &a.fleets[fi]
	if f.Status.Enemy < 0 {
		return nil
	}
	owner := f.Data.Owner
	enemyFleet := a.units[f.Status.Enemy].Data.Fleet

	var best *flak.Transient
	var bestDist float64
	for p := 1; p <= flak.NumOwners; p++ {
		agg := a.players[p]
		if agg == nil || p == owner {
			continue
		}
		for idx := len(agg.Stuff) - 1; idx >= 0; idx-- {
			s := agg.Stuff[idx]
			if s.Kind != flak.KindFighter || s.Enemy < 0 {
				continue
			}
			targetsUs := a.units[s.Enemy].Data.Fleet == fi
			fromEnemyFleet := a.units[s.Owner].Data.Fleet == enemyFleet
			if !targetsUs && !fromEnemyFleet {
				continue
			}
			fdist := f.Status.Position.DistanceTo(s.Position)
			if fdist > float64(rng) {
				continue
			}

			switch {
			case best == nil:
				best, bestDist = s, fdist
			case a.fireOnAttackFighters && best.Strikes == 0 && s.Strikes > 0:
				best, bestDist = s, fdist
			case fdist <= bestDist &&
				(!a.fireOnAttackFighters ||
					(best.Strikes == 0 && s.Strikes == 0) ||
					(best.Strikes > 0 && s.Strikes > 0)):
				best, bestDist = s, fdist
			}
		}
	}
	return best
}

// fireAtEnemyShip spends unit i's first beam charged enough for an
// anti-ship shot at enemy, if one exists.
func (a *Algorithm) fireAtEnemyShip(i, enemy int, vis Visualizer) {
	u := &a.units[i]
	for b := 0; b < u.Data.NumBeams; b++ {
		charge := u.Status.BeamCharge[b]
		if charge < u.Config.BeamHitShipCharge {
			continue
		}
		u.Status.BeamCharge[b] = 0
		a.fireBeamAtShip(i, b, enemy, charge, vis)
		return
	}
}

// fireBeamAtShip resolves one anti-ship beam shot, scaling kill and damage
// power by charge/1000 per §4.3 phase 5. A beam whose type has zero base
// damage power is a death ray regardless of how charge scaling affects the
// scaled value.
func (a *Algorithm) fireBeamAtShip(attacker, beamNr, target, charge int, vis Visualizer) {
	u := &a.units[attacker]
	hits := int(a.rng.Next(100)) < u.Config.BeamHitOdds+u.Config.BeamHitBonus
	vis.FireBeamShipShip(attacker, beamNr, target, hits)
	if !hits {
		return
	}
	kill := a.env.GetBeamKillPower(u.Data.BeamType)
	dmg := a.env.GetBeamDamagePower(u.Data.BeamType)
	deathRay := dmg == 0
	if a.env.GetPlayerRaceNumber(u.Data.Owner) == flak.RacePrivateer {
		kill *= 3
	}
	kill = kill * charge / 1000
	dmg = dmg * charge / 1000
	a.hitShipWith(attacker, target, kill, dmg, deathRay, vis)
}

func (a *Algorithm) fireBeamAtFighter(attacker, beamNr int, ft *flak.Transient, vis Visualizer) {
	u := &a.units[attacker]
	hits := int(a.rng.Next(100)) < u.Config.BeamHitOdds
	vis.FireBeamShipFighter(attacker, beamNr, ft.VisID, hits)
	if !hits {
		return
	}
	a.killFighter(ft, vis)
}

// killFighter removes a fighter, updating its owner unit's in-flight count.
func (a *Algorithm) killFighter(ft *flak.Transient, vis Visualizer) {
	owner := &a.units[ft.Owner]
	if owner.Status.FightersInFlight > 0 {
		owner.Status.FightersInFlight--
	}
	vis.KillFighter(ft.VisID)
	a.releaseTransient(ft)
}
