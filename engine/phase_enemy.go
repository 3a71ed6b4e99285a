package engine

import "github.com/flak-sim/flak/flak"

// canStillAttack reports whether we can still do any damage to they. Against
// a planet, death-ray torpedoes are always discounted, and death-ray beams
// are discounted unless the planet still has fighters aboard or in the air
// to shoot down instead.
func canStillAttack(we, they *flak.Unit, env flak.Environment) bool {
	torpc := we.Data.NumLaunchers
	beamc := we.Data.NumBeams

	if they.Data.IsPlanet {
		if torpc != 0 && env.GetTorpedoDamagePower(we.Data.TorpedoType) == 0 {
			torpc = 0
		}
		if beamc != 0 && env.GetBeamDamagePower(we.Data.BeamType) == 0 &&
			they.Status.FightersRemaining == 0 && they.Status.FightersInFlight == 0 {
			beamc = 0
		}
	}

	return beamc != 0 ||
		(torpc != 0 && we.Status.NumTorpedoes != 0) ||
		(we.Data.NumBays != 0 && (we.Status.FightersRemaining != 0 || we.Status.FightersInFlight != 0))
}

// chooseEnemy picks the most attractive target from fleet fi's attack list.
// A candidate's attack rating is the summed Rating of every living unit in
// our fleet that canStillAttack it, or that it canStillAttack -- a
// candidate nobody can touch either way is skipped outright. The winning
// score trades rating parity against distance (scaled by how long it'd
// take to close) and is discounted for targets already damaged, already
// shield-stripped, or already the current enemy, with the lowest score
// winning.
func (a *Algorithm) chooseEnemy(fi int, vis Visualizer) {
	f := &a.fleets[fi]
	if !f.Status.Alive || len(f.Data.AttackList) == 0 {
		return
	}

	bestDiff := int64(1<<31 - 1)
	bestTarget := flak.NoEnemy

	for _, edge := range f.Data.AttackList {
		u := &a.units[edge.Target]
		if u.Data.Owner == f.Data.Owner || !u.Status.Alive {
			continue
		}
		tFleet := u.Data.Fleet
		if !a.fleets[tFleet].Status.Alive {
			continue
		}

		var attackRating int64
		for x := 0; x < f.Data.UnitCount; x++ {
			we := &a.units[f.Data.FirstUnit+x]
			if we.Status.Alive && (canStillAttack(we, u, a.env) || canStillAttack(u, we, a.env)) {
				attackRating += int64(we.Data.Rating)
			}
		}
		if attackRating == 0 {
			continue
		}

		theirRating := int64(u.Data.Rating)
		var divisor, diff int64
		if attackRating < theirRating {
			diff = theirRating - attackRating + flak.DiffOffset
			divisor = flak.DivisorIfSmaller
		} else {
			diff = attackRating - theirRating + flak.DiffOffset
			divisor = flak.DivisorIfBigger
		}

		divisor += int64(edge.RatingBonus)
		if edge.Target == f.Status.Enemy {
			divisor += flak.DivisorSameEnemyBonus
		}
		if u.Status.Damage > 0 {
			divisor += int64(u.Status.Damage)
		}
		divisor += int64(100-int64(u.Status.Shield)) / 5
		if divisor == 0 {
			divisor = 1
		}

		dist := f.Status.Position.DistanceTo(a.fleets[tFleet].Status.Position)
		var multiplier int64
		if f.Data.Speed <= 0 {
			multiplier = int64(dist) / 100
		} else {
			multiplier = int64(dist) / int64(f.Data.Speed)
		}
		if multiplier < flak.MultiplierMin {
			multiplier = flak.MultiplierMin
		}

		diff = diff * multiplier / divisor
		if diff < bestDiff {
			bestDiff = diff
			bestTarget = edge.Target
		}
	}

	if bestTarget != f.Status.Enemy {
		if bestTarget >= 0 && f.Status.Enemy >= 0 {
			a.log.Debug().Int("fleet", fi).Msg("target change in flight")
		}
		vis.SetEnemy(fi, bestTarget)
	}
	f.Status.Enemy = bestTarget

	if bestTarget < 0 {
		return
	}

	numTorpers := 0
	for x := 0; x < f.Data.UnitCount; x++ {
		u := &a.units[f.Data.FirstUnit+x]
		if u.Status.Alive && u.Data.NumLaunchers > 0 && u.Status.NumTorpedoes >= 10 {
			numTorpers++
		}
	}
	enemy := &a.units[bestTarget]
	for x := 0; x < f.Data.UnitCount; x++ {
		a.computeTorpLimit(&a.units[f.Data.FirstUnit+x], enemy, numTorpers)
	}
}

// computeTorpLimit caps how many torpedoes attacker may fire at enemy this
// engagement: projected shots-to-kill (the shots to strip the shield, plus
// the fewer of the shots to reach the hull-damage limit and -- for
// non-planets -- the shots to kill the crew), padded by TorpLimitFactor and
// divided by hit odds, then spread evenly (rounded up) across the fleet's
// torpers. Small tube counts and hopeless hit odds bypass the cap entirely.
func (a *Algorithm) computeTorpLimit(attacker, enemy *flak.Unit, numTorpers int) {
	attacker.Status.TorpedoLimit = attacker.Data.NumLaunchers
	if attacker.Data.NumLaunchers <= 2 || attacker.Config.TorpHitOdds <= 0 {
		return
	}

	expl := a.env.GetTorpedoDamagePower(attacker.Data.TorpedoType)
	kill := a.env.GetTorpedoKillPower(attacker.Data.TorpedoType)
	if !a.alternativeCombat {
		expl *= 2
		kill *= 2
	}

	cd := computeCrewKilled(kill, enemy.Data.Mass, expl == 0, &enemy.Config, a.alternativeCombat)

	var torpsReqd int
	if expl == 0 {
		if enemy.Data.IsPlanet {
			return
		}
		torpsReqd = int(1 + (enemy.Status.Crew/cd)*flak.TorpLimitFactor/float64(attacker.Config.TorpHitOdds))
	} else {
		hd := computeHullDamage(kill, expl, enemy.Data.Mass, &enemy.Config, a.alternativeCombat)
		sd := computeShieldDamage(kill, expl, enemy.Data.Mass, &enemy.Config, a.alternativeCombat)

		limit := float64(flak.TorpLimitDamageHeadroom)
		if a.env.GetPlayerRaceNumber(enemy.Data.Owner) == flak.RaceLizard {
			limit = flak.TorpLimitDamageHeadroomLizard
		}
		v1 := (limit - enemy.Status.Damage) / (hd + 0.01)
		if !enemy.Data.IsPlanet {
			v2 := enemy.Status.Crew / (cd + 0.01)
			if v1 > v2 {
				v1 = v2
			}
		}
		torpsReqd = int(1 + (enemy.Status.Shield/sd+v1)*flak.TorpLimitFactor/float64(attacker.Config.TorpHitOdds))
	}

	if numTorpers > 0 {
		torpsReqd = (torpsReqd + numTorpers - 1) / numTorpers
	}

	if torpsReqd < attacker.Data.NumLaunchers {
		attacker.Status.TorpedoLimit = torpsReqd
	}
}
