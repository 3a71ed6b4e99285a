package engine

import "github.com/flak-sim/flak/flak"

// effectiveMass computes the defender's mass as seen by the damage formula.
// The compensation bonus -- shrinking the defender's effective mass, which
// amplifies every hit against it -- only kicks in when the attacker is
// weaker on BOTH dimensions: fewer living units AND less total compensation
// than the defender. A side with more units but lower aggregate compensation
// gets no help, and neither does a weaker side that's still outnumbered.
// Integer arithmetic throughout, matching the source exactly.
func effectiveMass(attAgg, oppAgg *flak.PlayerAggregate, defMass int) int {
	if attAgg == nil || oppAgg == nil {
		return defMass
	}
	if !(attAgg.NumLiveUnits < oppAgg.NumLiveUnits && attAgg.SumCompensation < oppAgg.SumCompensation) {
		return defMass
	}
	attS := int(attAgg.SumCompensation) + flak.CompensationDivisor
	defS := int(oppAgg.SumCompensation) + flak.CompensationDivisor
	if attS*flak.CompensationLimitFactor < defS {
		return defMass / flak.CompensationLimitFactor
	}
	return defMass * attS / defS
}

// computeShieldDamage is the shield damage one hit with the given kill and
// explosion power inflicts on a target of effMass, clamped to
// MaxShieldDamagePerHit and, under non-alternative combat, rounded via
// int(d+1.5).
func computeShieldDamage(kill, expl, effMass int, cfg *flak.UnitConfig, alternativeCombat bool) float64 {
	d := (float64(cfg.ShieldKillScaling)*float64(kill) + float64(cfg.ShieldDamageScaling)*float64(expl)) / float64(effMass+1)
	if d > flak.MaxShieldDamagePerHit {
		return flak.MaxShieldDamagePerHit
	}
	if alternativeCombat {
		return d
	}
	return float64(int(d + 1.5))
}

// computeHullDamage is the hull damage one hit inflicts. Under
// alternative combat it scales straight off explosion power; otherwise it
// scales off the shield damage the same hit would have dealt.
func computeHullDamage(kill, expl, effMass int, cfg *flak.UnitConfig, alternativeCombat bool) float64 {
	if alternativeCombat {
		d := float64(expl) * float64(cfg.HullDamageScaling) / float64(effMass+1)
		if d > flak.MaxShieldDamagePerHit {
			return flak.MaxShieldDamagePerHit
		}
		return d
	}
	d := computeShieldDamage(kill, expl, effMass, cfg, false) * float64(cfg.HullDamageScaling) / float64(effMass+1)
	if d > flak.MaxShieldDamagePerHit {
		return flak.MaxShieldDamagePerHit
	}
	return float64(int(d + 0.5))
}

// computeCrewKilled is the crew killed by one hit. deathRay is true iff the
// firing weapon's explosion power is zero; under non-alternative combat a
// death ray that would otherwise round down to zero still kills one.
func computeCrewKilled(kill, effMass int, deathRay bool, cfg *flak.UnitConfig, alternativeCombat bool) float64 {
	d := float64(kill) * float64(cfg.CrewKillScaling) / float64(effMass+1)
	if alternativeCombat {
		return d
	}
	el := int(d + 0.5)
	if el == 0 && deathRay {
		return 1
	}
	return float64(el)
}

// hitShipWith applies one weapon hit to target, following the shield-then-
// hull-then-crew chain of §4.4. Death rays (explosion power zero) skip
// shield and hull damage entirely and hit crew directly, at full rate.
func (a *Algorithm) hitShipWith(attacker, target int, killPower, damagePower int, deathRay bool, vis Visualizer) {
	t := &a.units[target]
	if !t.Status.Alive {
		return
	}
	atk := &a.units[attacker]

	attAgg := a.playerAggregate(atk.Data.Owner)
	oppAgg := a.playerAggregate(t.Data.Owner)
	effMass := effectiveMass(attAgg, oppAgg, t.Data.Mass)

	kill := killPower
	if kill <= 0 {
		kill = 1
	}
	expl := damagePower
	if expl <= 0 {
		expl = 1
	}

	damageRate := 1.0
	if !deathRay {
		if t.Status.Shield > 0 {
			shieldDamage := computeShieldDamage(kill, expl, effMass, &t.Config, a.alternativeCombat)
			if t.Status.Shield <= shieldDamage {
				damageRate = (shieldDamage - t.Status.Shield) / shieldDamage
				t.Status.Shield = 0
			} else {
				damageRate = 0
				t.Status.Shield -= shieldDamage
			}
		}

		if damageRate > 0 {
			t.Status.Damage += computeHullDamage(kill, expl, effMass, &t.Config, a.alternativeCombat) * damageRate
			if t.Status.Damage > flak.MaxDamageCap {
				t.Status.Damage = flak.MaxDamageCap
			}
		}
	}

	if !t.Data.IsPlanet {
		t.Status.Crew -= computeCrewKilled(kill, effMass, deathRay, &t.Config, a.alternativeCombat) * damageRate
		if t.Status.Crew < flak.MinCrewAlive {
			t.Status.Crew = 0
		}
	}

	a.checkDeath(target, vis)
	if t.Status.Alive {
		t.Status.LastHitBy = attacker
	}
}

// checkDeath kills target if its damage exceeds its race's survival limit,
// or (non-planets only) its crew drops below MinCrewAlive, updating
// the owning player's aggregate and emitting KillShip.
func (a *Algorithm) checkDeath(target int, vis Visualizer) {
	t := &a.units[target]
	if !t.Status.Alive {
		return
	}
	race := a.env.GetPlayerRaceNumber(t.Data.Owner)
	limit := flak.DamageSurvivalLimit(race)

	dead := t.Status.Damage > limit
	if !t.Data.IsPlanet && t.Status.Crew < flak.MinCrewAlive {
		dead = true
	}
	if !dead {
		return
	}

	t.Status.Alive = false
	if agg := a.playerAggregate(t.Data.Owner); agg != nil {
		agg.NumLiveUnits--
		agg.SumCompensation -= int32(t.Data.Compensation)
	}
	vis.KillShip(target)
}
