package engine

import "github.com/flak-sim/flak/flak"

// findCaptor decides which player gets credit for target's destruction and
// returns that player's number: the owner of the unit that scored the last
// hit, if that unit is still alive; failing that, the hitter's own player if
// any of its units lives; failing that, the victim's own player, likewise;
// failing that, the owner of a living unit picked uniformly at random via
// the host-supplied outside source of randomness. Each fallback step draws
// from outside once. Returns 0 if target was never hit or nobody is left to
// claim the kill. This step is host adjudication, not part of the deterministic
// tick playback, so it draws from outside rather than the tick RNG.
func (a *Algorithm) findCaptor(target int, outside flak.OutsideRNG) int {
	t := &a.units[target]

	if t.Status.LastHitBy < 0 {
		return 0
	}
	hitter := &a.units[t.Status.LastHitBy]
	if hitter.Status.Alive {
		return hitter.Data.Owner
	}

	counts := make([]int, flak.NumOwners+1)
	total := 0
	for i := range a.units {
		if a.units[i].Status.Alive {
			counts[a.units[i].Data.Owner]++
			total++
		}
	}

	if player := hitter.Data.Owner; counts[player] > 0 {
		outside.Next(uint16(counts[player]))
		return player
	}
	if player := t.Data.Owner; counts[player] > 0 {
		outside.Next(uint16(counts[player]))
		return player
	}
	if total > 0 {
		pick := int(outside.Next(uint16(total)))
		for i := range a.units {
			if !a.units[i].Status.Alive {
				continue
			}
			if pick == 0 {
				return a.units[i].Data.Owner
			}
			pick--
		}
	}
	return 0
}

// findEndingStatus reports the EndingStatus value to record for target once
// the battle is over: EndingStatusSurvived if it's still alive,
// EndingStatusDestroyed if nobody claims it or the capture test fails, or
// the capturing player's number if the victim is a planet, or a ship whose
// crew is below 0.5 and whose damage is within the survival limit for the
// victim/captor race pairing.
func (a *Algorithm) findEndingStatus(target int, outside flak.OutsideRNG) int {
	t := &a.units[target]
	if t.Status.Alive {
		return flak.EndingStatusSurvived
	}

	captor := a.findCaptor(target, outside)
	if captor <= 0 {
		return flak.EndingStatusDestroyed
	}

	limit := flak.NormalDamageLimit
	if a.env.GetPlayerRaceNumber(t.Data.Owner) == flak.RaceLizard && a.env.GetPlayerRaceNumber(captor) == flak.RaceLizard {
		limit = flak.LizardDamageLimit
	}
	if t.Data.IsPlanet || (t.Status.Crew < 0.5 && int(t.Status.Damage+0.5) <= limit) {
		return captor
	}
	return flak.EndingStatusDestroyed
}
