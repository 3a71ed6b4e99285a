package engine

import "github.com/flak-sim/flak/flak"

// phaseLaunchFighters lets every living unit with a fully charged bay and a
// fighter in reserve launch one, provided its fleet has an enemy and the
// unit hasn't exceeded its simultaneous-launch limit.
func (a *Algorithm) phaseLaunchFighters(vis Visualizer) {
	for i := range a.units {
		u := &a.units[i]
		if !u.Status.Alive || u.Data.NumBays == 0 {
			continue
		}
		fleet := &a.fleets[u.Data.Fleet]
		if fleet.Status.Enemy < 0 {
			continue
		}
		if u.Status.LaunchCountdown > 0 || u.Status.FightersRemaining <= 0 {
			continue
		}
		if u.Status.FightersInFlight >= u.Data.MaxFightersLaunched {
			continue
		}

		bay := -1
		for b := 0; b < u.Data.NumBays; b++ {
			if u.Status.BayCharge[b] >= 1000 {
				bay = b
				break
			}
		}
		if bay < 0 {
			continue
		}

		u.Status.BayCharge[bay] = 0
		u.Status.FightersRemaining--
		u.Status.FightersInFlight++
		u.Status.LaunchCountdown = u.Config.BayLaunchInterval

		pos := a.unitPosition(i)
		a.spawnTransient(flak.KindFighter, i, fleet.Status.Enemy, pos, u.Config.FighterMovementSpeed, u.Config.FighterStrikes, 0, 0, vis)
	}
}
