package engine

import "github.com/flak-sim/flak/flak"

// phaseFireTorpedoes lets every living unit with charged tubes fire at its
// fleet's enemy, up to its current TorpedoLimit for this tick and its
// remaining torpedo stock, provided the target is in range. Hit or miss is
// decided here, at launch, not on arrival: the torpedo's Strikes field
// carries the precomputed verdict so movement is a pure position update.
func (a *Algorithm) phaseFireTorpedoes(vis Visualizer) {
	for i := range a.units {
		u := &a.units[i]
		if !u.Status.Alive || u.Data.NumLaunchers == 0 {
			continue
		}
		fleet := &a.fleets[u.Data.Fleet]
		enemy := fleet.Status.Enemy
		if enemy < 0 || !a.units[enemy].Status.Alive {
			continue
		}

		myPos := a.unitPosition(i)
		enemyPos := a.unitPosition(enemy)
		if !myPos.IsDistanceLERadius(enemyPos, u.Config.TorpFiringRange) {
			continue
		}

		fired := 0
		for t := 0; t < u.Data.NumLaunchers && fired < u.Status.TorpedoLimit; t++ {
			if u.Status.TubeCharge[t] < 1000 {
				continue
			}
			if u.Status.NumTorpedoes <= 0 {
				break
			}

			u.Status.TubeCharge[t] = 0
			u.Status.NumTorpedoes--
			fired++

			hit := 0
			if int(a.rng.Next(100)) < u.Config.TorpHitOdds {
				hit = 1
			}

			kill := a.env.GetTorpedoKillPower(u.Data.TorpedoType)
			explosion := a.env.GetTorpedoDamagePower(u.Data.TorpedoType)
			if !a.alternativeCombat {
				kill *= 2
				explosion *= 2
			}
			a.spawnTransient(flak.KindTorpedo, i, enemy, myPos, flak.TorpMovementSpeed, hit, kill, explosion, vis)
		}
	}
}
