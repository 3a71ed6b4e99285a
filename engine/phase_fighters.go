package engine

import "github.com/flak-sim/flak/flak"

// phaseFightersFire lets every in-flight fighter with strikes remaining
// attack its target ship once, if in range, then lands it once its strike
// budget is exhausted.
func (a *Algorithm) phaseFightersFire(vis Visualizer) {
	for p := 1; p <= flak.NumOwners; p++ {
		agg := a.players[p]
		if agg == nil {
			continue
		}
		stuff := append([]*flak.Transient(nil), agg.Stuff...)
		for _, t := range stuff {
			if t.Kind != flak.KindFighter || t.Strikes <= 0 {
				continue
			}
			target := t.Enemy
			if target < 0 || !a.units[target].Status.Alive {
				continue
			}
			owner := &a.units[t.Owner]
			if !t.Position.IsDistanceLERadius(a.unitPosition(target), owner.Config.FighterFiringRange) {
				continue
			}

			vis.FireBeamFighterShip(t.VisID, target, true)
			a.hitShipWith(t.Owner, target, flak.FighterStrikeKillPower, flak.FighterStrikeDamagePower, false, vis)
			t.Strikes--

			if t.Strikes <= 0 {
				a.landFighter(t, vis)
			}
		}
	}
}

// landFighter returns a fighter to its carrier: it rejoins the reserve
// pool, eligible for relaunch.
func (a *Algorithm) landFighter(t *flak.Transient, vis Visualizer) {
	owner := &a.units[t.Owner]
	if owner.Status.FightersInFlight > 0 {
		owner.Status.FightersInFlight--
	}
	owner.Status.FightersRemaining++
	vis.LandFighter(t.VisID)
	a.releaseTransient(t)
}

// phaseFighterIntercept resolves dogfights: for each unordered pair of
// distinct players who have ever launched fighters, a coin flip decides
// which side scans first, then every one of its attacking fighters within
// FighterInterceptRange of an opposing fighter rolls a chance for one of
// the two to die, until the first kill ends that pair's scan. Each pair is
// processed exactly once per tick.
func (a *Algorithm) phaseFighterIntercept(vis Visualizer) {
	for i := 1; i <= flak.NumOwners; i++ {
		aggI := a.players[i]
		if aggI == nil || !aggI.HasEverHadFighters {
			continue
		}
		for j := i + 1; j <= flak.NumOwners; j++ {
			aggJ := a.players[j]
			if aggJ == nil || !aggJ.HasEverHadFighters {
				continue
			}
			if a.rng.Next(2) == 0 {
				a.fighterIntercept(i, j, vis)
			} else {
				a.fighterIntercept(j, i, vis)
			}
		}
	}
}

func (a *Algorithm) fighterIntercept(left, right int, vis Visualizer) {
	leftAgg, rightAgg := a.players[left], a.players[right]
	if leftAgg == nil || rightAgg == nil {
		return
	}
	leftFighters := append([]*flak.Transient(nil), leftAgg.Stuff...)
	rightFighters := append([]*flak.Transient(nil), rightAgg.Stuff...)

	for _, lf := range leftFighters {
		if lf.Kind != flak.KindFighter {
			continue
		}
		for _, rf := range rightFighters {
			if rf.Kind != flak.KindFighter {
				continue
			}
			if lf.Enemy != rf.Owner && rf.Enemy != lf.Owner {
				continue
			}
			if !lf.Position.IsDistanceLERadius(rf.Position, flak.FighterInterceptRange) {
				continue
			}
			if a.tryIntercept(lf, rf, left, right, vis) {
				return
			}
		}
	}
}

// tryIntercept resolves one dogfight pair, returning true if either fighter
// died (so the caller stops scanning for further opponents this tick: at
// most one kill comes out of a fighterIntercept call). Two independent
// draws decide the outcome: the first decides whether anyone dies at all,
// the second -- only taken if the first says yes -- decides which side.
func (a *Algorithm) tryIntercept(left, right *flak.Transient, leftPlayer, rightPlayer int, vis Visualizer) bool {
	leftOdds := a.players[leftPlayer].FighterKillOdds
	rightOdds := a.players[rightPlayer].FighterKillOdds

	oneF := (100 - leftOdds) * (100 - rightOdds) / 100
	if int(a.rng.Next(100)) >= oneF {
		return false
	}

	total := leftOdds + rightOdds
	if total <= 0 {
		total = 1
	}
	rightProbab := rightOdds * 100 / total

	if int(a.rng.Next(100)) < rightProbab {
		vis.FireBeamFighterFighter(right.VisID, left.VisID, true)
		a.killFighter(left, vis)
	} else {
		vis.FireBeamFighterFighter(left.VisID, right.VisID, true)
		a.killFighter(right, vis)
	}
	return true
}
