package engine

import "github.com/flak-sim/flak/flak"

// phaseFleetGC kills off any fleet whose units are all dead and clears the
// enemy pointer of any fleet whose target just died, so the next
// choose-enemy pass (or termination check) sees accurate state.
func (a *Algorithm) phaseFleetGC(vis Visualizer) {
	for fi := range a.fleets {
		f := &a.fleets[fi]
		if !f.Status.Alive {
			continue
		}

		anyAlive := false
		for x := 0; x < f.Data.UnitCount; x++ {
			if a.units[f.Data.FirstUnit+x].Status.Alive {
				anyAlive = true
				break
			}
		}
		if !anyAlive {
			f.Status.Alive = false
			f.Status.Enemy = -1
			vis.KillFleet(fi)
			continue
		}

		if f.Status.Enemy >= 0 && !a.units[f.Status.Enemy].Status.Alive {
			f.Status.Enemy = -1
			vis.SetEnemy(fi, -1)
		}
	}
}

// phasePlayerGC compacts each player's transient list, dropping slots freed
// earlier this tick, and keeps slice capacity from growing unbounded over a
// long battle.
func (a *Algorithm) phasePlayerGC() {
	for p := 1; p <= flak.NumOwners; p++ {
		agg := a.players[p]
		if agg == nil || len(agg.Stuff) == 0 {
			continue
		}
		compact := agg.Stuff[:0]
		for _, t := range agg.Stuff {
			if t != nil {
				compact = append(compact, t)
			}
		}
		agg.Stuff = compact
	}
}
