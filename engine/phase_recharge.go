package engine

// phaseRecharge advances every living unit's beam, tube, and bay charges by
// its recharge rate, clamped to 1000 (100.0%).
func (a *Algorithm) phaseRecharge() {
	for i := range a.units {
		u := &a.units[i]
		if !u.Status.Alive {
			continue
		}
		for b := 0; b < u.Data.NumBeams; b++ {
			u.Status.BeamCharge[b] = rechargeOne(u.Status.BeamCharge[b], u.Config.BeamRechargeRate)
		}
		for t := 0; t < u.Data.NumLaunchers; t++ {
			u.Status.TubeCharge[t] = rechargeOne(u.Status.TubeCharge[t], u.Config.TubeRechargeRate)
		}
		for y := 0; y < u.Data.NumBays; y++ {
			u.Status.BayCharge[y] = rechargeOne(u.Status.BayCharge[y], u.Config.BayRechargeRate)
		}
		if u.Status.LaunchCountdown > 0 {
			u.Status.LaunchCountdown--
		}
	}
}

func rechargeOne(charge, rate int) int {
	charge += rate
	if charge > 1000 {
		charge = 1000
	}
	return charge
}
