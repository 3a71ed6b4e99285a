package flak

// NewUnit builds a Unit from its immutable Data, deriving Config from
// Environment (clamped per §6.1) and Configuration (for rating/compensation),
// and initializing Status per invariant #7: charges start at 1000 if the
// initial shield is 100, else 0, and the torpedo-launch limit equals the
// tube count.
func NewUnit(data UnitData, env Environment, cfg Configuration) Unit {
	data.Rating = computeRating(&data, cfg)
	data.Compensation = computeCompensation(&data, cfg)

	mfl := MFLScale * data.NumBays
	if mfl < MinMFL {
		mfl = MinMFL
	}
	if mfl > MaxMFL {
		mfl = MaxMFL
	}
	data.MaxFightersLaunched = mfl

	owner := data.Owner
	level := data.ExperienceLevel

	uc := UnitConfig{
		BayRechargeRate:  env.GetExperienceConfiguration(BayRechargeRate, level, owner),
		BeamRechargeRate: env.GetExperienceConfiguration(BeamRechargeRate, level, owner),
		TubeRechargeRate: env.GetExperienceConfiguration(TubeRechargeRate, level, owner),

		TorpHitOdds:  clampHitOdds(env.GetExperienceConfiguration(TorpHitOdds, level, owner)),
		BeamHitOdds:  clampHitOdds(env.GetExperienceConfiguration(BeamHitOdds, level, owner)),
		BeamHitBonus: env.GetExperienceConfiguration(BeamHitBonus, level, owner),

		ShieldKillScaling:   clampScaling(env.GetExperienceConfiguration(ShieldKillScaling, level, owner)),
		ShieldDamageScaling: clampScaling(env.GetExperienceConfiguration(ShieldDamageScaling, level, owner)),
		HullDamageScaling:   clampScaling(env.GetExperienceConfiguration(HullDamageScaling, level, owner)),
		CrewKillScaling:     clampScaling(env.GetExperienceConfiguration(CrewKillScaling, level, owner)),

		BeamFiringRange:    int32(env.GetPlayerConfiguration(BeamFiringRange, owner)),
		TorpFiringRange:    int32(env.GetPlayerConfiguration(TorpFiringRange, owner)),
		FighterFiringRange: int32(env.GetPlayerConfiguration(FighterFiringRange, owner)),

		FighterMovementSpeed: env.GetExperienceConfiguration(FighterMovementSpeed, level, owner),
		FighterStrikes:       env.GetExperienceConfiguration(FighterFiringRange2, level, owner),

		BayLaunchInterval:    env.GetPlayerConfiguration(BayLaunchInterval, owner),
		BeamHitFighterCharge: env.GetExperienceConfiguration(BeamHitFighterCharge, level, owner),
		BeamHitShipCharge:    env.GetPlayerConfiguration(BeamHitShipCharge, owner),

		StandoffDistance: int32(env.GetConfiguration(StandoffDistance)),

		FireOnAttackFighters: env.GetConfiguration(FireOnAttackFighters) != 0,
		FighterKillOdds:      clampHitOdds(env.GetPlayerConfiguration(FighterKillOdds, owner)),
	}

	u := Unit{Data: data, Config: uc}
	u.Status = newUnitStatus(&data)
	return u
}

func newUnitStatus(d *UnitData) UnitStatus {
	st := UnitStatus{
		Shield:            float64(d.InitialShield),
		Damage:            float64(d.InitialDamage),
		Crew:              float64(d.InitialCrew),
		Alive:             true,
		LastHitBy:         -1,
		TorpedoLimit:      d.NumLaunchers,
		FightersRemaining: d.InitialFighters,
		NumTorpedoes:      d.InitialTorpedoes,
		MinFightersAboard: d.InitialFighters,
	}
	chargeAt := 0
	if d.InitialShield == 100 {
		chargeAt = 1000
	}
	for i := 0; i < d.NumBeams; i++ {
		st.BeamCharge[i] = chargeAt
	}
	for i := 0; i < d.NumLaunchers; i++ {
		st.TubeCharge[i] = chargeAt
	}
	for i := 0; i < d.NumBays; i++ {
		st.BayCharge[i] = chargeAt
	}
	return st
}
