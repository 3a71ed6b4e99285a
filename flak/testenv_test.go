package flak

// stubEnvironment is a fixed-value Environment used by flak package tests.
// Apart from GetPlayerRaceNumber, which returns the player number itself,
// it returns the same numbers regardless of player/level so formula tests
// stay focused on the arithmetic rather than the lookup plumbing.
type stubEnvironment struct {
	shipSpeed int
}

func (e *stubEnvironment) GetConfiguration(opt ScalarOption) int {
	switch opt {
	case AllowAlternativeCombat:
		return 1
	case FireOnAttackFighters:
		return 1
	case StandoffDistance:
		return 3000
	}
	return 0
}

func (e *stubEnvironment) GetPlayerConfiguration(opt PlayerOption, player int) int {
	switch opt {
	case ShipMovementSpeed:
		return e.shipSpeed
	case BeamFiringRange, TorpFiringRange, FighterFiringRange:
		return 30000
	case BeamHitShipCharge:
		return 700
	case BayLaunchInterval:
		return 4
	case FighterKillOdds:
		return 50
	}
	return 0
}

func (e *stubEnvironment) GetExperienceConfiguration(opt ExperienceOption, level, player int) int {
	switch opt {
	case BayRechargeRate, BeamRechargeRate, TubeRechargeRate:
		return 120
	case TorpHitOdds, BeamHitOdds:
		return 65
	case ShieldKillScaling, ShieldDamageScaling, HullDamageScaling, CrewKillScaling:
		return 10
	case FighterMovementSpeed:
		return 340
	case FighterFiringRange2:
		return 6
	case BeamHitFighterCharge:
		return 500
	}
	return 0
}

func (e *stubEnvironment) GetBeamKillPower(beamType int) int     { return beamType * 3 }
func (e *stubEnvironment) GetBeamDamagePower(beamType int) int   { return beamType * 4 }
func (e *stubEnvironment) GetTorpedoKillPower(t int) int         { return t * 5 }
func (e *stubEnvironment) GetTorpedoDamagePower(t int) int       { return t * 8 }
func (e *stubEnvironment) GetPlayerRaceNumber(player int) int {
	return player
}

func newTestUnit(index, owner int, isPlanet bool, env Environment, cfg Configuration) Unit {
	data := UnitData{
		Index:            index,
		ID:               index + 1,
		Owner:            owner,
		IsPlanet:         isPlanet,
		Mass:             1000,
		InitialShield:    100,
		InitialDamage:    0,
		InitialCrew:      200,
		NumBeams:         4,
		NumLaunchers:     3,
		NumBays:          0,
		BeamType:         4,
		TorpedoType:      3,
		InitialFighters:  0,
		InitialTorpedoes: 20,
		ExperienceLevel:  0,
	}
	return NewUnit(data, env, cfg)
}
