package engine

import "github.com/flak-sim/flak/flak"

// stubEnvironment is a fixed-value flak.Environment for engine package
// tests: enough variation to exercise charge/recharge and targeting, not
// meant to model any particular ruleset.
type stubEnvironment struct{}

func (stubEnvironment) GetConfiguration(opt flak.ScalarOption) int {
	switch opt {
	case flak.AllowAlternativeCombat:
		return 0
	case flak.FireOnAttackFighters:
		return 0
	case flak.StandoffDistance:
		return 2000
	}
	return 0
}

func (stubEnvironment) GetPlayerConfiguration(opt flak.PlayerOption, player int) int {
	switch opt {
	case flak.ShipMovementSpeed:
		return 200
	case flak.BeamFiringRange, flak.TorpFiringRange, flak.FighterFiringRange:
		return 30000
	case flak.BeamHitShipCharge:
		return 700
	case flak.BayLaunchInterval:
		return 3
	case flak.FighterKillOdds:
		return 40
	}
	return 0
}

func (stubEnvironment) GetExperienceConfiguration(opt flak.ExperienceOption, level, player int) int {
	switch opt {
	case flak.BayRechargeRate, flak.BeamRechargeRate, flak.TubeRechargeRate:
		return 250
	case flak.TorpHitOdds, flak.BeamHitOdds:
		return 70
	case flak.ShieldKillScaling, flak.ShieldDamageScaling, flak.HullDamageScaling, flak.CrewKillScaling:
		return 15
	case flak.FighterMovementSpeed:
		return 300
	case flak.FighterFiringRange2:
		return 4
	case flak.BeamHitFighterCharge:
		return 500
	}
	return 0
}

func (stubEnvironment) GetBeamKillPower(beamType int) int   { return beamType * 3 }
func (stubEnvironment) GetBeamDamagePower(beamType int) int { return beamType * 4 }
func (stubEnvironment) GetTorpedoKillPower(t int) int       { return t * 5 }
func (stubEnvironment) GetTorpedoDamagePower(t int) int     { return t * 8 }
func (stubEnvironment) GetPlayerRaceNumber(player int) int  { return 1 }

// fixedOutsideRNG always returns 0, picking the first candidate.
type fixedOutsideRNG struct{}

func (fixedOutsideRNG) Next(max uint16) uint16 { return 0 }

func newTestUnit(index, owner int, env flak.Environment, cfg flak.Configuration) flak.Unit {
	data := flak.UnitData{
		Index:            index,
		ID:               index + 1,
		Owner:            owner,
		Mass:             100,
		InitialShield:    100,
		InitialDamage:    0,
		InitialCrew:      200,
		NumBeams:         3,
		NumLaunchers:     2,
		NumBays:          0,
		BeamType:         4,
		TorpedoType:      3,
		InitialFighters:  0,
		InitialTorpedoes: 30,
		ExperienceLevel:  0,
		Name:             "test unit",
	}
	return flak.NewUnit(data, env, cfg)
}

func twoFleetSetup() *flak.Setup {
	env := stubEnvironment{}
	cfg := flak.DefaultConfiguration()

	u0 := newTestUnit(0, 1, env, cfg)
	u1 := newTestUnit(1, 2, env, cfg)
	u0.Data.Fleet = 0
	u1.Data.Fleet = 1

	s := &flak.Setup{
		Units: []flak.Unit{u0, u1},
		Seed:  7,
	}
	s.Fleets = []flak.Fleet{
		{Data: flak.FleetData{Owner: 1, FirstUnit: 0, UnitCount: 1, AttackList: []flak.AttackEdge{{Target: 1, RatingBonus: 10}}}, Status: flak.FleetStatus{Alive: true, Enemy: -1}},
		{Data: flak.FleetData{Owner: 2, FirstUnit: 1, UnitCount: 1, AttackList: []flak.AttackEdge{{Target: 0, RatingBonus: 5}}}, Status: flak.FleetStatus{Alive: true, Enemy: -1}},
	}
	return s
}
