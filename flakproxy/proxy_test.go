package flakproxy

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/flak-sim/flak/engine"
	"github.com/flak-sim/flak/flak"
)

type stubEnvironment struct{}

func (stubEnvironment) GetConfiguration(opt flak.ScalarOption) int {
	if opt == flak.StandoffDistance {
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

func twoFleetSetup(t *testing.T) *flak.Setup {
	t.Helper()
	env := stubEnvironment{}
	cfg := flak.DefaultConfiguration()

	newUnit := func(index, owner int) flak.Unit {
		data := flak.UnitData{
			Index: index, ID: index + 1, Owner: owner,
			Mass: 1000, InitialShield: 100, InitialCrew: 200,
			NumBeams: 3, NumLaunchers: 2, BeamType: 4, TorpedoType: 3,
			InitialTorpedoes: 30, Fleet: index,
		}
		return flak.NewUnit(data, env, cfg)
	}

	s := &flak.Setup{
		Units: []flak.Unit{newUnit(0, 1), newUnit(1, 2)},
		Seed:  11,
		Fleets: []flak.Fleet{
			{Data: flak.FleetData{Owner: 1, FirstUnit: 0, UnitCount: 1, AttackList: []flak.AttackEdge{{Target: 1}}}, Status: flak.FleetStatus{Alive: true, Enemy: -1}},
			{Data: flak.FleetData{Owner: 2, FirstUnit: 1, UnitCount: 1, AttackList: []flak.AttackEdge{{Target: 0}}}, Status: flak.FleetStatus{Alive: true, Enemy: -1}},
		},
	}
	require.NoError(t, s.InitAfterSetup(cfg, env, flak.NewRNG(s.Seed)))
	return s
}

func TestProxyRunDeliversBatchesUntilTerminated(t *testing.T) {
	setup := twoFleetSetup(t)
	env := stubEnvironment{}
	alg := engine.NewAlgorithm(setup, env, zerolog.Nop())
	rec := engine.NewEventRecorder()

	p := New(alg, rec)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	sawTerminated := false
	batches := 0
	for batch := range p.Batches {
		batches++
		if batch.Terminated {
			sawTerminated = true
		}
	}
	require.NoError(t, <-done)
	require.Greater(t, batches, 0)
	require.True(t, sawTerminated, "expected a final batch marked Terminated")
}
