package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/flak-sim/flak/flak"
)

func newOneOnOneAlgorithm(t *testing.T) *Algorithm {
	t.Helper()
	setup := twoFleetSetup()
	env := stubEnvironment{}
	if err := setup.InitAfterSetup(flak.DefaultConfiguration(), env, flak.NewRNG(setup.Seed)); err != nil {
		t.Fatalf("InitAfterSetup() error = %v", err)
	}
	alg := NewAlgorithm(setup, env, zerolog.Nop())
	alg.Init(NullVisualizer{})
	return alg
}

func TestHitShipWithDamagesShieldThenHull(t *testing.T) {
	alg := newOneOnOneAlgorithm(t)
	target := &alg.units[1]
	target.Status.Shield = 10

	alg.hitShipWith(0, 1, 5, 100, false, NullVisualizer{})

	if target.Status.Shield != 0 {
		t.Errorf("shield = %v, want 0 (fully depleted)", target.Status.Shield)
	}
	if target.Status.Damage <= 0 {
		t.Errorf("damage = %v, want > 0 (shield leak carried to hull)", target.Status.Damage)
	}
	if target.Status.LastHitBy != 0 {
		t.Errorf("LastHitBy = %d, want 0", target.Status.LastHitBy)
	}
}

func TestHitShipWithDeathRaySkipsShieldAndHull(t *testing.T) {
	alg := newOneOnOneAlgorithm(t)
	target := &alg.units[1]
	target.Status.Shield = 80
	beforeDamage := target.Status.Damage

	alg.hitShipWith(0, 1, 50, 0, true, NullVisualizer{})

	if target.Status.Shield != 80 {
		t.Errorf("shield = %v, want unchanged 80 (death ray bypasses shields)", target.Status.Shield)
	}
	if target.Status.Damage != beforeDamage {
		t.Errorf("damage = %v, want unchanged %v (death ray does no hull damage)", target.Status.Damage, beforeDamage)
	}
	if target.Status.Crew >= 200 {
		t.Errorf("crew = %v, want reduced from 200", target.Status.Crew)
	}
}

func TestHitShipWithCompensationBonusRequiresBothConditions(t *testing.T) {
	alg := newOneOnOneAlgorithm(t)
	attAgg := alg.playerAggregate(alg.units[0].Data.Owner)
	oppAgg := alg.playerAggregate(alg.units[1].Data.Owner)

	// Attacker outnumbered but NOT weaker in compensation: no bonus.
	attAgg.NumLiveUnits = 1
	oppAgg.NumLiveUnits = 5
	attAgg.SumCompensation = 500
	oppAgg.SumCompensation = 100

	target := &alg.units[1]
	target.Status.Shield = 100
	alg.hitShipWith(0, 1, 10, 20, false, NullVisualizer{})
	noBonusShield := target.Status.Shield

	alg2 := newOneOnOneAlgorithm(t)
	attAgg2 := alg2.playerAggregate(alg2.units[0].Data.Owner)
	oppAgg2 := alg2.playerAggregate(alg2.units[1].Data.Owner)
	attAgg2.NumLiveUnits = 1
	oppAgg2.NumLiveUnits = 5
	attAgg2.SumCompensation = 100
	oppAgg2.SumCompensation = 500

	target2 := &alg2.units[1]
	target2.Status.Shield = 100
	alg2.hitShipWith(0, 1, 10, 20, false, NullVisualizer{})
	bonusShield := target2.Status.Shield

	if bonusShield >= noBonusShield {
		t.Errorf("compensation-bonus hit shield %v, no-bonus hit shield %v; want bonus hit strictly stronger", bonusShield, noBonusShield)
	}
}

func TestCheckDeathKillsOnDamageOverLimit(t *testing.T) {
	alg := newOneOnOneAlgorithm(t)
	target := &alg.units[1]
	target.Status.Damage = flak.NormalDamageLimit + 1

	killed := false
	vis := &killTrackingVisualizer{onKill: func(int) { killed = true }}
	alg.checkDeath(1, vis)

	if !killed || target.Status.Alive {
		t.Errorf("unit with damage %v should have died", target.Status.Damage)
	}
}

type killTrackingVisualizer struct {
	NullVisualizer
	onKill func(int)
}

func (v *killTrackingVisualizer) KillShip(shipNr int) { v.onKill(shipNr) }
