package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/flak-sim/flak/flak"
)

// recordingVisualizer counts calls instead of discarding them, so tests can
// assert the pipeline actually drove combat rather than just ticking time.
type recordingVisualizer struct {
	NullVisualizer
	fireShipShip int
	killShip     int
	setEnemy     int
}

func (r *recordingVisualizer) FireBeamShipShip(from, beamNr, to int, hits bool) {
	r.fireShipShip++
}
func (r *recordingVisualizer) KillShip(shipNr int)      { r.killShip++ }
func (r *recordingVisualizer) SetEnemy(fleetNr, enemy int) { r.setEnemy++ }

func TestAlgorithmInitAssignsEnemiesAndCreatesShips(t *testing.T) {
	setup := twoFleetSetup()
	env := stubEnvironment{}
	if err := setup.InitAfterSetup(flak.DefaultConfiguration(), env, flak.NewRNG(setup.Seed)); err != nil {
		t.Fatalf("InitAfterSetup() error = %v", err)
	}

	alg := NewAlgorithm(setup, env, zerolog.Nop())
	vis := &recordingVisualizer{}
	alg.Init(vis)

	if vis.setEnemy == 0 {
		t.Errorf("Init() issued no SetEnemy events, want at least one")
	}
	if got := alg.Fleet(0).Status.Enemy; got < 0 {
		t.Errorf("fleet 0 enemy = %d, want an assigned target", got)
	}
}

func TestAlgorithmRunsToTermination(t *testing.T) {
	setup := twoFleetSetup()
	env := stubEnvironment{}
	if err := setup.InitAfterSetup(flak.DefaultConfiguration(), env, flak.NewRNG(setup.Seed)); err != nil {
		t.Fatalf("InitAfterSetup() error = %v", err)
	}

	battle := NewBattle(setup, env, zerolog.Nop())
	vis := &recordingVisualizer{}
	battle.Algorithm().Init(vis)

	const maxTicks = 20000
	ticks := 0
	for !battle.Algorithm().IsTerminated() && ticks < maxTicks {
		battle.Algorithm().PlayCycle(vis)
		ticks++
	}
	if !battle.Algorithm().IsTerminated() {
		t.Fatalf("battle did not terminate within %d ticks", maxTicks)
	}
	if battle.Algorithm().GetTime() == 0 {
		t.Errorf("battle terminated at time 0, want at least one cycle to have run")
	}

	results := battle.Results(fixedOutsideRNG{})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	aliveCount := 0
	for _, r := range results {
		if r.EndingStatus == flak.EndingStatusSurvived {
			aliveCount++
		}
	}
	if aliveCount == 2 {
		t.Errorf("both units survived a battle that terminated; expected at least one loser")
	}
}

func TestSaveRestoreStatusRoundTrips(t *testing.T) {
	setup := twoFleetSetup()
	env := stubEnvironment{}
	if err := setup.InitAfterSetup(flak.DefaultConfiguration(), env, flak.NewRNG(setup.Seed)); err != nil {
		t.Fatalf("InitAfterSetup() error = %v", err)
	}

	alg := NewAlgorithm(setup, env, zerolog.Nop())
	vis := NullVisualizer{}
	alg.Init(vis)
	for i := 0; i < 3 && !alg.IsTerminated(); i++ {
		alg.PlayCycle(vis)
	}

	tok := alg.SaveStatus()
	wantTime := alg.GetTime()
	wantShield := alg.Unit(0).Status.Shield

	for i := 0; i < 3 && !alg.IsTerminated(); i++ {
		alg.PlayCycle(vis)
	}
	alg.RestoreStatus(tok)

	if alg.GetTime() != wantTime {
		t.Errorf("GetTime() after restore = %d, want %d", alg.GetTime(), wantTime)
	}
	if got := alg.Unit(0).Status.Shield; got != wantShield {
		t.Errorf("unit 0 shield after restore = %v, want %v", got, wantShield)
	}
}
