package flak

import "testing"

func buildTwoFleetSetup(env Environment, cfg Configuration) *Setup {
	u0 := newTestUnit(0, 1, false, env, cfg)
	u1 := newTestUnit(1, 2, false, env, cfg)
	u2 := newTestUnit(2, 2, false, env, cfg) // unreachable: no one targets it with bonus>0

	s := &Setup{
		Units: []Unit{u0, u1, u2},
		Seed:  42,
	}
	s.Fleets = []Fleet{
		{Data: FleetData{Owner: 1, FirstUnit: 0, UnitCount: 1, AttackList: []AttackEdge{{Target: 1, RatingBonus: 10}}}, Status: FleetStatus{Alive: true, Enemy: -1}},
		{Data: FleetData{Owner: 2, FirstUnit: 1, UnitCount: 2, AttackList: []AttackEdge{{Target: 0, RatingBonus: 5}}}, Status: FleetStatus{Alive: true, Enemy: -1}},
	}
	s.Units[0].Data.Fleet = 0
	s.Units[1].Data.Fleet = 1
	s.Units[2].Data.Fleet = 1
	return s
}

func TestRemovePassiveObjectsPrunesUnreachableUnit(t *testing.T) {
	env := &stubEnvironment{shipSpeed: 6}
	cfg := DefaultConfiguration()
	s := buildTwoFleetSetup(env, cfg)

	s.removePassiveObjects()

	if got := s.NumUnits(); got != 2 {
		t.Fatalf("NumUnits() = %d, want 2 (passive unit should be pruned)", got)
	}
	if got := s.Fleets[1].Data.UnitCount; got != 1 {
		t.Errorf("fleet 1 unit count = %d, want 1", got)
	}
	for _, f := range s.Fleets {
		for _, e := range f.Data.AttackList {
			if e.Target < 0 || e.Target >= s.NumUnits() {
				t.Errorf("dangling attack list index %d", e.Target)
			}
		}
	}
}

func TestComputeFleetSpeedsUsesMinimumAndPlanetIsZero(t *testing.T) {
	env := &stubEnvironment{shipSpeed: 7}
	cfg := DefaultConfiguration()

	planet := newTestUnit(0, 1, true, env, cfg)
	ship := newTestUnit(1, 1, false, env, cfg)
	s := &Setup{Units: []Unit{planet, ship}}
	s.Fleets = []Fleet{{Data: FleetData{Owner: 1, FirstUnit: 0, UnitCount: 2}, Status: FleetStatus{Alive: true, Enemy: -1}}}

	s.computeFleetSpeeds(env)

	if got := s.Fleets[0].Data.Speed; got != 0 {
		t.Errorf("fleet speed = %d, want 0 (planet present)", got)
	}
}

func TestComputeInitialPositionsPlacesPlanetAtAngleZero(t *testing.T) {
	env := &stubEnvironment{shipSpeed: 6}
	cfg := DefaultConfiguration()

	planet := newTestUnit(0, 1, true, env, cfg)
	other := newTestUnit(1, 2, false, env, cfg)
	s := &Setup{Units: []Unit{planet, other}}
	s.Fleets = []Fleet{
		{Data: FleetData{Owner: 1, FirstUnit: 0, UnitCount: 1}, Status: FleetStatus{Alive: true, Enemy: -1}},
		{Data: FleetData{Owner: 2, FirstUnit: 1, UnitCount: 1}, Status: FleetStatus{Alive: true, Enemy: -1}},
	}

	rng := NewRNG(1)
	if err := s.computeInitialPositions(cfg, rng); err != nil {
		t.Fatalf("computeInitialPositions() error = %v", err)
	}

	if s.Fleets[0].Data.InitialY != 0 {
		t.Errorf("planet owner fleet Y = %d, want 0 (angle 0)", s.Fleets[0].Data.InitialY)
	}
	if s.Fleets[0].Data.InitialX <= 0 {
		t.Errorf("planet owner fleet X = %d, want > 0", s.Fleets[0].Data.InitialX)
	}
}

func TestAdjustStrengthsScalesUpBelowTarget(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.CompensationLimit = 900
	env := &stubEnvironment{shipSpeed: 6}

	u0 := newTestUnit(0, 1, false, env, cfg)
	u1 := newTestUnit(1, 2, false, env, cfg)
	u0.Data.Compensation = 10
	u1.Data.Compensation = 10
	s := &Setup{Units: []Unit{u0, u1}}

	s.adjustStrengths(1000, cfg)

	if s.Units[0].Data.Compensation <= 10 {
		t.Errorf("compensation not scaled up: %d", s.Units[0].Data.Compensation)
	}
	if s.Units[0].Data.Compensation > cfg.CompensationLimit {
		t.Errorf("compensation %d exceeds limit %d", s.Units[0].Data.Compensation, cfg.CompensationLimit)
	}
}
