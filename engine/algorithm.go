package engine

import (
	"github.com/rs/zerolog"

	"github.com/flak-sim/flak/flak"
)

// Algorithm is the FLAK tick-driven simulator core: owns all mutable unit,
// fleet, and transient state for one battle, runs the §4.3 phase pipeline,
// and emits visualization events. It is not safe for concurrent use; two
// independent Algorithm instances may run on separate goroutines as long as
// they don't share a Setup that either one mutates (Setup is read-only
// during play).
type Algorithm struct {
	env flak.Environment

	units  []flak.Unit
	fleets []flak.Fleet

	// players is indexed by player number [1, flak.NumOwners]; slot 0 is
	// unused so player numbers can index directly without off-by-one.
	players [flak.NumOwners + 1]*flak.PlayerAggregate

	rng *flak.RNG

	time        int32
	terminated  bool

	alternativeCombat    bool
	fireOnAttackFighters bool
	standoffDistance     int32

	pool objectPool

	log zerolog.Logger
}

// NewAlgorithm builds an Algorithm over a copy of setup's units and fleets.
// The setup itself is never mutated; Algorithm owns its own working copy of
// all mutable Status so the same Setup can be replayed multiple times (the
// Battle façade relies on this).
func NewAlgorithm(setup *flak.Setup, env flak.Environment, log zerolog.Logger) *Algorithm {
	a := &Algorithm{
		env: env,
		log: log,
	}
	a.units = make([]flak.Unit, len(setup.Units))
	copy(a.units, setup.Units)
	a.fleets = make([]flak.Fleet, len(setup.Fleets))
	copy(a.fleets, setup.Fleets)

	a.rng = flak.NewRNG(setup.Seed)
	a.alternativeCombat = env.GetConfiguration(flak.AllowAlternativeCombat) != 0
	a.fireOnAttackFighters = env.GetConfiguration(flak.FireOnAttackFighters) != 0
	a.standoffDistance = int32(env.GetConfiguration(flak.StandoffDistance))
	return a
}

// GetTime returns the current tick count: 0 right after Init, incrementing
// by exactly one per PlayCycle call that advances the battle.
func (a *Algorithm) GetTime() int32 { return a.time }

// IsTerminated reports whether the battle has ended.
func (a *Algorithm) IsTerminated() bool { return a.terminated }

// NumUnits returns the number of units in the battle.
func (a *Algorithm) NumUnits() int { return len(a.units) }

// NumFleets returns the number of fleets in the battle.
func (a *Algorithm) NumFleets() int { return len(a.fleets) }

// Unit returns a copy of the current state of unit i, or the zero Unit if i
// is out of range (§7: accessors never fail, they return benign defaults).
func (a *Algorithm) Unit(i int) flak.Unit {
	if i < 0 || i >= len(a.units) {
		return flak.Unit{}
	}
	return a.units[i]
}

// Fleet returns a copy of the current state of fleet i, or the zero Fleet
// if i is out of range.
func (a *Algorithm) Fleet(i int) flak.Fleet {
	if i < 0 || i >= len(a.fleets) {
		return flak.Fleet{}
	}
	return a.fleets[i]
}

func (a *Algorithm) playerAggregate(player int) *flak.PlayerAggregate {
	if player <= 0 || player > flak.NumOwners {
		return nil
	}
	if a.players[player] == nil {
		a.players[player] = &flak.PlayerAggregate{Number: player}
	}
	return a.players[player]
}

// unitPosition returns a unit's rendered position: its fleet's current
// position plus the unit's Z stacking offset.
func (a *Algorithm) unitPosition(unitIndex int) flak.Position {
	u := &a.units[unitIndex]
	fleetPos := a.fleets[u.Data.Fleet].Status.Position
	return flak.Position{X: fleetPos.X, Y: fleetPos.Y, Z: fleetPos.Z + u.Status.ZOffset}
}

// Init resets the clock and every fleet's Status, builds the player
// aggregates, assigns each unit's Z offset within its fleet, and issues the
// initial createFleet/createShip events followed by one chooseEnemy pass per
// fleet. The rest of each unit's Status is used as it stands, which for a
// new Algorithm is the Setup's initial state. Must be called exactly once
// before the first PlayCycle.
func (a *Algorithm) Init(vis Visualizer) {
	a.time = 0
	a.terminated = false

	for p := 1; p <= flak.NumOwners; p++ {
		a.players[p] = &flak.PlayerAggregate{
			Number:          p,
			FighterKillOdds: a.env.GetPlayerConfiguration(flak.FighterKillOdds, p),
		}
	}

	for fi := range a.fleets {
		f := &a.fleets[fi]
		f.Status.Position = flak.Position{X: f.Data.InitialX, Y: f.Data.InitialY}
		f.Status.Alive = true
		f.Status.Enemy = -1

		n := f.Data.UnitCount
		for x := 0; x < n; x++ {
			u := &a.units[f.Data.FirstUnit+x]
			u.Status.ZOffset = int32(-(n-1)*50 + x*100)

			agg := a.playerAggregate(u.Data.Owner)
			agg.NumLiveUnits++
			agg.SumCompensation += int32(u.Data.Compensation)
		}
	}

	for fi := range a.fleets {
		f := &a.fleets[fi]
		vis.CreateFleet(fi, f.Status.Position.X, f.Status.Position.Y, f.Data.Owner, f.Data.FirstUnit, f.Data.UnitCount)
	}
	for i := range a.units {
		u := &a.units[i]
		pos := a.unitPosition(i)
		vis.CreateShip(i, pos.X, pos.Y, pos.Z, ShipInfo{
			Name:          u.Data.Name,
			IsPlanet:      u.Data.IsPlanet,
			Player:        u.Data.Owner,
			InitialShield: int(u.Status.Shield),
			InitialDamage: int(u.Status.Damage),
			InitialCrew:   int(u.Status.Crew),
			NumBeams:      u.Data.NumBeams,
			NumLaunchers:  u.Data.NumLaunchers,
			NumBays:       u.Data.NumBays,
			BeamType:      u.Data.BeamType,
			TorpedoType:   u.Data.TorpedoType,
			Mass:          u.Data.Mass,
			ID:            u.Data.ID,
		})
	}

	for fi := range a.fleets {
		a.chooseEnemy(fi, vis)
	}

	a.log.Debug().Int("units", len(a.units)).Int("fleets", len(a.fleets)).Msg("algorithm initialized")
}

// PlayCycle advances the battle by exactly one tick if it has not already
// terminated, running the phase pipeline in the mandated order and emitting
// UpdateTime last. It returns true iff it advanced time; once terminated,
// further calls return false without emitting events.
func (a *Algorithm) PlayCycle(vis Visualizer) bool {
	if a.terminated {
		return false
	}

	a.phaseRecharge()
	if a.time%flak.ChooseEnemyInterval == 0 && a.time != 0 {
		for fi := range a.fleets {
			a.chooseEnemy(fi, vis)
		}
	}
	a.phaseLaunchFighters(vis)
	a.phaseFireTorpedoes(vis)
	a.phaseFireBeams(vis)
	a.phaseFightersFire(vis)
	a.phaseFighterIntercept(vis)
	a.phaseMoveTransients(vis)
	a.phaseFleetGC(vis)
	a.phasePlayerGC()
	a.phaseMoveFleets(vis)

	a.time++
	vis.UpdateTime(a.time)

	a.terminated = a.checkTermination()
	return true
}

// checkTermination reports whether the battle is over: every player's
// transient-object list is empty and no living fleet has a current enemy.
func (a *Algorithm) checkTermination() bool {
	for p := 1; p <= flak.NumOwners; p++ {
		agg := a.players[p]
		if agg != nil && len(agg.Stuff) > 0 {
			return false
		}
	}
	for fi := range a.fleets {
		f := &a.fleets[fi]
		if f.Status.Alive && f.Status.Enemy >= 0 {
			return false
		}
	}
	return true
}
