// Package engine implements the FLAK Algorithm: the per-tick phase
// pipeline, the event recorder, the status token, and the Battle façade
// that wrap flak.Setup and flak.Environment into a playable battle.
package engine

// NoEnemy is the sentinel a Visualizer receives in place of a ship index to
// mean "attacking no one / unknown". It is distinct from any valid index.
const NoEnemy = -1

// ShipInfo is the read-only snapshot of a unit's identity and loadout
// handed to Visualizer.CreateShip. It never changes after creation; later
// mutation is reported through the mutation-specific callbacks.
type ShipInfo struct {
	Name             string
	IsPlanet         bool
	Player           int
	InitialShield    int
	InitialDamage    int
	InitialCrew      int
	NumBeams         int
	NumLaunchers     int
	NumBays          int
	BeamType         int
	TorpedoType      int
	Mass             int
	ID               int
}

// Visualizer is the narrow callback surface the Algorithm emits. Ships and
// fleets are identified by 0-based indexes, matching the Algorithm/Setup.
// Fighters and torpedoes ("objects") are identified by a reused integer id:
// an id is fresh only on the create* call that introduces it, and is
// eligible for reuse only after the matching kill*/land*/hit*/miss* call.
type Visualizer interface {
	// UpdateTime is called once per tick, after all other events for it.
	UpdateTime(time int32)

	// Fleets
	CreateFleet(fleetNr int, x, y int32, player int, firstShip int, numShips int)
	SetEnemy(fleetNr int, enemy int)
	MoveFleet(fleetNr int, x, y int32)
	KillFleet(fleetNr int)

	// Ships
	CreateShip(shipNr int, x, y, z int32, info ShipInfo)
	MoveShip(shipNr int, x, y, z int32)
	KillShip(shipNr int)

	// Fighters
	CreateFighter(id int, x, y, z int32, player int, enemy int)
	MoveFighter(id int, x, y, z int32, to int)
	LandFighter(id int)
	KillFighter(id int)

	// Torpedoes
	CreateTorpedo(id int, x, y, z int32, player int, enemy int)
	MoveTorpedo(id int, x, y, z int32)
	HitTorpedo(id int, shipNr int)
	MissTorpedo(id int)

	// Beams (four source/destination combinations)
	FireBeamShipShip(from int, beamNr int, to int, hits bool)
	FireBeamShipFighter(from int, beamNr int, to int, hits bool)
	FireBeamFighterShip(from int, to int, hits bool)
	FireBeamFighterFighter(from int, to int, hits bool)
}

// NullVisualizer discards every callback. It is used by the Battle façade
// to play a setup to completion without paying for event construction, and
// by tests that only care about final state.
type NullVisualizer struct{}

var _ Visualizer = NullVisualizer{}

func (NullVisualizer) UpdateTime(time int32)                                       {}
func (NullVisualizer) CreateFleet(fleetNr int, x, y int32, player int, firstShip, numShips int) {}
func (NullVisualizer) SetEnemy(fleetNr int, enemy int)                              {}
func (NullVisualizer) MoveFleet(fleetNr int, x, y int32)                            {}
func (NullVisualizer) KillFleet(fleetNr int)                                        {}
func (NullVisualizer) CreateShip(shipNr int, x, y, z int32, info ShipInfo)          {}
func (NullVisualizer) MoveShip(shipNr int, x, y, z int32)                           {}
func (NullVisualizer) KillShip(shipNr int)                                          {}
func (NullVisualizer) CreateFighter(id int, x, y, z int32, player int, enemy int)   {}
func (NullVisualizer) MoveFighter(id int, x, y, z int32, to int)                    {}
func (NullVisualizer) LandFighter(id int)                                          {}
func (NullVisualizer) KillFighter(id int)                                          {}
func (NullVisualizer) CreateTorpedo(id int, x, y, z int32, player int, enemy int)   {}
func (NullVisualizer) MoveTorpedo(id int, x, y, z int32)                            {}
func (NullVisualizer) HitTorpedo(id int, shipNr int)                               {}
func (NullVisualizer) MissTorpedo(id int)                                          {}
func (NullVisualizer) FireBeamShipShip(from, beamNr, to int, hits bool)            {}
func (NullVisualizer) FireBeamShipFighter(from, beamNr, to int, hits bool)         {}
func (NullVisualizer) FireBeamFighterShip(from, to int, hits bool)                 {}
func (NullVisualizer) FireBeamFighterFighter(from, to int, hits bool)              {}
