package flak

import (
	"errors"
	"fmt"
	"math"
)

// ErrSetupInvariantViolated is returned by Setup construction helpers when
// the caller handed over data that violates a Setup invariant (owner
// mismatch, empty fleet, duplicate/out-of-range player numbers). These are
// programming errors in the producer and abort the battle; see §7.
var ErrSetupInvariantViolated = errors.New("flak: setup invariant violated")

// Setup is the immutable battle input: fleets, units, attack-list edges, a
// seed, a starmap position, and a total-time hint. It owns the
// pre-simulation transforms that establish the invariants the simulator
// relies on (passive-object pruning, fleet-speed derivation, initial
// positioning, strength adjustment).
type Setup struct {
	Units  []Unit
	Fleets []Fleet

	Seed      uint32
	X, Y      int32 // starmap position (light years), not combat coordinates
	TotalTime int32 // hint only; the simulator does not enforce it
	AmbientFlags int32
}

// NumUnits returns the number of units in the setup.
func (s *Setup) NumUnits() int { return len(s.Units) }

// NumFleets returns the number of fleets in the setup.
func (s *Setup) NumFleets() int { return len(s.Fleets) }

// InitAfterSetup runs the pre-simulation transforms in the mandated order:
// passive-object pruning, fleet-speed derivation, initial positioning, and
// (if configured) strength adjustment. config supplies FLAK-specific rule
// knobs not carried by Environment; env supplies host configuration; rng
// drives player shuffling for initial placement.
func (s *Setup) InitAfterSetup(cfg Configuration, env Environment, rng *RNG) error {
	s.removePassiveObjects()
	s.computeFleetSpeeds(env)
	if err := s.computeInitialPositions(cfg, rng); err != nil {
		return err
	}
	if cfg.CompensationAdjust > 0 {
		s.adjustStrengths(cfg.CompensationAdjust, cfg)
	}
	return nil
}

// removePassiveObjects drops any unit that appears in no fleet's attack
// list with a positive rating bonus: such a unit is unreachable and cannot
// itself attack anyone. Attack lists are renumbered and emptied fleets are
// dropped. Mirrors FlakBattle::removePassiveObjects.
func (s *Setup) removePassiveObjects() {
	keep := make([]bool, len(s.Units))
	for i := range s.Fleets {
		for _, e := range s.Fleets[i].Data.AttackList {
			if e.RatingBonus > 0 {
				keep[e.Target] = true
			}
		}
	}

	newIndex := make([]int, len(s.Units))
	newUnits := make([]Unit, 0, len(s.Units))
	for i, u := range s.Units {
		if !keep[i] {
			newIndex[i] = -1
			continue
		}
		newIndex[i] = len(newUnits)
		newUnits = append(newUnits, u)
	}

	newFleets := make([]Fleet, 0, len(s.Fleets))
	for _, f := range s.Fleets {
		newAttackList := make([]AttackEdge, 0, len(f.Data.AttackList))
		for _, e := range f.Data.AttackList {
			if x := newIndex[e.Target]; x >= 0 {
				newAttackList = append(newAttackList, AttackEdge{Target: x, RatingBonus: e.RatingBonus})
			}
		}
		f.Data.AttackList = newAttackList

		survivors := 0
		firstSurvivor := -1
		for x := 0; x < f.Data.UnitCount; x++ {
			if newIndex[f.Data.FirstUnit+x] >= 0 {
				survivors++
				if firstSurvivor < 0 {
					firstSurvivor = newIndex[f.Data.FirstUnit+x]
				}
			}
		}
		if survivors == 0 {
			continue
		}
		f.Data.FirstUnit = firstSurvivor
		f.Data.UnitCount = survivors
		newFleets = append(newFleets, f)
	}

	for i := range newUnits {
		newUnits[i].Data.Index = i
	}
	for fi := range newFleets {
		for x := 0; x < newFleets[fi].Data.UnitCount; x++ {
			newUnits[newFleets[fi].Data.FirstUnit+x].Data.Fleet = fi
		}
	}

	s.Units = newUnits
	s.Fleets = newFleets
}

// computeFleetSpeeds sets each fleet's speed to the minimum over its units'
// movement speed, treating planets as speed 0.
func (s *Setup) computeFleetSpeeds(env Environment) {
	for fi := range s.Fleets {
		f := &s.Fleets[fi]
		speed := 0
		for x := 0; x < f.Data.UnitCount; x++ {
			u := &s.Units[f.Data.FirstUnit+x]
			var unitSpeed int
			if u.Data.IsPlanet {
				unitSpeed = 0
			} else {
				unitSpeed = env.GetPlayerConfiguration(ShipMovementSpeed, u.Data.Owner)
			}
			if x == 0 || unitSpeed < speed {
				speed = unitSpeed
			}
		}
		f.Data.Speed = speed
	}
}

// computeInitialPositions places the planet owner (if any) at angle 0 and
// the rest of the participating players around an arc, then staggers each
// player's own fleets radially and angularly. Player order is shuffled with
// the supplied RNG. Mirrors FlakBattle::computeInitialPositions.
func (s *Setup) computeInitialPositions(cfg Configuration, rng *RNG) error {
	planetOwner := 0
	var players []int
	seen := make(map[int]bool)
	for i := range s.Units {
		owner := s.Units[i].Data.Owner
		if owner <= 0 || owner > NumOwners {
			return fmt.Errorf("%w: unit %d has owner %d out of range", ErrSetupInvariantViolated, i, owner)
		}
		if s.Units[i].Data.IsPlanet {
			if planetOwner != 0 {
				return fmt.Errorf("%w: more than one planet", ErrSetupInvariantViolated)
			}
			planetOwner = owner
		}
		if i == 0 || owner != s.Units[i-1].Data.Owner {
			if seen[owner] {
				return fmt.Errorf("%w: owner %d units are not contiguous", ErrSetupInvariantViolated, owner)
			}
			seen[owner] = true
			players = append(players, owner)
		}
	}
	numPlayers := len(players)
	if numPlayers == 0 {
		return nil
	}

	// Fisher-Yates shuffle driven by the deterministic RNG, matching the
	// original's descending swap order exactly.
	for i := numPlayers - 1; i > 0; i-- {
		j := int(rng.Next(uint16(i + 1)))
		players[i], players[j] = players[j], players[i]
	}

	offs := cfg.StartingDistancePerPlayer * int32(numPlayers)
	counter := 0
	for _, player := range players {
		if planetOwner != 0 {
			if player == planetOwner {
				s.assignInitialPositions(player, 0, cfg.StartingDistancePlanet+offs, cfg)
			} else {
				angle := math.Pi/2 + float64(2*counter+1)*(math.Pi/2)/float64(numPlayers-1)
				s.assignInitialPositions(player, angle, cfg.StartingDistanceShip+offs, cfg)
				counter++
			}
		} else {
			angle := math.Pi/2 + float64(2*counter+1)*math.Pi/float64(numPlayers)
			s.assignInitialPositions(player, angle, cfg.StartingDistanceShip+offs, cfg)
			counter++
		}
	}
	return nil
}

// assignInitialPositions places every fleet of one player along an arc,
// starting at (angle, dist) and stepping outward by the larger of
// StartingDistancePerFleet or the fleet's own speed, and by 1 degree of
// angle per fleet.
func (s *Setup) assignInitialPositions(player int, angle float64, dist int32, cfg Configuration) {
	offset := cfg.StartingDistancePerFleet
	for fi := range s.Fleets {
		f := &s.Fleets[fi]
		if f.Data.Owner != player {
			continue
		}
		if int32(f.Data.Speed) > offset {
			offset = int32(f.Data.Speed)
		}
		f.Data.InitialX = int32(math.Round(math.Cos(angle) * float64(dist)))
		f.Data.InitialY = int32(math.Round(math.Sin(angle) * float64(dist)))
		dist += offset
		angle += math.Pi / 180.0
	}
}

// adjustStrengths scales every unit's compensation up proportionally when
// the battle's total compensation is below unitCount*adjustTo, clamped to
// CompensationLimit. Grounded on setup.cpp::adjustStrengths, which keys the
// target off the total unit count rather than the player count (spec.md's
// "P·adjust" is imprecise here; see DESIGN.md).
func (s *Setup) adjustStrengths(adjustTo int, cfg Configuration) {
	var total int32
	for i := range s.Units {
		total += int32(s.Units[i].Data.Compensation)
	}
	target := int32(len(s.Units)) * int32(adjustTo)
	if total == 0 || total >= target {
		return
	}
	for i := range s.Units {
		u := &s.Units[i]
		newVal := int32(u.Data.Compensation) * target / total
		if newVal > int32(cfg.CompensationLimit) {
			newVal = int32(cfg.CompensationLimit)
		}
		u.Data.Compensation = int(newVal)
	}
}
