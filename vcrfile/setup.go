package vcrfile

import "github.com/flak-sim/flak/flak"

// ToSetup builds a flak.Setup from one decoded battle record, deriving
// each unit's Config from env and cfg the way the live game would have
// when the record was first written. The caller still owns calling
// Setup.InitAfterSetup: a loaded record carries raw ship/fleet data, not
// the positions and strength adjustments InitAfterSetup derives from it.
func (b *Battle) ToSetup(env flak.Environment, cfg flak.Configuration) *flak.Setup {
	units := make([]flak.Unit, len(b.Ships))
	for i, sh := range b.Ships {
		data := flak.UnitData{
			Index:            i,
			ID:               int(sh.ID),
			Owner:            int(sh.Owner),
			IsPlanet:         sh.IsPlanet,
			Mass:             int(sh.Mass),
			InitialShield:    int(sh.Shield),
			InitialDamage:    int(sh.Damage),
			InitialCrew:      int(sh.Crew),
			NumBeams:         int(sh.NumBeams),
			NumLaunchers:     int(sh.NumLaunchers),
			NumBays:          int(sh.NumBays),
			BeamType:         int(sh.BeamType),
			TorpedoType:      int(sh.TorpedoType),
			InitialFighters:  int(sh.NumFighters),
			InitialTorpedoes: int(sh.NumTorpedoes),
			ExperienceLevel:  int(sh.ExperienceLevel),
			Name:             sh.Name,
		}
		units[i] = flak.NewUnit(data, env, cfg)
	}

	fleets := make([]flak.Fleet, len(b.Fleets))
	for i, f := range b.Fleets {
		attackList := make([]flak.AttackEdge, len(f.AttackList))
		for j, e := range f.AttackList {
			attackList[j] = flak.AttackEdge{Target: int(e.ShipIndex), RatingBonus: e.RatingBonus}
		}
		fleets[i] = flak.Fleet{
			Data: flak.FleetData{
				Owner:      int(f.Owner),
				FirstUnit:  int(f.FirstShipIndex),
				UnitCount:  int(f.NumShips),
				AttackList: attackList,
			},
			Status: flak.FleetStatus{Enemy: -1},
		}
		for x := 0; x < int(f.NumShips); x++ {
			units[int(f.FirstShipIndex)+x].Data.Fleet = i
		}
	}

	return &flak.Setup{
		Units:        units,
		Fleets:       fleets,
		Seed:         b.Seed,
		X:            int32(b.X),
		Y:            int32(b.Y),
		TotalTime:    b.TotalTime,
		AmbientFlags: b.AmbientFlags,
	}
}
