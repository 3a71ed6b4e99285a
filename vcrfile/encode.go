package vcrfile

import (
	"encoding/binary"
)

// Encode serializes f back into the container byte format Decode reads.
func Encode(f *File) []byte {
	var buf []byte
	buf = append(buf, Magic[:]...)
	buf = appendI16(buf, f.Header.FormatVersion)
	buf = appendI16(buf, f.Header.Player)
	buf = appendI16(buf, f.Header.Turn)
	buf = appendI16(buf, int16(len(f.Battles)))
	ts := f.Header.Timestamp
	buf = append(buf, ts[:]...)
	buf = appendI32(buf, 0) // reserved

	for i := range f.Battles {
		buf = append(buf, encodeBattle(&f.Battles[i])...)
	}
	return buf
}

func encodeBattle(b *Battle) []byte {
	shipsBytes := make([]byte, 0, len(b.Ships)*shipSize)
	for i := range b.Ships {
		shipsBytes = append(shipsBytes, encodeShip(&b.Ships[i])...)
	}

	var attacks []AttackEntry
	fleetFirstAtt := make([]int, len(b.Fleets))
	for i := range b.Fleets {
		fleetFirstAtt[i] = len(attacks)
		attacks = append(attacks, b.Fleets[i].AttackList...)
	}

	fleetsBytes := make([]byte, 0, len(b.Fleets)*fleetSize)
	for i := range b.Fleets {
		f := &b.Fleets[i]
		fleetsBytes = appendI16(fleetsBytes, f.Owner)
		fleetsBytes = appendI16(fleetsBytes, f.FirstShipIndex)
		fleetsBytes = appendI16(fleetsBytes, f.NumShips)
		fleetsBytes = appendI16(fleetsBytes, f.Speed)
		fleetsBytes = appendI32(fleetsBytes, int32(fleetFirstAtt[i]))
		fleetsBytes = appendI32(fleetsBytes, int32(len(f.AttackList)))
		fleetsBytes = appendI32(fleetsBytes, f.X)
		fleetsBytes = appendI32(fleetsBytes, f.Y)
	}

	attBytes := make([]byte, 0, len(attacks)*entrySize)
	for _, e := range attacks {
		attBytes = appendI16(attBytes, e.ShipIndex)
		attBytes = appendI16(attBytes, e.RatingBonus)
	}

	fleetPtr := battleSize
	shipPtr := fleetPtr + len(fleetsBytes)
	attListPtr := shipPtr + len(shipsBytes)
	thisSize := attListPtr + len(attBytes)

	header := make([]byte, 0, battleSize)
	header = appendI32(header, int32(thisSize))
	header = appendI16(header, b.X)
	header = appendI16(header, b.Y)
	header = appendI32(header, int32(b.Seed))
	header = appendI32(header, b.TotalTime)
	header = appendI32(header, b.AmbientFlags)
	header = appendI32(header, int32(len(b.Fleets)))
	header = appendI32(header, fleetSize)
	header = appendI32(header, int32(fleetPtr))
	header = appendI32(header, int32(len(b.Ships)))
	header = appendI32(header, shipSize)
	header = appendI32(header, int32(shipPtr))
	header = appendI32(header, int32(len(attacks)))
	header = appendI32(header, entrySize)
	header = appendI32(header, int32(attListPtr))

	out := make([]byte, 0, thisSize)
	out = append(out, header...)
	out = append(out, fleetsBytes...)
	out = append(out, shipsBytes...)
	out = append(out, attBytes...)
	return out
}

func encodeShip(s *Ship) []byte {
	buf := make([]byte, nameFieldSize)
	copy(buf, s.Name)

	buf = appendI16(buf, s.Damage)
	buf = appendI16(buf, s.Crew)
	buf = appendI16(buf, s.ID)
	buf = appendI16(buf, s.Owner)
	buf = appendI16(buf, s.Hull)
	buf = appendI16(buf, s.ExperienceLevel)
	buf = appendI16(buf, s.NumBeams)
	buf = appendI16(buf, s.BeamType)
	buf = appendI16(buf, s.NumLaunchers)
	buf = appendI16(buf, s.NumTorpedoes)
	buf = appendI16(buf, s.TorpedoType)
	buf = appendI16(buf, s.NumBays)
	buf = appendI16(buf, s.NumFighters)
	buf = appendI16(buf, s.Mass)
	buf = appendI16(buf, s.Shield)
	buf = appendI16(buf, s.MaxFightersLaunched)
	buf = appendI32(buf, s.Rating)
	buf = appendI16(buf, s.Compensation)
	var flags int16
	if s.IsPlanet {
		flags = 1
	}
	buf = appendI16(buf, flags)
	buf = appendI16(buf, s.EndingStatus)
	return buf
}

func appendI16(buf []byte, v int16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return append(buf, b[:]...)
}

func appendI32(buf []byte, v int32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return append(buf, b[:]...)
}
