// Package vcrfile reads the FLAK battle container format: a file header
// followed by a sequence of self-contained battle records, each carrying
// its own ships, fleets, and attack-list entries at byte offsets relative
// to the record's own start. The layout is fixed by the wire format, not
// negotiable by either side.
package vcrfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is the 8-byte signature every FLAK container starts with.
var Magic = [8]byte{'F', 'L', 'A', 'K', 'V', 'C', 'R', 26}

const (
	headerSize = 38
	battleSize = 56
	shipSize   = 62
	fleetSize  = 24
	entrySize  = 4

	nameFieldSize = 20
)

// MalformedFile reports a structural problem with a container: wrong magic,
// a declared size that runs past the buffer, or an index that doesn't point
// at a consistent sub-range.
type MalformedFile struct {
	Reason string
}

func (e *MalformedFile) Error() string { return "vcrfile: malformed file: " + e.Reason }

// Header is the fixed 38-byte record every container starts with.
type Header struct {
	FormatVersion int16
	Player        int16
	Turn          int16
	NumBattles    int16
	Timestamp     [18]byte
}

// Ship is one unit's data as stored in a battle record.
type Ship struct {
	Name                string
	Damage              int16
	Crew                int16
	ID                  int16
	Owner               int16
	Hull                int16
	ExperienceLevel     int16
	NumBeams            int16
	BeamType            int16
	NumLaunchers        int16
	NumTorpedoes        int16
	TorpedoType         int16
	NumBays             int16
	NumFighters         int16
	Mass                int16
	Shield              int16
	MaxFightersLaunched int16
	Rating              int32
	Compensation        int16
	IsPlanet            bool
	EndingStatus        int16
}

// AttackEntry is one (target ship index, rating bonus) edge.
type AttackEntry struct {
	ShipIndex   int16
	RatingBonus int16
}

// Fleet is one fleet's data as stored in a battle record: a contiguous
// ship range and a contiguous attack-list range, both expressed as
// (first index, count) into the battle's Ships/AttackList.
type Fleet struct {
	Owner          int16
	FirstShipIndex int16
	NumShips       int16
	Speed          int16
	AttackList     []AttackEntry
	X, Y           int32
}

// Battle is one resolved or pending fight: its own seed, starmap position,
// ships, and fleets.
type Battle struct {
	X, Y        int16
	Seed        uint32
	TotalTime   int32
	AmbientFlags int32
	Ships       []Ship
	Fleets      []Fleet
}

// File is a fully decoded container.
type File struct {
	Header  Header
	Battles []Battle
}

// Decode parses a complete FLAK container from data.
//
// Validation runs in this order: bounds for the whole battle record first
// (every declared offset and length fits inside the buffer), then, fleet by
// fleet, contiguity (the fleet's index ranges stay inside its battle's
// declared counts) followed by owner-consistency (every ship in the fleet's
// range actually belongs to the fleet's owner). The first failure found is
// returned; no check reads data the earlier checks haven't already proven
// safe to read.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, &MalformedFile{Reason: "file shorter than header"}
	}
	if !bytes.Equal(data[0:8], Magic[:]) {
		return nil, &MalformedFile{Reason: "bad magic number"}
	}

	f := &File{}
	f.Header.FormatVersion = readI16(data, 8)
	f.Header.Player = readI16(data, 10)
	f.Header.Turn = readI16(data, 12)
	f.Header.NumBattles = readI16(data, 14)
	copy(f.Header.Timestamp[:], data[16:34])

	offset := headerSize
	for b := 0; b < int(f.Header.NumBattles); b++ {
		battle, size, err := decodeBattle(data, offset)
		if err != nil {
			return nil, err
		}
		f.Battles = append(f.Battles, *battle)
		offset += size
	}
	return f, nil
}

func decodeBattle(data []byte, start int) (*Battle, int, error) {
	if start+battleSize > len(data) {
		return nil, 0, &MalformedFile{Reason: fmt.Sprintf("battle header at %d runs past end of file", start)}
	}

	thisSize := int(readI32(data, start+0))
	x := readI16(data, start+4)
	y := readI16(data, start+6)
	seed := readI32(data, start+8)
	totalTime := readI32(data, start+12)
	ambientFlags := readI32(data, start+16)

	numFleets := int(readI32(data, start+20))
	fleetEntrySize := int(readI32(data, start+24))
	fleetPtr := int(readI32(data, start+28))

	numShips := int(readI32(data, start+32))
	shipEntrySize := int(readI32(data, start+36))
	shipPtr := int(readI32(data, start+40))

	numAttList := int(readI32(data, start+44))
	attEntrySize := int(readI32(data, start+48))
	attListPtr := int(readI32(data, start+52))

	if thisSize <= 0 || start+thisSize > len(data) {
		return nil, 0, &MalformedFile{Reason: fmt.Sprintf("battle at %d declares size %d past end of file", start, thisSize)}
	}
	if fleetEntrySize != fleetSize {
		return nil, 0, &MalformedFile{Reason: fmt.Sprintf("unexpected fleet entry size %d", fleetEntrySize)}
	}
	if shipEntrySize != shipSize {
		return nil, 0, &MalformedFile{Reason: fmt.Sprintf("unexpected ship entry size %d", shipEntrySize)}
	}
	if attEntrySize != entrySize {
		return nil, 0, &MalformedFile{Reason: fmt.Sprintf("unexpected attack list entry size %d", attEntrySize)}
	}

	shipsEnd := start + shipPtr + numShips*shipSize
	fleetsEnd := start + fleetPtr + numFleets*fleetSize
	attEnd := start + attListPtr + numAttList*entrySize
	if numShips < 0 || shipPtr < 0 || shipsEnd > len(data) {
		return nil, 0, &MalformedFile{Reason: "ship range out of bounds"}
	}
	if numFleets < 0 || fleetPtr < 0 || fleetsEnd > len(data) {
		return nil, 0, &MalformedFile{Reason: "fleet range out of bounds"}
	}
	if numAttList < 0 || attListPtr < 0 || attEnd > len(data) {
		return nil, 0, &MalformedFile{Reason: "attack list range out of bounds"}
	}

	ships := make([]Ship, numShips)
	for i := 0; i < numShips; i++ {
		ships[i] = decodeShip(data, start+shipPtr+i*shipSize)
	}

	rawAttacks := make([]AttackEntry, numAttList)
	for i := 0; i < numAttList; i++ {
		p := start + attListPtr + i*entrySize
		rawAttacks[i] = AttackEntry{ShipIndex: readI16(data, p), RatingBonus: readI16(data, p+2)}
	}

	fleets := make([]Fleet, numFleets)
	for i := 0; i < numFleets; i++ {
		p := start + fleetPtr + i*fleetSize
		owner := readI16(data, p)
		firstShip := readI16(data, p+2)
		numShipsInFleet := readI16(data, p+4)
		speed := readI16(data, p+6)
		firstAtt := int(readI32(data, p+8))
		numAtt := int(readI32(data, p+12))
		fx := readI32(data, p+16)
		fy := readI32(data, p+20)

		if firstShip < 0 || numShipsInFleet < 0 || int(firstShip)+int(numShipsInFleet) > numShips {
			return nil, 0, &MalformedFile{Reason: fmt.Sprintf("fleet %d ship range [%d,+%d) exceeds %d ships", i, firstShip, numShipsInFleet, numShips)}
		}
		if firstAtt < 0 || numAtt < 0 || firstAtt+numAtt > numAttList {
			return nil, 0, &MalformedFile{Reason: fmt.Sprintf("fleet %d attack range [%d,+%d) exceeds %d entries", i, firstAtt, numAtt, numAttList)}
		}

		for s := 0; s < int(numShipsInFleet); s++ {
			if ships[int(firstShip)+s].Owner != owner {
				return nil, 0, &MalformedFile{Reason: fmt.Sprintf("fleet %d owner %d doesn't match ship %d owner %d", i, owner, int(firstShip)+s, ships[int(firstShip)+s].Owner)}
			}
		}

		fleets[i] = Fleet{
			Owner:          owner,
			FirstShipIndex: firstShip,
			NumShips:       numShipsInFleet,
			Speed:          speed,
			AttackList:     append([]AttackEntry(nil), rawAttacks[firstAtt:firstAtt+numAtt]...),
			X:              fx,
			Y:              fy,
		}
	}

	return &Battle{
		X: x, Y: y,
		Seed:         uint32(seed),
		TotalTime:    totalTime,
		AmbientFlags: ambientFlags,
		Ships:        ships,
		Fleets:       fleets,
	}, thisSize, nil
}

func decodeShip(data []byte, p int) Ship {
	flags := readI16(data, p+58)
	return Ship{
		Name:                decodeFixedString(data[p : p+nameFieldSize]),
		Damage:              readI16(data, p+20),
		Crew:                readI16(data, p+22),
		ID:                  readI16(data, p+24),
		Owner:               readI16(data, p+26),
		Hull:                readI16(data, p+28),
		ExperienceLevel:     readI16(data, p+30),
		NumBeams:            readI16(data, p+32),
		BeamType:            readI16(data, p+34),
		NumLaunchers:        readI16(data, p+36),
		NumTorpedoes:        readI16(data, p+38),
		TorpedoType:         readI16(data, p+40),
		NumBays:             readI16(data, p+42),
		NumFighters:         readI16(data, p+44),
		Mass:                readI16(data, p+46),
		Shield:              readI16(data, p+48),
		MaxFightersLaunched: readI16(data, p+50),
		Rating:              readI32(data, p+52),
		Compensation:        readI16(data, p+56),
		IsPlanet:            flags&1 != 0,
		EndingStatus:        readI16(data, p+60),
	}
}

func decodeFixedString(b []byte) string {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}
	return string(b[:n])
}

func readI16(data []byte, offset int) int16 {
	return int16(binary.LittleEndian.Uint16(data[offset:]))
}

func readI32(data []byte, offset int) int32 {
	return int32(binary.LittleEndian.Uint32(data[offset:]))
}
