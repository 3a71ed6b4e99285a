package vcrfile

import (
	"reflect"
	"testing"
)

func sampleFile() *File {
	return &File{
		Header: Header{FormatVersion: 1, Player: 3, Turn: 42, Timestamp: [18]byte{'0', '1', '-', '0', '1', '-', '2', '0', '2', '6'}},
		Battles: []Battle{
			{
				X: 1000, Y: 2000, Seed: 0xdeadbeef, TotalTime: 500,
				Ships: []Ship{
					{Name: "Fearless", Owner: 1, Damage: 0, Crew: 200, Shield: 100, Mass: 900, NumBeams: 6},
					{Name: "Homeworld", Owner: 2, IsPlanet: true, Crew: 5000},
				},
				Fleets: []Fleet{
					{Owner: 1, FirstShipIndex: 0, NumShips: 1, Speed: 6, AttackList: []AttackEntry{{ShipIndex: 1, RatingBonus: 10}}, X: 100, Y: 200},
					{Owner: 2, FirstShipIndex: 1, NumShips: 1, Speed: 0, AttackList: []AttackEntry{{ShipIndex: 0, RatingBonus: 5}}, X: 300, Y: 400},
				},
			},
		},
	}
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	in := sampleFile()
	data := Encode(in)

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if out.Header.Player != in.Header.Player || out.Header.Turn != in.Header.Turn {
		t.Errorf("header = %+v, want %+v", out.Header, in.Header)
	}
	if len(out.Battles) != 1 {
		t.Fatalf("len(Battles) = %d, want 1", len(out.Battles))
	}
	if !reflect.DeepEqual(out.Battles[0].Ships, in.Battles[0].Ships) {
		t.Errorf("ships = %+v, want %+v", out.Battles[0].Ships, in.Battles[0].Ships)
	}
	if out.Battles[0].Seed != in.Battles[0].Seed {
		t.Errorf("seed = %#x, want %#x", out.Battles[0].Seed, in.Battles[0].Seed)
	}
	for i := range in.Battles[0].Fleets {
		want := in.Battles[0].Fleets[i]
		got := out.Battles[0].Fleets[i]
		if got.Owner != want.Owner || got.NumShips != want.NumShips || !reflect.DeepEqual(got.AttackList, want.AttackList) {
			t.Errorf("fleet %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := Encode(sampleFile())
	data[0] = 'X'
	if _, err := Decode(data); err == nil {
		t.Errorf("Decode() with corrupted magic: want error, got nil")
	}
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	if _, err := Decode(Magic[:5]); err == nil {
		t.Errorf("Decode() on truncated header: want error, got nil")
	}
}

func TestDecodeRejectsOwnerMismatch(t *testing.T) {
	in := sampleFile()
	in.Battles[0].Fleets[0].Owner = 99 // no longer matches ship 0's owner
	data := Encode(in)

	if _, err := Decode(data); err == nil {
		t.Errorf("Decode() with owner mismatch: want error, got nil")
	}
}

func TestDecodeRejectsOutOfBoundsShipRange(t *testing.T) {
	in := sampleFile()
	in.Battles[0].Fleets[0].NumShips = 50 // exceeds the 2 declared ships
	data := Encode(in)

	if _, err := Decode(data); err == nil {
		t.Errorf("Decode() with out-of-range fleet ship count: want error, got nil")
	}
}
