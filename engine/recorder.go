package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// opcode tags one recorded Visualizer callback in the flat instruction
// buffer. Values are part of the wire format between the recorder and its
// Replay consumer; do not renumber without bumping a format version.
type opcode byte

const (
	opUpdateTime opcode = iota
	opCreateFleet
	opSetEnemy
	opMoveFleet
	opKillFleet
	opCreateShip
	opMoveShip
	opKillShip
	opCreateFighter
	opMoveFighter
	opLandFighter
	opKillFighter
	opCreateTorpedo
	opMoveTorpedo
	opHitTorpedo
	opMissTorpedo
	opFireBeamShipShip
	opFireBeamShipFighter
	opFireBeamFighterShip
	opFireBeamFighterFighter
)

// EventRecorder implements Visualizer by writing each callback as a tagged
// instruction into a flat byte buffer. The buffer is swappable: after
// building one tick's worth of events, the owner calls Swap to hand the
// filled buffer to a consumer (e.g. a UI-thread goroutine) and starts a
// fresh empty one. This is the only cross-thread data path and carries no
// shared mutable state once swapped out.
type EventRecorder struct {
	buf bytes.Buffer
}

var _ Visualizer = (*EventRecorder)(nil)

// NewEventRecorder returns an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Swap returns the accumulated buffer's bytes and resets the recorder to
// empty, ready for the next tick.
func (r *EventRecorder) Swap() []byte {
	out := make([]byte, r.buf.Len())
	copy(out, r.buf.Bytes())
	r.buf.Reset()
	return out
}

// SwapCompressed is Swap followed by zstd compression, for the case noted
// in §5: a tick can emit several hundred kilobytes of events for large
// battles, and the swapped buffer is about to cross a goroutine boundary to
// a consumer that may be backed by a slower channel or a network socket.
func (r *EventRecorder) SwapCompressed() ([]byte, error) {
	raw := r.Swap()
	var out bytes.Buffer
	enc, err := zstd.NewWriter(&out)
	if err != nil {
		return nil, fmt.Errorf("engine: create zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, fmt.Errorf("engine: compress event buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("engine: close zstd writer: %w", err)
	}
	return out.Bytes(), nil
}

func (r *EventRecorder) putOp(op opcode)   { r.buf.WriteByte(byte(op)) }
func (r *EventRecorder) putI32(v int32)    { var b [4]byte; binary.LittleEndian.PutUint32(b[:], uint32(v)); r.buf.Write(b[:]) }
func (r *EventRecorder) putInt(v int)      { r.putI32(int32(v)) }
func (r *EventRecorder) putBool(v bool) {
	if v {
		r.buf.WriteByte(1)
	} else {
		r.buf.WriteByte(0)
	}
}
func (r *EventRecorder) putString(s string) {
	r.putI32(int32(len(s)))
	r.buf.WriteString(s)
}

func (r *EventRecorder) UpdateTime(time int32) {
	r.putOp(opUpdateTime)
	r.putI32(time)
}

func (r *EventRecorder) CreateFleet(fleetNr int, x, y int32, player int, firstShip, numShips int) {
	r.putOp(opCreateFleet)
	r.putInt(fleetNr)
	r.putI32(x)
	r.putI32(y)
	r.putInt(player)
	r.putInt(firstShip)
	r.putInt(numShips)
}

func (r *EventRecorder) SetEnemy(fleetNr int, enemy int) {
	r.putOp(opSetEnemy)
	r.putInt(fleetNr)
	r.putInt(enemy)
}

func (r *EventRecorder) MoveFleet(fleetNr int, x, y int32) {
	r.putOp(opMoveFleet)
	r.putInt(fleetNr)
	r.putI32(x)
	r.putI32(y)
}

func (r *EventRecorder) KillFleet(fleetNr int) {
	r.putOp(opKillFleet)
	r.putInt(fleetNr)
}

func (r *EventRecorder) CreateShip(shipNr int, x, y, z int32, info ShipInfo) {
	r.putOp(opCreateShip)
	r.putInt(shipNr)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
	r.putString(info.Name)
	r.putBool(info.IsPlanet)
	r.putInt(info.Player)
	r.putInt(info.InitialShield)
	r.putInt(info.InitialDamage)
	r.putInt(info.InitialCrew)
	r.putInt(info.NumBeams)
	r.putInt(info.NumLaunchers)
	r.putInt(info.NumBays)
	r.putInt(info.BeamType)
	r.putInt(info.TorpedoType)
	r.putInt(info.Mass)
	r.putInt(info.ID)
}

func (r *EventRecorder) MoveShip(shipNr int, x, y, z int32) {
	r.putOp(opMoveShip)
	r.putInt(shipNr)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
}

func (r *EventRecorder) KillShip(shipNr int) {
	r.putOp(opKillShip)
	r.putInt(shipNr)
}

func (r *EventRecorder) CreateFighter(id int, x, y, z int32, player int, enemy int) {
	r.putOp(opCreateFighter)
	r.putInt(id)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
	r.putInt(player)
	r.putInt(enemy)
}

func (r *EventRecorder) MoveFighter(id int, x, y, z int32, to int) {
	r.putOp(opMoveFighter)
	r.putInt(id)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
	r.putInt(to)
}

func (r *EventRecorder) LandFighter(id int) {
	r.putOp(opLandFighter)
	r.putInt(id)
}

func (r *EventRecorder) KillFighter(id int) {
	r.putOp(opKillFighter)
	r.putInt(id)
}

func (r *EventRecorder) CreateTorpedo(id int, x, y, z int32, player int, enemy int) {
	r.putOp(opCreateTorpedo)
	r.putInt(id)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
	r.putInt(player)
	r.putInt(enemy)
}

func (r *EventRecorder) MoveTorpedo(id int, x, y, z int32) {
	r.putOp(opMoveTorpedo)
	r.putInt(id)
	r.putI32(x)
	r.putI32(y)
	r.putI32(z)
}

func (r *EventRecorder) HitTorpedo(id int, shipNr int) {
	r.putOp(opHitTorpedo)
	r.putInt(id)
	r.putInt(shipNr)
}

func (r *EventRecorder) MissTorpedo(id int) {
	r.putOp(opMissTorpedo)
	r.putInt(id)
}

func (r *EventRecorder) FireBeamShipShip(from, beamNr, to int, hits bool) {
	r.putOp(opFireBeamShipShip)
	r.putInt(from)
	r.putInt(beamNr)
	r.putInt(to)
	r.putBool(hits)
}

func (r *EventRecorder) FireBeamShipFighter(from, beamNr, to int, hits bool) {
	r.putOp(opFireBeamShipFighter)
	r.putInt(from)
	r.putInt(beamNr)
	r.putInt(to)
	r.putBool(hits)
}

func (r *EventRecorder) FireBeamFighterShip(from, to int, hits bool) {
	r.putOp(opFireBeamFighterShip)
	r.putInt(from)
	r.putInt(to)
	r.putBool(hits)
}

func (r *EventRecorder) FireBeamFighterFighter(from, to int, hits bool) {
	r.putOp(opFireBeamFighterFighter)
	r.putInt(from)
	r.putInt(to)
	r.putBool(hits)
}

// Replay decodes a buffer produced by EventRecorder and invokes the same
// methods on a live Visualizer, in order. It is the other half of the only
// cross-thread data path: a consumer goroutine decodes what the simulator
// goroutine swapped out.
func Replay(buf []byte, vis Visualizer) error {
	d := &decoder{buf: buf}
	for d.pos < len(d.buf) {
		op := opcode(d.buf[d.pos])
		d.pos++
		switch op {
		case opUpdateTime:
			vis.UpdateTime(d.i32())
		case opCreateFleet:
			fleetNr := d.int_()
			x := d.i32()
			y := d.i32()
			player := d.int_()
			firstShip := d.int_()
			numShips := d.int_()
			vis.CreateFleet(fleetNr, x, y, player, firstShip, numShips)
		case opSetEnemy:
			vis.SetEnemy(d.int_(), d.int_())
		case opMoveFleet:
			vis.MoveFleet(d.int_(), d.i32(), d.i32())
		case opKillFleet:
			vis.KillFleet(d.int_())
		case opCreateShip:
			shipNr := d.int_()
			x, y, z := d.i32(), d.i32(), d.i32()
			info := ShipInfo{
				Name:          d.string_(),
				IsPlanet:      d.bool_(),
				Player:        d.int_(),
				InitialShield: d.int_(),
				InitialDamage: d.int_(),
				InitialCrew:   d.int_(),
				NumBeams:      d.int_(),
				NumLaunchers:  d.int_(),
				NumBays:       d.int_(),
				BeamType:      d.int_(),
				TorpedoType:   d.int_(),
				Mass:          d.int_(),
				ID:            d.int_(),
			}
			vis.CreateShip(shipNr, x, y, z, info)
		case opMoveShip:
			vis.MoveShip(d.int_(), d.i32(), d.i32(), d.i32())
		case opKillShip:
			vis.KillShip(d.int_())
		case opCreateFighter:
			id := d.int_()
			x, y, z := d.i32(), d.i32(), d.i32()
			vis.CreateFighter(id, x, y, z, d.int_(), d.int_())
		case opMoveFighter:
			id := d.int_()
			x, y, z := d.i32(), d.i32(), d.i32()
			vis.MoveFighter(id, x, y, z, d.int_())
		case opLandFighter:
			vis.LandFighter(d.int_())
		case opKillFighter:
			vis.KillFighter(d.int_())
		case opCreateTorpedo:
			id := d.int_()
			x, y, z := d.i32(), d.i32(), d.i32()
			vis.CreateTorpedo(id, x, y, z, d.int_(), d.int_())
		case opMoveTorpedo:
			id := d.int_()
			vis.MoveTorpedo(id, d.i32(), d.i32(), d.i32())
		case opHitTorpedo:
			vis.HitTorpedo(d.int_(), d.int_())
		case opMissTorpedo:
			vis.MissTorpedo(d.int_())
		case opFireBeamShipShip:
			vis.FireBeamShipShip(d.int_(), d.int_(), d.int_(), d.bool_())
		case opFireBeamShipFighter:
			vis.FireBeamShipFighter(d.int_(), d.int_(), d.int_(), d.bool_())
		case opFireBeamFighterShip:
			vis.FireBeamFighterShip(d.int_(), d.int_(), d.bool_())
		case opFireBeamFighterFighter:
			vis.FireBeamFighterFighter(d.int_(), d.int_(), d.bool_())
		default:
			return fmt.Errorf("engine: replay: unknown opcode %d at offset %d", op, d.pos-1)
		}
		if d.err != nil {
			return d.err
		}
	}
	return nil
}

type decoder struct {
	buf []byte
	pos int
	err error
}

func (d *decoder) need(n int) bool {
	if d.err != nil {
		return false
	}
	if d.pos+n > len(d.buf) {
		d.err = fmt.Errorf("engine: replay: truncated buffer at offset %d", d.pos)
		return false
	}
	return true
}

func (d *decoder) i32() int32 {
	if !d.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return int32(v)
}

func (d *decoder) int_() int { return int(d.i32()) }

func (d *decoder) bool_() bool {
	if !d.need(1) {
		return false
	}
	v := d.buf[d.pos]
	d.pos++
	return v != 0
}

func (d *decoder) string_() string {
	n := d.int_()
	if n < 0 || !d.need(n) {
		return ""
	}
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s
}
