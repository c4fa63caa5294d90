package vehicle

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Payload is the fixed-layout hand-off record (spec.md §6): every Vehicle
// field except the lane pointer, in the declared order both ends agree on
// without probing — the Go analogue of the original's MPI derived datatype
// (MpiProcess::defineMpiVehicle, which commits the same thirteen fields in
// the same order via MPI_Type_create_struct). Field order here is load
// bearing: it is the wire contract between a sending and a receiving
// worker, so it must never be reordered independently on either side.
type Payload struct {
	ID                int64
	Position          int64
	Speed             int64
	MaxSpeed          int64
	GapForward        int64
	GapOtherForward   int64
	GapOtherBackward  int64
	LookForward       int64
	LookOtherForward  int64
	LookOtherBackward int64
	ProbSlowDown      float64
	ProbChange        float64
	TimeOnRoad        int64
}

// payloadWireSize is the exact encoded length: ten int64 + two float64 +
// one int64, matching spec.md §6's "ten integers, two double-precision
// reals, one integer".
const payloadWireSize = 13 * 8

// ToPayload captures v's transmissible fields. Lane is carried out-of-band
// by the HandoffVehicle message (spec.md §4.3.2), not in the payload itself.
func (v *Vehicle) ToPayload() Payload {
	return Payload{
		ID:                int64(v.ID),
		Position:          int64(v.Position),
		Speed:             int64(v.Speed),
		MaxSpeed:          int64(v.MaxSpeed),
		GapForward:        int64(v.GapForward),
		GapOtherForward:   int64(v.GapOtherForward),
		GapOtherBackward:  int64(v.GapOtherBackward),
		LookForward:       int64(v.LookForward),
		LookOtherForward:  int64(v.LookOtherForward),
		LookOtherBackward: int64(v.LookOtherBackward),
		ProbSlowDown:      v.ProbSlowDown,
		ProbChange:        v.ProbChange,
		TimeOnRoad:        int64(v.TimeOnRoad),
	}
}

// FromPayload allocates a new Vehicle on the receiving side — the hand-off
// receiver always creates a fresh record (spec.md §3: "the sender destroys,
// the receiver creates"). lane is supplied separately by the caller, which
// read it off the HandoffVehicle message's lane-index field.
func FromPayload(p Payload, lane int) *Vehicle {
	return &Vehicle{
		ID:                int(p.ID),
		Position:          int(p.Position),
		Speed:             int(p.Speed),
		Lane:              lane,
		MaxSpeed:          int(p.MaxSpeed),
		GapForward:        int(p.GapForward),
		GapOtherForward:   int(p.GapOtherForward),
		GapOtherBackward:  int(p.GapOtherBackward),
		LookForward:       int(p.LookForward),
		LookOtherForward:  int(p.LookOtherForward),
		LookOtherBackward: int(p.LookOtherBackward),
		ProbSlowDown:      p.ProbSlowDown,
		ProbChange:        p.ProbChange,
		TimeOnRoad:        int(p.TimeOnRoad),
	}
}

// Marshal encodes the payload in the declared field order, fixed-width,
// little-endian — the byte-level contract a neighbor.Link transmits.
func (p Payload) Marshal() []byte {
	buf := make([]byte, 0, payloadWireSize)
	w := bytes.NewBuffer(buf)
	for _, v := range []int64{
		p.ID, p.Position, p.Speed, p.MaxSpeed,
		p.GapForward, p.GapOtherForward, p.GapOtherBackward,
		p.LookForward, p.LookOtherForward, p.LookOtherBackward,
	} {
		binary.Write(w, binary.LittleEndian, v) //nolint:errcheck // bytes.Buffer.Write never fails
	}
	binary.Write(w, binary.LittleEndian, p.ProbSlowDown)  //nolint:errcheck
	binary.Write(w, binary.LittleEndian, p.ProbChange)    //nolint:errcheck
	binary.Write(w, binary.LittleEndian, p.TimeOnRoad)    //nolint:errcheck
	return w.Bytes()
}

// Unmarshal decodes a payload previously produced by Marshal.
func Unmarshal(data []byte) (Payload, error) {
	if len(data) != payloadWireSize {
		return Payload{}, fmt.Errorf("vehicle: payload: want %d bytes, got %d", payloadWireSize, len(data))
	}
	r := bytes.NewReader(data)
	var ints [10]int64
	for i := range ints {
		if err := binary.Read(r, binary.LittleEndian, &ints[i]); err != nil {
			return Payload{}, fmt.Errorf("vehicle: payload: decode field %d: %w", i, err)
		}
	}
	var probSlowDown, probChange float64
	if err := binary.Read(r, binary.LittleEndian, &probSlowDown); err != nil {
		return Payload{}, fmt.Errorf("vehicle: payload: decode prob_slow_down: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &probChange); err != nil {
		return Payload{}, fmt.Errorf("vehicle: payload: decode prob_change: %w", err)
	}
	var timeOnRoad int64
	if err := binary.Read(r, binary.LittleEndian, &timeOnRoad); err != nil {
		return Payload{}, fmt.Errorf("vehicle: payload: decode time_on_road: %w", err)
	}
	return Payload{
		ID: ints[0], Position: ints[1], Speed: ints[2], MaxSpeed: ints[3],
		GapForward: ints[4], GapOtherForward: ints[5], GapOtherBackward: ints[6],
		LookForward: ints[7], LookOtherForward: ints[8], LookOtherBackward: ints[9],
		ProbSlowDown: probSlowDown, ProbChange: probChange, TimeOnRoad: timeOnRoad,
	}, nil
}
