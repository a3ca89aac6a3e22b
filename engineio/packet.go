// Package engineio encodes and decodes the Engine.IO v4 framing and the Socket.IO v5
// packets it carries. Only text frames are supported; the chat never sends binary.
package engineio

import (
	"bytes"
	"encoding/json"
	"fmt"

	"talent-chat/errors"
)

// Protocol is the Engine.IO revision announced in the EIO query parameter.
const Protocol = "4"

// RecordSeparator splits packets batched in a single polling payload.
const RecordSeparator byte = 0x1e

type PacketType byte

const (
	Open PacketType = iota
	Close
	Ping
	Pong
	Message
	Upgrade
	Noop
)

func (t PacketType) String() string {
	switch t {
	case Open:
		return "open"
	case Close:
		return "close"
	case Ping:
		return "ping"
	case Pong:
		return "pong"
	case Message:
		return "message"
	case Upgrade:
		return "upgrade"
	case Noop:
		return "noop"
	default:
		return fmt.Sprintf("packet(%d)", byte(t))
	}
}

type Packet struct {
	Type PacketType
	Data []byte
}

func NewPacket(t PacketType, data []byte) Packet {
	return Packet{Type: t, Data: data}
}

// Handshake is the payload of the open packet.
// Intervals are expressed in milliseconds on the wire.
type Handshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload"`
}

func EncodePacket(p Packet) []byte {
	out := make([]byte, 0, len(p.Data)+1)
	out = append(out, '0'+byte(p.Type))
	return append(out, p.Data...)
}

func DecodePacket(raw []byte) (Packet, error) {
	if len(raw) == 0 {
		return Packet{}, fmt.Errorf("%w: empty frame", errors.ErrMalformedPacket)
	}
	kind := raw[0]
	if kind < '0' || kind > '0'+byte(Noop) {
		return Packet{}, fmt.Errorf("%w: unknown engine packet type %q", errors.ErrMalformedPacket, kind)
	}
	data := make([]byte, len(raw)-1)
	copy(data, raw[1:])
	return Packet{Type: PacketType(kind - '0'), Data: data}, nil
}

// EncodePayload joins packets for a polling request body.
func EncodePayload(packets []Packet) []byte {
	encoded := make([][]byte, 0, len(packets))
	for _, p := range packets {
		encoded = append(encoded, EncodePacket(p))
	}
	return bytes.Join(encoded, []byte{RecordSeparator})
}

// DecodePayload splits a polling response body.
func DecodePayload(raw []byte) ([]Packet, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", errors.ErrMalformedPacket)
	}
	parts := bytes.Split(raw, []byte{RecordSeparator})
	packets := make([]Packet, 0, len(parts))
	for _, part := range parts {
		p, err := DecodePacket(part)
		if err != nil {
			return nil, err
		}
		packets = append(packets, p)
	}
	return packets, nil
}

func DecodeHandshake(p Packet) (Handshake, error) {
	if p.Type != Open {
		return Handshake{}, fmt.Errorf("%w: expected open, got %s", errors.ErrUnexpectedPacket, p.Type)
	}
	var h Handshake
	if err := json.Unmarshal(p.Data, &h); err != nil {
		return Handshake{}, fmt.Errorf("%w: handshake: %v", errors.ErrMalformedPacket, err)
	}
	if h.SID == "" {
		return Handshake{}, fmt.Errorf("%w: handshake without sid", errors.ErrMalformedPacket)
	}
	return h, nil
}

func EncodeHandshake(h Handshake) Packet {
	data, _ := json.Marshal(h)
	return Packet{Type: Open, Data: data}
}
