package engineio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"talent-chat/errors"
)

// DefaultNamespace is the only namespace the chat uses.
const DefaultNamespace = "/"

type SocketPacketType byte

const (
	SocketConnect SocketPacketType = iota
	SocketDisconnect
	SocketEvent
	SocketAck
	SocketConnectError
	SocketBinaryEvent
	SocketBinaryAck
)

// SocketPacket is a Socket.IO packet, always transported inside an Engine.IO message.
type SocketPacket struct {
	Type      SocketPacketType
	Namespace string
	AckID     *int
	Data      json.RawMessage
}

func EncodeSocketPacket(sp SocketPacket) Packet {
	out := []byte{'0' + byte(sp.Type)}
	if sp.Namespace != "" && sp.Namespace != DefaultNamespace {
		out = append(out, sp.Namespace...)
		out = append(out, ',')
	}
	if sp.AckID != nil {
		out = strconv.AppendInt(out, int64(*sp.AckID), 10)
	}
	out = append(out, sp.Data...)
	return Packet{Type: Message, Data: out}
}

func DecodeSocketPacket(p Packet) (SocketPacket, error) {
	if p.Type != Message {
		return SocketPacket{}, fmt.Errorf("%w: expected message, got %s", errors.ErrUnexpectedPacket, p.Type)
	}
	raw := p.Data
	if len(raw) == 0 || raw[0] < '0' || raw[0] > '0'+byte(SocketBinaryAck) {
		return SocketPacket{}, fmt.Errorf("%w: unknown socket packet %q", errors.ErrMalformedPacket, raw)
	}
	sp := SocketPacket{Type: SocketPacketType(raw[0] - '0'), Namespace: DefaultNamespace}
	if sp.Type == SocketBinaryEvent || sp.Type == SocketBinaryAck {
		return SocketPacket{}, fmt.Errorf("%w: binary packets are not supported", errors.ErrMalformedPacket)
	}
	i := 1
	if i < len(raw) && raw[i] == '/' {
		start := i
		for i < len(raw) && raw[i] != ',' {
			i++
		}
		sp.Namespace = string(raw[start:i])
		if i < len(raw) {
			i++
		}
	}
	start := i
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i > start {
		id, err := strconv.Atoi(string(raw[start:i]))
		if err != nil {
			return SocketPacket{}, fmt.Errorf("%w: ack id: %v", errors.ErrMalformedPacket, err)
		}
		sp.AckID = &id
	}
	if i < len(raw) {
		sp.Data = append(json.RawMessage(nil), raw[i:]...)
	}
	return sp, nil
}

// ConnectPacket asks the server to attach the socket to the default namespace.
func ConnectPacket() Packet {
	return EncodeSocketPacket(SocketPacket{Type: SocketConnect})
}

func DisconnectPacket() Packet {
	return EncodeSocketPacket(SocketPacket{Type: SocketDisconnect})
}

// EncodeEvent builds the message packet for emit(name, payload).
func EncodeEvent(name string, payload any) (Packet, error) {
	data, err := json.Marshal([]any{name, payload})
	if err != nil {
		return Packet{}, fmt.Errorf("encode %s: %w", name, err)
	}
	return EncodeSocketPacket(SocketPacket{Type: SocketEvent, Data: data}), nil
}

// DecodeEvent returns the event name and its raw arguments.
func DecodeEvent(sp SocketPacket) (string, []json.RawMessage, error) {
	if sp.Type != SocketEvent {
		return "", nil, fmt.Errorf("%w: expected event, got type %d", errors.ErrUnexpectedPacket, sp.Type)
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(sp.Data, &parts); err != nil || len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: event body %q", errors.ErrMalformedPacket, sp.Data)
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name %q", errors.ErrMalformedPacket, parts[0])
	}
	return name, parts[1:], nil
}

// ConnectErrorMessage extracts the reason of a connect_error packet.
func ConnectErrorMessage(sp SocketPacket) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(sp.Data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(sp.Data)
}
