package devserver

import (
	"encoding/json"
	"sync"
	"time"

	"talent-chat/engineio"

	"github.com/google/uuid"
)

const (
	sessionBuffer = 256
	sendTimeout   = time.Second
)

// session is one Engine.IO connection and the Socket.IO client attached to it.
type session struct {
	sid       string
	userID    string
	transport string
	out       chan engineio.Packet
	done      chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	connected bool
	room      string
	lastPong  time.Time
}

func newSession(userID, transport string) *session {
	return &session{
		sid:       uuid.NewString(),
		userID:    userID,
		transport: transport,
		out:       make(chan engineio.Packet, sessionBuffer),
		done:      make(chan struct{}),
		lastPong:  time.Now(),
	}
}

// send queues a packet. A slow client loses the packet rather than blocking the sender.
func (s *session) send(p engineio.Packet) bool {
	select {
	case s.out <- p:
		return true
	case <-s.done:
		return false
	case <-time.After(sendTimeout):
		return false
	}
}

func (s *session) emit(name string, payload any) bool {
	p, err := engineio.EncodeEvent(name, payload)
	if err != nil {
		return false
	}
	return s.send(p)
}

func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *session) pong() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPong = time.Now()
}

func (s *session) silentFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastPong)
}

func (s *session) setConnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
}

func (s *session) joined() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room, s.connected
}

func (s *session) join(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = room
}

func (s *session) leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.room = ""
}

func connectAccepted(sid string) engineio.Packet {
	data, _ := json.Marshal(map[string]string{"sid": sid})
	return engineio.EncodeSocketPacket(engineio.SocketPacket{Type: engineio.SocketConnect, Data: data})
}

func connectRefused(message string) engineio.Packet {
	data, _ := json.Marshal(map[string]string{"message": message})
	return engineio.EncodeSocketPacket(engineio.SocketPacket{Type: engineio.SocketConnectError, Data: data})
}
