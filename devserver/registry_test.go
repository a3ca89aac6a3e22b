package devserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Subscribe_One_Room_Multiple_Sessions(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	noah := newSession("noah-1", "websocket")
	ava := newSession("ava-1", "polling")

	// Given two connected sessions
	registry.add(noah)
	registry.add(ava)
	req.Empty(registry.members("room-1"))

	// When both subscribe the same room
	registry.subscribe(noah.sid, "room-1")
	registry.subscribe(ava.sid, "room-1")

	// Then both receive the room traffic
	req.ElementsMatch([]*session{noah, ava}, registry.members("room-1"))
}

func TestRegistry_Subscribe_Moves_Between_Rooms(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	noah := newSession("noah-1", "websocket")
	registry.add(noah)

	registry.subscribe(noah.sid, "room-1")
	registry.subscribe(noah.sid, "room-2")

	req.Empty(registry.members("room-1"))
	req.Equal([]*session{noah}, registry.members("room-2"))
	req.NotContains(registry.roomMembers, "room-1")
}

func TestRegistry_Remove(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	noah := newSession("noah-1", "websocket")
	registry.add(noah)
	registry.subscribe(noah.sid, "room-1")

	// When the session goes away
	registry.remove(noah.sid)

	// Then it is no longer reachable and the room entry is cleaned up
	_, ok := registry.get(noah.sid)
	req.False(ok)
	req.Empty(registry.members("room-1"))
	req.Empty(registry.roomMembers)
	req.Empty(registry.all())
}

func TestRegistry_Subscribe_Unknown_Session(t *testing.T) {
	registry := newRegistry()

	registry.subscribe("ghost", "room-1")

	require.Empty(t, registry.members("room-1"))
}
