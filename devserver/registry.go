package devserver

import (
	"sync"

	"github.com/samber/lo"
)

type set map[string]struct{}

// registry tracks live sessions and the chat room each of them joined.
// A session belongs to at most one room.
type registry struct {
	mu          sync.RWMutex
	sessions    map[string]*session // sid -> session
	roomMembers map[string]set      // room -> sids
}

func newRegistry() *registry {
	return &registry{
		sessions:    make(map[string]*session),
		roomMembers: make(map[string]set),
	}
}

func (r *registry) add(sess *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.sid] = sess
}

func (r *registry) get(sid string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[sid]
	return sess, ok
}

func (r *registry) all() []*session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.sessions)
}

// remove forgets the session and its room membership.
func (r *registry) remove(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	r.leaveAll(sid)
}

// subscribe moves the session into room, leaving any previous one.
func (r *registry) subscribe(sid, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sid]; !ok {
		return
	}
	r.leaveAll(sid)
	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(set)
	}
	r.roomMembers[room][sid] = struct{}{}
}

func (r *registry) unsubscribe(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveAll(sid)
}

// members returns the sessions of a room, nil for an empty or unknown room.
func (r *registry) members(room string) []*session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active []*session
	for sid := range r.roomMembers[room] {
		if sess, ok := r.sessions[sid]; ok {
			active = append(active, sess)
		}
	}
	return active
}

// leaveAll must be called with the lock held. Empty rooms are dropped.
func (r *registry) leaveAll(sid string) {
	for room, members := range r.roomMembers {
		delete(members, sid)
		if len(members) == 0 {
			delete(r.roomMembers, room)
		}
	}
}
