package devserver

import (
	"context"
	"time"

	"talent-chat/engineio"
)

// heartbeat pings every session each interval and drops those that stopped answering.
type heartbeat struct {
	server *Server
}

func (h *heartbeat) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.server.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.beat()
		}
	}
}

func (h *heartbeat) beat() {
	s := h.server
	for _, sess := range s.registry.all() {
		if sess.silentFor() > s.pingInterval+s.pingTimeout {
			s.log.Debug("Session timed out", "sid", sess.sid)
			s.closeSession(sess)
			continue
		}
		sess.send(engineio.NewPacket(engineio.Ping, nil))
	}
}
