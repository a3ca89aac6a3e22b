package devserver

import (
	"encoding/json"
	"time"

	"talent-chat/client"
	"talent-chat/domain/chat"
	"talent-chat/engineio"
	"talent-chat/errors"
	"talent-chat/repositories"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const writeWait = 5 * time.Second

func (s *Server) handleSocketGet(c *fiber.Ctx) error {
	if c.Query("EIO") != engineio.Protocol {
		return badRequest(c, 5, "Unsupported protocol version")
	}
	switch c.Query("transport") {
	case "websocket":
		if !s.websocketEnabled || !websocket.IsWebSocketUpgrade(c) {
			return badRequest(c, 3, "Bad request")
		}
		userID, _ := s.sessionUser(c)
		c.Locals(localUserID, userID)
		return websocket.New(s.serveWebsocket)(c)
	case "polling":
		sid := c.Query("sid")
		if sid == "" {
			userID, _ := s.sessionUser(c)
			sess := s.openSession(userID, "polling")
			return sendPayload(c, []engineio.Packet{s.openPacket(sess)})
		}
		sess, ok := s.session(sid)
		if !ok {
			return badRequest(c, 1, "Session ID unknown")
		}
		return s.longPoll(c, sess)
	default:
		return badRequest(c, 0, "Transport unknown")
	}
}

func (s *Server) handleSocketPost(c *fiber.Ctx) error {
	sess, ok := s.session(c.Query("sid"))
	if !ok {
		return badRequest(c, 1, "Session ID unknown")
	}
	packets, err := engineio.DecodePayload(append([]byte(nil), c.Body()...))
	if err != nil {
		return badRequest(c, 3, "Bad request")
	}
	for _, p := range packets {
		if !s.handlePacket(sess, p) {
			s.closeSession(sess)
			break
		}
	}
	c.Set(fiber.HeaderContentType, "text/html")
	return c.SendString("ok")
}

// longPoll holds the request until a packet is queued. An idle poll is answered
// with a noop so that the client issues the next one.
func (s *Server) longPoll(c *fiber.Ctx, sess *session) error {
	timer := time.NewTimer(s.pingInterval + s.pingTimeout)
	defer timer.Stop()

	var batch []engineio.Packet
	select {
	case p := <-sess.out:
		batch = append(batch, p)
	case <-sess.done:
		batch = append(batch, engineio.NewPacket(engineio.Close, nil))
	case <-timer.C:
		batch = append(batch, engineio.NewPacket(engineio.Noop, nil))
	}
	for more := true; more; {
		select {
		case p := <-sess.out:
			batch = append(batch, p)
		default:
			more = false
		}
	}
	return sendPayload(c, batch)
}

func (s *Server) serveWebsocket(conn *websocket.Conn) {
	userID, _ := conn.Locals(localUserID).(string)
	sess := s.openSession(userID, "websocket")
	defer s.closeSession(sess)

	if err := conn.WriteMessage(websocket.TextMessage, engineio.EncodePacket(s.openPacket(sess))); err != nil {
		return
	}
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeWebsocket(conn, sess)
	}()
	defer func() {
		sess.close()
		<-writerDone
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		p, err := engineio.DecodePacket(frame)
		if err != nil {
			s.log.Debug("Dropping malformed frame", "sid", sess.sid, "error", err)
			continue
		}
		if !s.handlePacket(sess, p) {
			return
		}
	}
}

func (s *Server) writeWebsocket(conn *websocket.Conn, sess *session) {
	for {
		select {
		case p := <-sess.out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, engineio.EncodePacket(p)); err != nil {
				_ = conn.Close()
				return
			}
		case <-sess.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.TextMessage, engineio.EncodePacket(engineio.NewPacket(engineio.Close, nil)))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
			return
		}
	}
}

// handlePacket returns false when the client closed the session.
func (s *Server) handlePacket(sess *session, p engineio.Packet) bool {
	switch p.Type {
	case engineio.Pong:
		sess.pong()
	case engineio.Ping:
		sess.send(engineio.NewPacket(engineio.Pong, p.Data))
	case engineio.Message:
		s.handleSocketPacket(sess, p)
	case engineio.Close:
		return false
	}
	return true
}

func (s *Server) handleSocketPacket(sess *session, p engineio.Packet) {
	sp, err := engineio.DecodeSocketPacket(p)
	if err != nil {
		s.log.Debug("Dropping malformed socket packet", "sid", sess.sid, "error", err)
		return
	}
	switch sp.Type {
	case engineio.SocketConnect:
		if _, known := s.lookupUser(sess.userID); !known {
			sess.send(connectRefused("Authentication error"))
			return
		}
		sess.setConnected()
		sess.send(connectAccepted(sess.sid))
	case engineio.SocketDisconnect:
		s.registry.unsubscribe(sess.sid)
		sess.leave()
	case engineio.SocketEvent:
		if _, connected := sess.joined(); !connected {
			return
		}
		name, args, err := engineio.DecodeEvent(sp)
		if err != nil || len(args) == 0 {
			sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: "Invalid event"})
			return
		}
		switch name {
		case client.EventJoinChat:
			s.joinChat(sess, args[0])
		case client.EventSendMessage:
			s.sendMessage(sess, args[0])
		}
	}
}

func (s *Server) joinChat(sess *session, raw json.RawMessage) {
	var payload client.JoinChatPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.UserID != sess.userID || payload.TargetUserID == "" {
		sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: "Invalid join request"})
		return
	}
	room := s.ensureChat(payload.UserID, payload.TargetUserID, time.Time{})
	sess.join(room.id)
	s.registry.subscribe(sess.sid, room.id)
	s.log.Debug("Joined chat", "sid", sess.sid, "user", payload.UserID, "room", room.id)
}

func (s *Server) sendMessage(sess *session, raw json.RawMessage) {
	room, _ := sess.joined()
	if room == "" {
		sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: "Join a chat before sending messages"})
		return
	}
	var payload client.SendMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.UserID != sess.userID {
		sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: "Failed to send message"})
		return
	}
	text, err := chat.PrepareBody(payload.Text)
	if err != nil {
		sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: errors.NoticeText(err)})
		return
	}
	at := time.Now().UTC()
	s.touchChat(room, at)
	err = s.messages.StoreMessage(repositories.StoredMessage{
		Room:       room,
		SenderID:   sess.userID,
		SenderName: payload.FirstName,
		Text:       text,
		At:         at,
	})
	if err != nil {
		s.log.Error("Unable to store message", "error", err)
		sess.emit(client.EventMessageError, client.MessageErrorPayload{Error: "Failed to send message"})
		return
	}
	received := client.MessageReceivedPayload{FirstName: payload.FirstName, LastName: payload.LastName, Text: text}
	for _, member := range s.registry.members(room) {
		member.emit(client.EventMessageReceived, received)
	}
}

func (s *Server) openSession(userID, transport string) *session {
	sess := newSession(userID, transport)
	s.registry.add(sess)
	s.log.Debug("Session opened", "sid", sess.sid, "transport", transport, "user", userID)
	return sess
}

func (s *Server) closeSession(sess *session) {
	s.registry.remove(sess.sid)
	sess.close()
}

func (s *Server) session(sid string) (*session, bool) {
	return s.registry.get(sid)
}

func (s *Server) lookupUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *Server) openPacket(sess *session) engineio.Packet {
	return engineio.EncodeHandshake(engineio.Handshake{
		SID:          sess.sid,
		Upgrades:     []string{},
		PingInterval: int(s.pingInterval / time.Millisecond),
		PingTimeout:  int(s.pingTimeout / time.Millisecond),
		MaxPayload:   1_000_000,
	})
}

func sendPayload(c *fiber.Ctx, packets []engineio.Packet) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=UTF-8")
	return c.Send(engineio.EncodePayload(packets))
}

func badRequest(c *fiber.Ctx, code int, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": code, "message": message})
}
