// Package devserver is an in-memory stand-in for the chat backend.
// It serves the three REST routes and a Socket.IO endpoint over websocket and long-polling.
// The session cookie carries a signed token naming the user.
package devserver

import (
	"context"
	"log/slog"
	"net"
	"sort"
	"sync"
	"time"

	"talent-chat/api"
	"talent-chat/auth"
	"talent-chat/repositories"
	"talent-chat/runtime/workers"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	DefaultCookieName   = "token"
	DefaultPingInterval = 25 * time.Second
	DefaultPingTimeout  = 20 * time.Second

	localUserID = "userID"
)

type User struct {
	ID           string
	UserName     string
	ProfileImage string
	Role         string
	Bio          string
	Skills       []string
}

type chatRoom struct {
	id           string
	participants [2]string
	updatedAt    time.Time
}

type Option func(*Server)

// WithoutWebsocket refuses websocket upgrades so that clients fall back to long-polling.
func WithoutWebsocket() Option {
	return func(s *Server) { s.websocketEnabled = false }
}

func WithPing(interval, timeout time.Duration) Option {
	return func(s *Server) {
		s.pingInterval = interval
		s.pingTimeout = timeout
	}
}

func WithCookieName(name string) Option {
	return func(s *Server) { s.cookieName = name }
}

// WithSecret sets the key session tokens are signed with. Without it a random key is used
// and only tokens minted by Token are accepted.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

type Server struct {
	log              *slog.Logger
	app              *fiber.App
	db               *badger.DB
	messages         repositories.MessageRepository
	supervisor       *workers.Supervisor
	cookieName       string
	secret           []byte
	pingInterval     time.Duration
	pingTimeout      time.Duration
	websocketEnabled bool

	mu       sync.RWMutex
	users    map[string]User
	chats    map[string]*chatRoom
	registry *registry

	cancel  context.CancelFunc
	stopped chan struct{}
}

func New(log *slog.Logger, opts ...Option) (*Server, error) {
	db, err := repositories.OpenInMemory()
	if err != nil {
		return nil, err
	}
	s := &Server{
		log:              log,
		app:              fiber.New(fiber.Config{DisableStartupMessage: true}),
		db:               db,
		messages:         repositories.NewMessageRepository(db, log),
		cookieName:       DefaultCookieName,
		secret:           []byte(uuid.NewString()),
		pingInterval:     DefaultPingInterval,
		pingTimeout:      DefaultPingTimeout,
		websocketEnabled: true,
		users:            make(map[string]User),
		chats:            make(map[string]*chatRoom),
		registry:         newRegistry(),
		stopped:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.supervisor = workers.NewSupervisor(log, 0).Add(&heartbeat{server: s})
	go func() {
		defer close(s.stopped)
		s.supervisor.Run(ctx)
	}()
	return s, nil
}

func (s *Server) routes() {
	group := s.app.Group("/api", s.authenticate)
	group.Get("/chat", s.listChats)
	group.Get("/chat/:id", s.getChat)
	group.Get("/user/:id", s.getUser)

	s.app.Get("/socket.io/", s.handleSocketGet)
	s.app.Post("/socket.io/", s.handleSocketPost)
}

func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown ends every live session, then stops the HTTP server.
func (s *Server) Shutdown() error {
	s.cancel()
	<-s.stopped
	for _, sess := range s.registry.all() {
		s.closeSession(sess)
	}
	err := s.app.ShutdownWithTimeout(2 * time.Second)
	if closeErr := s.db.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (s *Server) AddUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// AddMessage stores a message between two users as if it had been sent live.
func (s *Server) AddMessage(senderID, receiverID, text string, at time.Time) error {
	room := s.ensureChat(senderID, receiverID, at)
	return s.messages.StoreMessage(repositories.StoredMessage{
		Room:       room.id,
		SenderID:   senderID,
		SenderName: s.userName(senderID),
		Text:       text,
		At:         at,
	})
}

// Token mints a session token for userID, as the login flow of the real backend would.
func (s *Server) Token(userID string) (string, error) {
	return auth.IssueToken(s.secret, userID, auth.DefaultTokenTTL)
}

func (s *Server) authenticate(c *fiber.Ctx) error {
	if c.Cookies(s.cookieName) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, no token"})
	}
	userID, ok := s.sessionUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, token failed"})
	}
	c.Locals(localUserID, userID)
	return c.Next()
}

// sessionUser resolves the cookie token to a known user.
func (s *Server) sessionUser(c *fiber.Ctx) (string, bool) {
	userID, err := auth.VerifyToken(s.secret, c.Cookies(s.cookieName))
	if err != nil {
		s.log.Debug("Rejected session token", "error", err)
		return "", false
	}
	_, known := s.lookupUser(userID)
	return userID, known
}

func (s *Server) getUser(c *fiber.Ctx) error {
	s.mu.RLock()
	user, ok := s.users[c.Params("id")]
	s.mu.RUnlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	return c.JSON(fiber.Map{"user": api.UserProfile{
		ID:           user.ID,
		UserName:     user.UserName,
		ProfileImage: user.ProfileImage,
		Role:         user.Role,
		Bio:          user.Bio,
		Skills:       user.Skills,
	}})
}

func (s *Server) getChat(c *fiber.Ctx) error {
	me := c.Locals(localUserID).(string)
	room, ok := s.findChat(me, c.Params("id"))
	if !ok {
		return c.JSON(fiber.Map{"chat": nil})
	}
	stored, err := s.messages.GetMessages(room.id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load chat"})
	}
	records := lo.Map(stored, func(item repositories.StoredMessage, _ int) api.MessageRecord {
		at := item.At
		record := api.MessageRecord{Text: item.Text, CreatedAt: &at}
		if name := s.userName(item.SenderID); name != "" {
			record.SenderID = &api.SenderRef{ID: item.SenderID, UserName: name}
		}
		return record
	})
	return c.JSON(fiber.Map{"chat": api.ChatRecord{ID: room.id, Messages: records}})
}

func (s *Server) listChats(c *fiber.Ctx) error {
	me := c.Locals(localUserID).(string)
	s.mu.RLock()
	rooms := lo.FilterMap(lo.Values(s.chats), func(room *chatRoom, _ int) (chatRoom, bool) {
		return *room, lo.Contains(room.participants[:], me)
	})
	s.mu.RUnlock()
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].updatedAt.After(rooms[j].updatedAt) })

	summaries := make([]api.ChatSummaryRecord, 0, len(rooms))
	for _, room := range rooms {
		stored, err := s.messages.GetMessages(room.id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch chats"})
		}
		other := lo.Ternary(room.participants[0] == me, room.participants[1], room.participants[0])
		s.mu.RLock()
		user := s.users[other]
		s.mu.RUnlock()
		summary := api.ChatSummaryRecord{
			ID:           room.id,
			Participant:  api.ParticipantRecord{ID: other, UserName: user.UserName, ProfileImage: user.ProfileImage, Role: user.Role},
			MessageCount: len(stored),
			UpdatedAt:    room.updatedAt,
		}
		if len(stored) > 0 {
			last := stored[len(stored)-1]
			summary.LastMessage = &api.LastMessageRecord{Text: last.Text, Sender: last.SenderID, CreatedAt: last.At}
		}
		summaries = append(summaries, summary)
	}
	return c.JSON(fiber.Map{"chats": summaries})
}

func (s *Server) ensureChat(a, b string, at time.Time) *chatRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.chats {
		if sameParticipants(room, a, b) {
			if at.After(room.updatedAt) {
				room.updatedAt = at
			}
			return room
		}
	}
	room := &chatRoom{id: uuid.NewString(), participants: [2]string{a, b}, updatedAt: at}
	s.chats[room.id] = room
	return room
}

func (s *Server) touchChat(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.chats[id]; ok && at.After(room.updatedAt) {
		room.updatedAt = at
	}
}

func (s *Server) findChat(a, b string) (*chatRoom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(lo.Values(s.chats), func(room *chatRoom) bool {
		return sameParticipants(room, a, b)
	})
}

func (s *Server) userName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id].UserName
}

func sameParticipants(room *chatRoom, a, b string) bool {
	p := room.participants
	return (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a)
}
