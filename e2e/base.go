package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"talent-chat/api"
	"talent-chat/auth"
	"talent-chat/client"
	"talent-chat/conversations"
	"talent-chat/devserver"
	"talent-chat/domain/chat"
	"talent-chat/history"
	"talent-chat/repositories"
	"talent-chat/transport"
	"talent-chat/view"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseChatSuite struct {
	suite.Suite
	Config Config
	server *devserver.Server
	db     *badger.DB
	log    *slog.Logger
}

// SetupSuite loads the configuration and, unless a backend is given, starts a dev server.
func (s *BaseChatSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelDebug)

	s.db, err = repositories.OpenInMemory()
	s.Require().NoError(err)

	if s.Config.APIURL != "" {
		return
	}
	var opts []devserver.Option
	if s.Config.PollingOnly {
		opts = append(opts, devserver.WithoutWebsocket())
	}
	opts = append(opts, devserver.WithCookieName(s.Config.CookieName), devserver.WithSecret([]byte(s.Config.SessionSecret)))
	s.server, err = devserver.New(s.log, opts...)
	s.Require().NoError(err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	go func() { _ = s.server.Serve(ln) }()
	s.Config.APIURL = "http://" + ln.Addr().String()
}

func (s *BaseChatSuite) TearDownSuite() {
	if s.server != nil {
		s.Require().NoError(s.server.Shutdown())
	}
	if s.db != nil {
		s.Require().NoError(s.db.Close())
	}
}

func (s *BaseChatSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// httpClient carries a session token for session, signed with the shared secret.
func (s *BaseChatSuite) httpClient(session chat.Session) *http.Client {
	token, err := auth.IssueToken([]byte(s.Config.SessionSecret), session.UserID, time.Hour)
	s.Require().NoError(err)
	httpClient, err := api.NewSessionHTTPClient(s.Config.APIURL, s.Config.CookieName, token, 5*time.Second)
	s.Require().NoError(err)
	return httpClient
}

func (s *BaseChatSuite) chatAPI(session chat.Session) *api.Client {
	httpClient := s.httpClient(session)
	chatAPI, err := api.NewClient(s.log, s.Config.APIURL, httpClient)
	s.Require().NoError(err)
	return chatAPI
}

// WithConversation opens a conversation as session and closes it when fn returns.
func (s *BaseChatSuite) WithConversation(session chat.Session, counterpartID string, fn func(conversation *view.ConversationView)) {
	httpClient := s.httpClient(session)
	chatAPI, err := api.NewClient(s.log, s.Config.APIURL, httpClient)
	s.Require().NoError(err)
	dialer, err := transport.NewDialer(s.log, s.Config.APIURL, httpClient)
	s.Require().NoError(err)

	opener := view.NewOpener(s.log, history.NewLoader(s.log, chatAPI), client.NewManager(s.log, dialer),
		view.WithReadMarks(repositories.NewReadMarkRepository(s.db)))
	conversation, err := opener.Open(context.Background(), session, counterpartID)
	s.Require().NoError(err)
	defer conversation.Close()

	select {
	case <-conversation.Ready():
	case <-time.After(10 * time.Second):
		s.Require().Fail("conversation never became ready")
	}
	fn(conversation)
}

func (s *BaseChatSuite) ListConversations(session chat.Session) conversations.Listing {
	listing, err := conversations.NewLister(s.log, s.chatAPI(session), repositories.NewReadMarkRepository(s.db)).
		Load(context.Background())
	s.Require().NoError(err)
	return listing
}
