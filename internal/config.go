package internal

import (
	"fmt"
	"strings"
	"time"

	"talent-chat/auth"
	"talent-chat/domain/chat"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

var validate = validator.New()

type Config struct {
	APIURL          string        `env:"CHAT_API_URL,default=http://localhost:3000" validate:"required,url"`
	UserID          string        `env:"CHAT_USER_ID"`
	UserName        string        `env:"CHAT_USER_NAME"`
	SessionCookie   string        `env:"CHAT_SESSION_COOKIE"`
	SessionSecret   string        `env:"CHAT_SESSION_SECRET"`
	CookieName      string        `env:"CHAT_COOKIE_NAME,default=token" validate:"required"`
	NoticeTTL       time.Duration `env:"NOTICE_TTL,default=5s" validate:"gt=0"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=10s" validate:"gt=0"`
	ReadMarksPath   string        `env:"READ_MARKS_PATH"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CensorCharacter string        `env:"CENSOR_CHARACTER,default=*"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	DevServerAddr   string        `env:"DEVSERVER_ADDR,default=127.0.0.1:3000"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Session is the identity the chat runs as.
func (c Config) Session() chat.Session {
	return chat.Session{UserID: c.UserID, DisplayName: c.UserName}
}

// Cookie returns the session token sent to the backend. An explicit CHAT_SESSION_COOKIE wins;
// otherwise a token is signed for CHAT_USER_ID when CHAT_SESSION_SECRET is shared with the backend.
// With neither, the cookie is empty and the backend answers as for a logged-out user.
func (c Config) Cookie() (string, error) {
	if c.SessionCookie != "" {
		return c.SessionCookie, nil
	}
	if c.SessionSecret == "" || c.UserID == "" {
		return "", nil
	}
	return auth.IssueToken([]byte(c.SessionSecret), c.UserID, auth.DefaultTokenTTL)
}

// CensorRune returns the masking character, which must be exactly one rune.
func (c Config) CensorRune() (rune, error) {
	r := []rune(c.CensorCharacter)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSOR_CHARACTER must be a single character, got %q", c.CensorCharacter)
	}
	return r[0], nil
}

// Words splits CENSORED_WORDS on commas.
func (c Config) Words() []string {
	return lo.Compact(lo.Map(strings.Split(c.CensoredWords, ","), func(word string, _ int) string {
		return strings.TrimSpace(word)
	}))
}
