package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_API_URL targets a running backend. When empty the suite starts an in-process dev server.
	APIURL string `envconfig:"E2E_API_URL"`
	// E2E_POLLING_ONLY makes the in-process dev server refuse websocket upgrades
	PollingOnly bool `envconfig:"E2E_POLLING_ONLY" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours    bool   `envconfig:"E2E_COLOURS" default:"true"`
	CookieName string `envconfig:"E2E_COOKIE_NAME" default:"token"`
	// E2E_SESSION_SECRET signs the session tokens; it must match the backend's secret
	SessionSecret string `envconfig:"E2E_SESSION_SECRET" default:"talent-chat-e2e"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
