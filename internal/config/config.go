package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the daemon configuration, populated from the environment.
// Every field has a sane default; the process starts with no flags.
type Server struct {
	// Addr is the listen address for the HTTP/websocket server.
	Addr string `env:"DRIFTCHAT_ADDR" envDefault:":8080"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"DRIFTCHAT_LOG_LEVEL" envDefault:"info"`

	// LogFormat is text or json.
	LogFormat string `env:"DRIFTCHAT_LOG_FORMAT" envDefault:"text"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"DRIFTCHAT_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses the server configuration from the environment.
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
