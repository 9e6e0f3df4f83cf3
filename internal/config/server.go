package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Server holds snipdayd configuration, populated from environment variables.
type Server struct {
	Addr string `env:"SNIPDAY_ADDR" envDefault:":8080"`

	// How long a submitted snippet stays active. A submission may override
	// it with ?expiration=.
	Expiration    time.Duration `env:"SNIPDAY_EXPIRATION" envDefault:"10s"`
	MaxCodeLength int           `env:"SNIPDAY_MAX_CODE_LENGTH" envDefault:"500"`
	SweepInterval time.Duration `env:"SNIPDAY_SWEEP_INTERVAL" envDefault:"1s"`

	// Comma-separated list of allowed origins; "*" allows any.
	CORSOrigins string `env:"SNIPDAY_CORS_ORIGINS" envDefault:"*"`

	LogLevel  string `env:"SNIPDAY_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SNIPDAY_LOG_FORMAT" envDefault:"text"`

	ReadTimeout     time.Duration `env:"SNIPDAY_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SNIPDAY_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SNIPDAY_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServer parses environment variables into a Server config.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse server config: %w", err)
	}
	if cfg.Expiration <= 0 {
		return Server{}, fmt.Errorf("parse server config: SNIPDAY_EXPIRATION must be positive")
	}
	if cfg.MaxCodeLength <= 0 {
		return Server{}, fmt.Errorf("parse server config: SNIPDAY_MAX_CODE_LENGTH must be positive")
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Second
	}
	return cfg, nil
}

// AllowedOrigins splits CORSOrigins into trimmed, non-empty entries.
func (s Server) AllowedOrigins() []string {
	if strings.TrimSpace(s.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(s.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
