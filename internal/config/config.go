package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the client settings.
type Config struct {
	APIBase        string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/snipday/config.toml"
	defaultLogFile        = "~/.local/state/snipday/snipday.log"
	defaultAPIBase        = "http://localhost:8080"
	defaultPollInterval   = 60 * time.Second
	defaultRequestTimeout = 5 * time.Second
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIBase:        defaultAPIBase,
		PollInterval:   defaultPollInterval,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load locates and parses the client config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase               string `toml:"api_base"`
		PollSeconds           int    `toml:"poll_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		LogFile               string `toml:"log_file"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
