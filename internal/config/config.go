// Package config loads the process configuration shared by the greeter
// server and client binaries from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/ggoodman/mcp-greeter-go/internal/logctx"
)

// Config holds the environment-derived settings. None of them changes the
// protocol contract between client and server.
type Config struct {
	// LogLevel is one of debug, info, warn or error. ENV: GREETER_LOG_LEVEL
	LogLevel string `env:"GREETER_LOG_LEVEL,default=info"`
	// LogFormat is text or json. ENV: GREETER_LOG_FORMAT
	LogFormat string `env:"GREETER_LOG_FORMAT,default=text"`
	// ServerPath overrides the greeter-server binary launched by the client.
	// ENV: GREETER_SERVER_PATH
	ServerPath string `env:"GREETER_SERVER_PATH"`
}

// ErrInvalidLogFormat is returned when LogFormat is neither text nor json.
var ErrInvalidLogFormat = errors.New("invalid log format")

// Load decodes Config from the environment, applying tag defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.LogFormat)
	}
	return cfg, nil
}

// Level parses LogLevel into a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds a logger writing to w in the configured format. Records
// carry the request-scoped attributes placed in the context by the server
// middleware.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	log, _, err := c.NewLeveledLogger(w)
	return log, err
}

// NewLeveledLogger is NewLogger but also returns the level variable backing
// the handler so the level can be changed at runtime.
func (c Config) NewLeveledLogger(w io.Writer) (*slog.Logger, *slog.LevelVar, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	lv := new(slog.LevelVar)
	lv.Set(lvl)
	opts := &slog.HandlerOptions{Level: lv}

	var h slog.Handler
	switch strings.ToLower(c.LogFormat) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return slog.New(logctx.Handler{Handler: h}), lv, nil
}
