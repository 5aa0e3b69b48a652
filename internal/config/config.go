// Package config resolves client configuration from flags and environment.
// Precedence: command-line flag, then BILIM_* environment variable, then
// default.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// DefaultAPIBaseURL matches the backend's local development address.
	DefaultAPIBaseURL = "http://localhost:8000"

	defaultTimeout = 60 * time.Second
)

// Config is the resolved client configuration.
type Config struct {
	APIBaseURL string
	DBPath     string
	Timeout    time.Duration
	LogLevel   string
	LogFile    string
}

// FromCmd builds a Config from the command's flags with env overrides
// (BILIM_API_URL, BILIM_DB, and so on).
func FromCmd(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return Config{}, fmt.Errorf("bind inherited flags: %w", err)
	}

	cfg := Config{
		APIBaseURL: v.GetString("api-url"),
		DBPath:     v.GetString("db"),
		Timeout:    v.GetDuration("timeout"),
		LogLevel:   v.GetString("log-level"),
		LogFile:    v.GetString("log-file"),
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg, nil
}

// Logger opens the configured log sink. The TUI owns stdout, so logs go to
// a file, or are discarded when no file is configured. The caller closes
// the returned file when non-nil.
func (c Config) Logger() (*slog.Logger, *os.File, error) {
	level := parseLevel(c.LogLevel)

	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
