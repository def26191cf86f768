package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	defaultDBPath      = "relwin.db"
	defaultListID      = "releases"
	defaultDownloadsID = "downloads"
	defaultAddr        = "127.0.0.1:8080"
	defaultLogLevel    = "info"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	DBPath      string
	ListID      string
	DownloadsID string
	Addr        string
	UserAgent   string
	LogLevel    string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		DBPath:      os.Getenv("RELWIN_DB_PATH"),
		ListID:      os.Getenv("RELWIN_LIST_ID"),
		DownloadsID: os.Getenv("RELWIN_DOWNLOADS_ID"),
		Addr:        os.Getenv("RELWIN_ADDR"),
		UserAgent:   os.Getenv("RELWIN_USER_AGENT"),
		LogLevel:    strings.ToLower(os.Getenv("RELWIN_LOG_LEVEL")),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	dbPath, err := homedir.Expand(cfg.DBPath)
	if err != nil {
		return Config{}, fmt.Errorf("DBPath %q: %w", cfg.DBPath, err)
	}
	cfg.DBPath = dbPath
	if cfg.ListID == "" {
		cfg.ListID = defaultListID
	}
	if cfg.DownloadsID == "" {
		cfg.DownloadsID = defaultDownloadsID
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.ListID == "" {
		return errors.New("ListID is required")
	}
	if strings.ContainsAny(c.ListID, " \t#") {
		return fmt.Errorf("ListID must be a bare element id: %q", c.ListID)
	}
	if c.Addr == "" {
		return errors.New("Addr is required")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LogLevel must be debug, info, warn or error: %s", s)
	}
}

// Logger builds the process logger for the configured level.
func (c Config) Logger() *slog.Logger {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
