package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	t.Setenv("RELWIN_DB_PATH", "")
	t.Setenv("RELWIN_LIST_ID", "")
	t.Setenv("RELWIN_DOWNLOADS_ID", "")
	t.Setenv("RELWIN_ADDR", "")
	t.Setenv("RELWIN_LOG_LEVEL", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.ListID != "releases" {
		t.Fatalf("unexpected list id: %s", cfg.ListID)
	}
	if cfg.DownloadsID != "downloads" {
		t.Fatalf("unexpected downloads id: %s", cfg.DownloadsID)
	}
	if cfg.Addr != defaultAddr {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("RELWIN_DB_PATH", "/tmp/r.db")
	t.Setenv("RELWIN_LIST_ID", "rel-list")
	t.Setenv("RELWIN_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64)")
	t.Setenv("RELWIN_LOG_LEVEL", "DEBUG")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.DBPath != "/tmp/r.db" || cfg.ListID != "rel-list" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.UserAgent == "" {
		t.Fatal("expected user agent to be loaded")
	}
}

func TestLoadFromEnv_InvalidLogLevel(t *testing.T) {
	t.Setenv("RELWIN_LOG_LEVEL", "loud")

	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestValidate_ListID(t *testing.T) {
	cfg := Config{DBPath: "relwin.db", ListID: "#releases", Addr: defaultAddr}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for selector-style list id")
	}
	cfg.ListID = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for empty list id")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v", in, got, err)
		}
	}
}

func TestLoadFromEnv_IsolatedFromHostEnvironment(t *testing.T) {
	t.Setenv("RELWIN_DB_PATH", "")
	os.Unsetenv("RELWIN_DB_PATH")
	t.Setenv("RELWIN_LOG_LEVEL", "")
	os.Unsetenv("RELWIN_LOG_LEVEL")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.DBPath != defaultDBPath {
		t.Fatalf("expected default DB path when unset, got %s", cfg.DBPath)
	}
}

func TestLoadFromEnv_ExpandsHomeInDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	t.Setenv("RELWIN_DB_PATH", "~/relwin/catalog.db")
	t.Setenv("RELWIN_LOG_LEVEL", "")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if want := filepath.Join(home, "relwin", "catalog.db"); cfg.DBPath != want {
		t.Fatalf("expected %s, got %s", want, cfg.DBPath)
	}

	t.Setenv("RELWIN_DB_PATH", "~someone/catalog.db")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for another user's home directory")
	}
}
