package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Store.Backend != nil || cfg.Race.Difficulty != nil || cfg.Security.HashPasswords != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[store]
backend = "redis"
redis-addr = "localhost:6379"
redis-db = 2

[race]
difficulty = "adaptive"
words = 12

[security]
hash-passwords = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Store.Backend == nil || *cfg.Store.Backend != "redis" {
		t.Fatalf("unexpected backend: %v", cfg.Store.Backend)
	}
	if cfg.Store.RedisDB == nil || *cfg.Store.RedisDB != 2 {
		t.Fatalf("unexpected redis db: %v", cfg.Store.RedisDB)
	}
	if cfg.Store.Path != nil {
		t.Fatalf("expected unset path to stay nil")
	}
	if cfg.Race.Words == nil || *cfg.Race.Words != 12 {
		t.Fatalf("unexpected words: %v", cfg.Race.Words)
	}
	if cfg.Security.HashPasswords == nil || !*cfg.Security.HashPasswords {
		t.Fatalf("expected hash-passwords true")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[race]\nspeed = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "neurotype", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "neurotype", "neurotype.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultWordListPath("en"); got != filepath.Join("/tmp/cfg", "neurotype", "wordlists", "en.txt") {
		t.Fatalf("unexpected word list path %q", got)
	}
}
