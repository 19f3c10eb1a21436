// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Store    StoreConfig    `toml:"store"`
	Race     RaceConfig     `toml:"race"`
	Security SecurityConfig `toml:"security"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend       *string `toml:"backend"`
	Path          *string `toml:"path"`
	RedisAddr     *string `toml:"redis-addr"`
	RedisPassword *string `toml:"redis-password"`
	RedisDB       *int    `toml:"redis-db"`
	RedisPrefix   *string `toml:"redis-prefix"`
}

// RaceConfig maps race-related settings.
type RaceConfig struct {
	Difficulty *string `toml:"difficulty"`
	Words      *int    `toml:"words"`
}

// SecurityConfig maps password storage settings.
type SecurityConfig struct {
	HashPasswords *bool `toml:"hash-passwords"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
