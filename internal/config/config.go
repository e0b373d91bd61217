package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	BackendFile  = "file"
	BackendBbolt = "bbolt"
)

type Config struct {
	// StorePath is the account store location.
	StorePath string
	// Backend selects the store format: "file" (JSON) or "bbolt".
	Backend string
}

func Load() (*Config, error) {
	cfg := &Config{
		StorePath: getEnv("ODNORAZKA_STORE", defaultStorePath()),
		Backend:   getEnv("ODNORAZKA_BACKEND", BackendFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("ODNORAZKA_STORE must not be empty")
	}

	if c.Backend != BackendFile && c.Backend != BackendBbolt {
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendBbolt)
	}

	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "accounts.json"
	}
	return filepath.Join(home, ".odnorazka", "accounts.json")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
