package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers
// where absence must be distinguishable from the zero value.
type FileConfig struct {
	BeaconURL   string  `toml:"beacon_url"`
	Chain       *string `toml:"chain"`
	Round       string  `toml:"round"`
	Entrants    int     `toml:"entrants"`
	HTTPTimeout string  `toml:"http_timeout"`
	Retries     *int    `toml:"retries"`
	Local       *bool   `toml:"local"`
	Verbose     *bool   `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.fairdraw/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".fairdraw", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("beacon-url", fc.BeaconURL, &cfg.BeaconURL)
	s.setStringPtr("chain", fc.Chain, &cfg.Chain)
	s.setString("round", fc.Round, &cfg.Round)

	s.setInt("entrants", fc.Entrants, &cfg.Entrants)
	s.setIntPtr("retries", fc.Retries, &cfg.Retries)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBool("local", fc.Local, &cfg.Local)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}
