package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (FAIRDRAW_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid
// format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("beacon-url", os.Getenv("FAIRDRAW_BEACON_URL"), &cfg.BeaconURL)
	s.setString("chain", os.Getenv("FAIRDRAW_CHAIN"), &cfg.Chain)
	s.setString("round", os.Getenv("FAIRDRAW_ROUND"), &cfg.Round)

	if err := s.setIntFromString("entrants", os.Getenv("FAIRDRAW_ENTRANTS"), &cfg.Entrants); err != nil {
		return err
	}
	if err := s.setNonNegIntFromString("retries", os.Getenv("FAIRDRAW_RETRIES"), &cfg.Retries); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("FAIRDRAW_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBoolFromString("local", os.Getenv("FAIRDRAW_LOCAL"), &cfg.Local)
	s.setBoolFromString("verbose", os.Getenv("FAIRDRAW_VERBOSE"), &cfg.Verbose)

	return nil
}
