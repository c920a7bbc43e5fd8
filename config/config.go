// Package config loads daemon settings from environment variables.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net"

	"github.com/blockberries/mediarecord/types"
	"github.com/caarlos0/env/v11"
)

// DefaultProgramID is the program id used when MEDIARECORD_PROGRAM_ID
// is unset: the SHA-256 digest of "mediarecord".
var DefaultProgramID = types.Pubkey(sha256.Sum256([]byte("mediarecord")))

// Config holds the daemon settings.
type Config struct {
	ListenAddr string `env:"MEDIARECORD_LISTEN_ADDR" envDefault:"127.0.0.1:7400"`
	ChainID    string `env:"MEDIARECORD_CHAIN_ID" envDefault:"mediarecord-dev"`

	// MetricsAddr serves Prometheus metrics over HTTP. Empty disables it.
	MetricsAddr string `env:"MEDIARECORD_METRICS_ADDR"`

	// ProgramID is the base58 id the media record program is hosted at.
	ProgramID string `env:"MEDIARECORD_PROGRAM_ID"`

	LamportsPerByteYear uint64  `env:"MEDIARECORD_LAMPORTS_PER_BYTE_YEAR" envDefault:"3480"`
	ExemptionThreshold  float64 `env:"MEDIARECORD_EXEMPTION_THRESHOLD" envDefault:"2.0"`
	BurnPercent         uint8   `env:"MEDIARECORD_BURN_PERCENT" envDefault:"50"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return parse(env.Options{})
}

// Parse is Load over an explicit environment instead of the process
// environment.
func Parse(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("listen address %q: %w", c.ListenAddr, err))
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			errs = append(errs, fmt.Errorf("metrics address %q: %w", c.MetricsAddr, err))
		}
	}
	if c.ChainID == "" {
		errs = append(errs, errors.New("chain id is empty"))
	}
	if _, err := c.Program(); err != nil {
		errs = append(errs, err)
	}
	// The runtime publishes these parameters in the rent oracle account,
	// so they must survive the program's own decoding.
	if _, err := types.DecodeRent(c.Rent().Encode()); err != nil {
		errs = append(errs, fmt.Errorf("rent: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Program returns the configured program id, or DefaultProgramID.
func (c Config) Program() (types.Pubkey, error) {
	if c.ProgramID == "" {
		return DefaultProgramID, nil
	}
	id, err := types.ParsePubkey(c.ProgramID)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("program id: %w", err)
	}
	return id, nil
}

// Rent returns the rent parameters for the rent oracle account.
func (c Config) Rent() types.Rent {
	return types.Rent{
		LamportsPerByteYear: c.LamportsPerByteYear,
		ExemptionThreshold:  c.ExemptionThreshold,
		BurnPercent:         c.BurnPercent,
	}
}
