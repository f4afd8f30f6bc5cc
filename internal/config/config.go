package config

import (
	"time"
)

// StationConfig is the top-level configuration container for the check-in
// station. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StationConfig struct {
	// Server holds the reckot server address, the operator bearer token, and
	// request timeout settings for the outbound adapter.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the local SQLite database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the reconciliation and connectivity-probe intervals.
	Sync Sync `envPrefix:"SYNC_"`

	// Event identifies the event this station is checking attendees into.
	Event Event `envPrefix:"EVENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds the outbound transport settings.
type Server struct {
	// BaseURL is the reckot server base URL
	// (e.g. "https://reckot.example.com").
	// Env: SERVER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the operator bearer token attached to authenticated requests.
	// The station treats it as opaque.
	// Env: SERVER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "15s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the station's local SQLite database.
type DB struct {
	// Path is the SQLite database file path. The file is created on first
	// start if it does not exist.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Sync holds timing settings for the background sync machinery.
type Sync struct {
	// Interval is how often the reconciliation engine replays pending
	// records while online (e.g. "5m").
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// ProbeInterval is how often the connectivity monitor probes the health
	// endpoint (e.g. "10s").
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Event identifies the event the station serves.
type Event struct {
	// OrgSlug is the organization slug in reckot URLs.
	// Env: EVENT_ORG_SLUG
	OrgSlug string `env:"ORG_SLUG"`

	// EventSlug is the event slug in reckot URLs.
	// Env: EVENT_EVENT_SLUG
	EventSlug string `env:"EVENT_SLUG"`
}

// Defaults applied to fields left unset by every configuration source.
const (
	DefaultDBPath         = "checkin-station.db"
	DefaultRequestTimeout = 15 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
	DefaultProbeInterval  = 10 * time.Second
)

// GetStationConfig loads, merges, and validates the station configuration
// from all available sources in the following priority order (first source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StationConfig or an error if any source fails
// to load or the final config fails validation.
func GetStationConfig() (*StationConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// applyDefaults fills zero-valued fields after all sources are merged.
func (cfg *StationConfig) applyDefaults() {
	if cfg.Storage.DB.Path == "" {
		cfg.Storage.DB.Path = DefaultDBPath
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.ProbeInterval == 0 {
		cfg.Sync.ProbeInterval = DefaultProbeInterval
	}
}

// validate checks that the final merged [StationConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StationConfig) validate() error {
	if cfg.Server.BaseURL == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Event.OrgSlug == "" || cfg.Event.EventSlug == "" {
		return ErrInvalidEventConfigs
	}

	return nil
}
