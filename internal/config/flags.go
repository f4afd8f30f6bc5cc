package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-server reckot server base URL
//	-token operator bearer token
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-d local SQLite database path
//	-sync-interval reconciliation interval (e.g., "5m")
//	-probe-interval health probe interval (e.g., "10s")
//	-org organization slug
//	-event event slug
//	-c/-config json file path with configs
func ParseFlags() *StationConfig {
	var serverBaseURL string
	var token string
	var requestTimeout time.Duration
	var dbPath string
	var syncInterval time.Duration
	var probeInterval time.Duration
	var orgSlug string
	var eventSlug string
	var jsonConfigPath string

	flag.StringVar(&serverBaseURL, "server", "", "Reckot server base URL")
	flag.StringVar(&token, "token", "", "Operator bearer token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.StringVar(&dbPath, "d", "", "Local SQLite database path")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Reconciliation interval (e.g., 5m)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Health probe interval (e.g., 10s)")
	flag.StringVar(&orgSlug, "org", "", "Organization slug")
	flag.StringVar(&eventSlug, "event", "", "Event slug")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StationConfig{
		Server: Server{
			BaseURL:        serverBaseURL,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
		},
		Sync: Sync{
			Interval:      syncInterval,
			ProbeInterval: probeInterval,
		},
		Event: Event{
			OrgSlug:   orgSlug,
			EventSlug: eventSlug,
		},
		JSONFilePath: jsonConfigPath,
	}
}
