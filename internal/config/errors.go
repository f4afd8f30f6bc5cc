package config

import "errors"

var (
	// ErrInvalidServerConfigs is returned when the server base URL is missing.
	ErrInvalidServerConfigs = errors.New("invalid server configs: base URL is required")

	// ErrInvalidEventConfigs is returned when the org or event slug is missing;
	// the station cannot fetch a snapshot or verify tickets without them.
	ErrInvalidEventConfigs = errors.New("invalid event configs: org and event slugs are required")
)
