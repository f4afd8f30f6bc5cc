package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned when the local database cannot be
	// opened or migrated. Callers must treat it as "operate in online-only
	// mode": no offline queueing, no snapshot caching.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// ErrEventNotFound is returned when no cached event matches the requested
	// id or slug.
	ErrEventNotFound = errors.New("event not found in offline cache")

	// ErrTicketNotFound is returned when no cached ticket matches the
	// requested code.
	ErrTicketNotFound = errors.New("ticket not found in offline cache")

	// ErrCheckinNotFound is returned when a pending check-in targeted by a
	// sync-state update does not exist.
	ErrCheckinNotFound = errors.New("pending check-in not found")

	// ErrSwagCollectionNotFound is returned when a pending swag collection
	// targeted by a sync-state update does not exist.
	ErrSwagCollectionNotFound = errors.New("pending swag collection not found")

	// ErrSettingNotFound is returned when the requested setting key has never
	// been saved.
	ErrSettingNotFound = errors.New("setting not found")
)
