package models

import "time"

// CachedEvent is the locally cached copy of an event, written by the
// snapshot loader and read by the check-in flow while offline. Exactly one
// record exists per server id; the slug is a secondary unique lookup key.
type CachedEvent struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// SyncedAt is the time of the last successful snapshot refresh.
	SyncedAt time.Time `json:"synced_at"`
}
