package models

import "time"

// PendingCheckin is a locally generated check-in record. LocalID is the only
// identity until the record is replayed against the server; after a
// successful replay Synced is true and ServerReference holds the id issued
// by the server.
type PendingCheckin struct {
	LocalID    int64     `json:"localId"`
	TicketCode string    `json:"ticketCode"`
	Timestamp  time.Time `json:"timestamp"`
	Notes      string    `json:"notes"`

	// ClientRef is a client-generated UUID sent with every replay so the
	// server can apply the record idempotently.
	ClientRef string `json:"clientRef"`

	Synced          bool   `json:"synced"`
	ServerReference string `json:"serverReference,omitempty"`

	// Conflict is set when the server rejected the replay because another
	// device checked the ticket in first (first-sync-wins policy). The
	// record counts as settled and is not retried.
	Conflict bool `json:"conflict,omitempty"`
}
