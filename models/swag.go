package models

import "time"

// SwagItem is a collectible item cached per event. Read-only on the client;
// refreshed wholesale by the snapshot loader.
type SwagItem struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"eventId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
}

// PendingSwagCollection is a locally queued swag hand-out. CheckinRef holds
// whatever reference was available at collection time: the server reference
// when the check-in had already synced, otherwise the stringified local
// pending id.
type PendingSwagCollection struct {
	LocalID    int64     `json:"localId"`
	CheckinRef string    `json:"checkinRef"`
	SwagItemID int64     `json:"swagItemId"`
	TicketCode string    `json:"ticketCode"`
	Timestamp  time.Time `json:"timestamp"`
	Synced     bool      `json:"synced"`
}
