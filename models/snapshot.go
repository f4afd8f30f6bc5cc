package models

// EventSnapshot is the bulk payload fetched from the offline-data endpoint
// and persisted locally for offline use: the event plus all of its tickets
// and swag items. The snapshot is authoritative at load time.
type EventSnapshot struct {
	Event     CachedEvent    `json:"event"`
	Tickets   []CachedTicket `json:"tickets"`
	SwagItems []SwagItem     `json:"swagItems"`
}
