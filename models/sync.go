package models

import "time"

// CheckinSyncRequest replays one locally queued check-in against the server.
type CheckinSyncRequest struct {
	TicketCode  string    `json:"ticketCode"`
	CheckedInAt time.Time `json:"checkedInAt"`
	Notes       string    `json:"notes"`
	ClientRef   string    `json:"clientRef"`
}

// CheckinSyncResponse is the server's answer to a replayed check-in.
type CheckinSyncResponse struct {
	Success   bool          `json:"success"`
	Reference string        `json:"reference"`
	Ticket    *CachedTicket `json:"ticket,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// SwagSyncRequest replays one locally queued swag collection. The server
// resolves the check-in through the ticket code, so no local reference is
// transmitted.
type SwagSyncRequest struct {
	TicketCode  string    `json:"ticketCode"`
	SwagItemID  int64     `json:"swagItemId"`
	CollectedAt time.Time `json:"collectedAt"`
}

// VerifyRequest asks the server to verify and check in a ticket online.
type VerifyRequest struct {
	Code string `json:"code"`
}

// VerifyResponse is the structured result of an online verification.
type VerifyResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Reference string        `json:"reference,omitempty"`
	Ticket    *CachedTicket `json:"ticket,omitempty"`
	SwagItems []SwagItem    `json:"swagItems,omitempty"`
}

// SyncReport aggregates the result of one reconciliation pass.
type SyncReport struct {
	CheckinsSynced int `json:"checkins"`
	SwagSynced     int `json:"swag"`

	// Conflicts counts records the server rejected as duplicates (ticket
	// already checked in elsewhere, swag already collected); they are
	// settled locally and not retried.
	Conflicts int `json:"conflicts"`

	// Failed counts records left pending for the next pass.
	Failed int `json:"failed"`
}

// Changed reports whether the pass moved at least one record to a settled
// state. Only a changed report is worth a user-visible notification.
func (r SyncReport) Changed() bool {
	return r.CheckinsSynced > 0 || r.SwagSynced > 0 || r.Conflicts > 0
}

// OfflineStatus is the aggregate shown in the station status bar.
type OfflineStatus struct {
	IsOnline        bool `json:"isOnline"`
	IsSyncing       bool `json:"isSyncing"`
	PendingCheckins int  `json:"pendingCheckins"`
	PendingSwag     int  `json:"pendingSwag"`
}
