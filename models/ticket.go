package models

import "time"

// CachedTicket is a ticket cached for offline verification. It is written in
// bulk by the snapshot loader and superseded wholesale on the next refresh;
// the recorder flips IsCheckedIn optimistically when an offline check-in is
// queued, so the local flag is the source of truth for duplicate detection.
type CachedTicket struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	EventID       int64      `json:"eventId"`
	AttendeeName  string     `json:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email"`
	TicketType    string     `json:"ticket_type__name"`
	IsCheckedIn   bool       `json:"is_checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
}
