package models

// OutcomeReason classifies why a check-in or swag operation did not succeed.
type OutcomeReason string

const (
	ReasonNotFound           OutcomeReason = "not_found"
	ReasonAlreadyCheckedIn   OutcomeReason = "already_checked_in"
	ReasonAlreadyCollected   OutcomeReason = "already_collected"
	ReasonTransportFailure   OutcomeReason = "transport_failure"
	ReasonStorageUnavailable OutcomeReason = "storage_unavailable"
)

// Outcome is the structured result of a verification or swag-collection
// attempt. Operations return an Outcome instead of an error so the UI can
// render a message without a try/catch at every call site; only
// infrastructure failures (storage, programming errors) surface as errors.
type Outcome struct {
	Success bool          `json:"success"`
	Reason  OutcomeReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`

	// Offline is true when the outcome was produced by the offline path.
	// WillSync is true when a pending record was queued for later replay.
	Offline  bool `json:"offline,omitempty"`
	WillSync bool `json:"willSync,omitempty"`

	// CheckinRef is the reference to hand to CollectSwag: the server
	// reference for online check-ins, the local pending id for offline ones.
	CheckinRef string `json:"checkinRef,omitempty"`

	Ticket    *CachedTicket `json:"ticket,omitempty"`
	SwagItems []SwagItem    `json:"swagItems,omitempty"`
}

// FailureOutcome builds a failed Outcome with the given reason and
// user-facing message.
func FailureOutcome(reason OutcomeReason, message string) Outcome {
	return Outcome{Success: false, Reason: reason, Message: message}
}
