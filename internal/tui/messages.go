package tui

import (
	"github.com/reckot/checkin-station/internal/service"
	"github.com/reckot/checkin-station/models"
)

type verifyDoneMsg struct {
	outcome models.Outcome
}

type swagDoneMsg struct {
	outcome models.Outcome
}

type syncDoneMsg struct {
	report models.SyncReport
	err    error
}

type snapshotLoadedMsg struct {
	snapshot models.EventSnapshot
	err      error
}

type offlineToggledMsg struct {
	enabled bool
	err     error
}

type searchResultsMsg struct {
	tickets []models.CachedTicket
	err     error
}

type statusTickMsg struct{}

type busEventMsg struct {
	event service.Event
}

type copiedMsg struct {
	err error
}
