package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reckot/checkin-station/models"
)

func TestOutcomeLine(t *testing.T) {
	tests := []struct {
		name    string
		outcome models.Outcome
		want    string
	}{
		{
			name: "online success",
			outcome: models.Outcome{
				Success: true,
				Ticket:  &models.CachedTicket{AttendeeName: "Ada Lovelace"},
			},
			want: "Checked in Ada Lovelace",
		},
		{
			name: "offline success mentions queue",
			outcome: models.Outcome{
				Success:  true,
				Offline:  true,
				WillSync: true,
			},
			want: "(offline, queued)",
		},
		{
			name:    "failure carries message",
			outcome: models.FailureOutcome(models.ReasonNotFound, "Ticket not found"),
			want:    "Ticket not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, outcomeLine(tt.outcome), tt.want)
		})
	}
}

func TestSyncSummary(t *testing.T) {
	assert.Equal(t, "Nothing to sync", syncSummary(models.SyncReport{}))

	got := syncSummary(models.SyncReport{CheckinsSynced: 3, SwagSynced: 1, Conflicts: 2, Failed: 1})
	assert.Contains(t, got, "3 check-ins synced")
	assert.Contains(t, got, "1 swag synced")
	assert.Contains(t, got, "2 duplicates settled")
	assert.Contains(t, got, "1 left pending")
}

func TestStatusBar(t *testing.T) {
	m := stationModel{status: models.OfflineStatus{IsOnline: true}}
	assert.Contains(t, m.statusBar(), "ONLINE")

	m.offlineMode = true
	assert.Contains(t, m.statusBar(), "FORCED OFFLINE")

	m = stationModel{status: models.OfflineStatus{PendingCheckins: 2, PendingSwag: 1}}
	bar := m.statusBar()
	assert.Contains(t, bar, "OFFLINE")
	assert.Contains(t, bar, "3 pending")
}

func TestHelpLine_PerMode(t *testing.T) {
	assert.True(t, strings.Contains(stationModel{mode: modeCode}.helpLine(), "verify"))
	assert.True(t, strings.Contains(stationModel{mode: modeSwag}.helpLine(), "hand out"))
	assert.True(t, strings.Contains(stationModel{mode: modeSearch}.helpLine(), "search"))
}
