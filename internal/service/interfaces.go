// Package service implements the station's business logic: loading the
// offline event snapshot, recording check-ins and swag hand-outs through the
// dual online/offline path, reconciling the local queue with the server, and
// watching connectivity.
//
// The services are deliberately storage-tolerant: when the local SQLite store
// could not be opened they are constructed with nil storages and degrade to
// online-only operation instead of refusing to start.
package service

import (
	"context"
	"time"

	"github.com/reckot/checkin-station/models"
)

// CacheLoaderService downloads the event snapshot and persists it for
// offline use.
type CacheLoaderService interface {
	// LoadEventSnapshot fetches the configured event's offline payload from
	// the server and replaces the local caches with it. Requires the server
	// to be reachable; on failure the previously cached snapshot remains
	// usable and the error wraps [ErrSyncFailed].
	LoadEventSnapshot(ctx context.Context) (models.EventSnapshot, error)

	// CachedEvent returns the locally cached event record, if any.
	CachedEvent(ctx context.Context) (models.CachedEvent, error)

	// ClearEventData removes the configured event and all of its cached
	// tickets and swag items from local storage. Pending check-ins are kept.
	ClearEventData(ctx context.Context) error
}

// RecorderService records check-ins and swag collections. Operations return
// a [models.Outcome] instead of an error so the UI can always render a
// message; only lookups and settings surface errors.
type RecorderService interface {
	// VerifyTicket verifies and checks in a ticket. Online it asks the
	// server; offline (or when the server stops answering mid-request) it
	// verifies against the local cache, queues a pending check-in and flips
	// the cached ticket optimistically.
	VerifyTicket(ctx context.Context, code string) models.Outcome

	// CollectSwag records one swag hand-out for a completed check-in.
	// checkinRef is the reference returned by VerifyTicket.
	CollectSwag(ctx context.Context, checkinRef string, swagItemID int64, ticketCode string) models.Outcome

	// SearchTickets finds cached tickets of the configured event whose code,
	// attendee name or email contains query.
	SearchTickets(ctx context.Context, query string, limit uint64) ([]models.CachedTicket, error)

	// SetOfflineMode persists the forced-offline toggle. While enabled every
	// operation takes the offline path even when the server is reachable.
	SetOfflineMode(ctx context.Context, enabled bool) error

	// OfflineMode reports the persisted forced-offline toggle.
	OfflineMode(ctx context.Context) bool

	// Status aggregates connectivity, sync activity and queue depths for
	// the status bar.
	Status(ctx context.Context) models.OfflineStatus
}

// ReconcilerService replays the local queue against the server.
type ReconcilerService interface {
	// SyncNow runs one reconciliation pass: every unsynced check-in, then
	// every unsynced swag collection, oldest first. At most one pass runs at
	// a time; an overlapping call returns [ErrSyncInProgress]. Records the
	// server rejects as duplicates are settled locally and not retried.
	SyncNow(ctx context.Context) (models.SyncReport, error)

	// IsSyncing reports whether a pass is currently running.
	IsSyncing() bool
}

// ConnectivityMonitor probes server reachability in the background and
// triggers a reconciliation pass on every offline-to-online transition.
type ConnectivityMonitor interface {
	// Start launches the background probe loop. If interval is zero or
	// negative it defaults to 10 seconds. Stops any previously running loop.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the probe loop and waits for it to exit. Safe to call
	// when the monitor is not running.
	Stop()

	// IsOnline reports the last observed reachability state.
	IsOnline() bool

	// ForceCheck probes immediately and returns the fresh state. A detected
	// offline-to-online transition triggers a sync just like the loop does.
	ForceCheck(ctx context.Context) bool
}

// SyncJob periodically triggers a reconciliation pass as a safety net for
// transitions the connectivity monitor missed. Ticks that land while the
// server is unreachable are skipped.
type SyncJob interface {
	// Start launches the ticker goroutine. If interval is zero or negative
	// it defaults to 5 minutes. Stops any previously running job.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the ticker goroutine and waits for it to exit.
	Stop()
}
