package service

import "errors"

var (
	// ErrSyncInProgress is returned by SyncNow when another reconciliation
	// pass is still running; the caller should not retry immediately.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrSyncFailed wraps any failure that aborts a snapshot load or a
	// reconciliation pass. Previously cached data stays usable.
	ErrSyncFailed = errors.New("sync failed")
)
