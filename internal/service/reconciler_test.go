package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/models"
)

func queueCheckins(t *testing.T, storages *store.Storages, codes ...string) {
	t.Helper()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, code := range codes {
		_, err := storages.Checkins.SaveCheckin(ctx, models.PendingCheckin{
			TicketCode: code,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			ClientRef:  fmt.Sprintf("ref-%s", code),
		})
		require.NoError(t, err)
	}
}

func TestSyncNow_ReplaysOldestFirst(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A", "B", "C")

	fake := &fakeServerAdapter{
		syncCheckinFn: func(req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			return models.CheckinSyncResponse{Success: true, Reference: "srv-" + req.TicketCode}, nil
		},
		syncSwagFn: func(models.SwagSyncRequest) error { return nil },
	}

	bus := NewBus()
	var events []Event
	bus.Subscribe(func(e Event) { events = append(events, e) })

	rec := NewReconcilerService(storages, fake, bus, logger.Nop())

	report, err := rec.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.CheckinsSynced)
	assert.Zero(t, report.Failed)

	replays := fake.replayedCheckins()
	require.Len(t, replays, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{replays[0].TicketCode, replays[1].TicketCode, replays[2].TicketCode})
	assert.Equal(t, "ref-A", replays[0].ClientRef)

	// the queue drained
	count, err := storages.Checkins.CountUnsyncedCheckins(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	// one notification per accepted check-in, then the pass summary
	require.Len(t, events, 4)
	for i, code := range []string{"A", "B", "C"} {
		assert.Equal(t, EventCheckinSynced, events[i].Type)
		assert.Equal(t, code, events[i].TicketCode)
	}
	assert.Equal(t, EventSyncCompleted, events[3].Type)
	assert.Equal(t, 3, events[3].Report.CheckinsSynced)

	// a second pass is a no-op: zero new network calls, no notification
	report, err = rec.SyncNow(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Len(t, fake.replayedCheckins(), 3)
	assert.Len(t, events, 4)
}

func TestSyncNow_ConflictSettledNotRetried(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A", "B")

	fake := &fakeServerAdapter{
		syncCheckinFn: func(req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			if req.TicketCode == "A" {
				return models.CheckinSyncResponse{Message: "already checked in"},
					fmt.Errorf("%w: already checked in", adapter.ErrConflict)
			}
			return models.CheckinSyncResponse{Success: true, Reference: "srv-B"}, nil
		},
		syncSwagFn: func(models.SwagSyncRequest) error { return nil },
	}
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())
	ctx := context.Background()

	report, err := rec.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CheckinsSynced)
	assert.Equal(t, 1, report.Conflicts)

	// the conflicted record is settled; a second pass replays nothing
	report, err = rec.SyncNow(ctx)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Len(t, fake.replayedCheckins(), 2)
}

func TestSyncNow_MidBatchFailureDoesNotAbort(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A", "B", "C")

	fake := &fakeServerAdapter{}
	fake.syncCheckinFn = func(req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
		if req.TicketCode == "B" {
			return models.CheckinSyncResponse{}, errUnreachable()
		}
		return models.CheckinSyncResponse{Success: true, Reference: "srv-" + req.TicketCode}, nil
	}
	fake.syncSwagFn = func(models.SwagSyncRequest) error { return nil }
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())
	ctx := context.Background()

	report, err := rec.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.CheckinsSynced)
	assert.Equal(t, 1, report.Failed)

	// only the failed record survives for the next pass
	count, err := storages.Checkins.CountUnsyncedCheckins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	pending, err := storages.Checkins.GetUnsyncedCheckins(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].TicketCode)
}

func TestSyncNow_RejectedRecordStaysQueued(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A")

	fake := &fakeServerAdapter{
		syncCheckinFn: func(models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			return models.CheckinSyncResponse{}, fmt.Errorf("%w: validation failed", adapter.ErrBadRequest)
		},
		syncSwagFn: func(models.SwagSyncRequest) error { return nil },
	}
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())
	ctx := context.Background()

	report, err := rec.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.CheckinsSynced)

	count, err := storages.Checkins.CountUnsyncedCheckins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSyncNow_ReplaysSwagAfterCheckins(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A")
	_, err := storages.Swag.SaveSwagCollection(context.Background(), models.PendingSwagCollection{
		CheckinRef: "local:1", SwagItemID: 9, TicketCode: "A", Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)

	var order []string
	fake := &fakeServerAdapter{
		syncCheckinFn: func(req models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			order = append(order, "checkin")
			return models.CheckinSyncResponse{Success: true, Reference: "srv-A"}, nil
		},
		syncSwagFn: func(models.SwagSyncRequest) error {
			order = append(order, "swag")
			return nil
		},
	}
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())

	report, err := rec.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.CheckinsSynced)
	assert.Equal(t, 1, report.SwagSynced)
	assert.Equal(t, []string{"checkin", "swag"}, order)
}

func TestSyncNow_SwagDuplicateSettled(t *testing.T) {
	storages := newTestStorages(t)
	_, err := storages.Swag.SaveSwagCollection(context.Background(), models.PendingSwagCollection{
		CheckinRef: "local:1", SwagItemID: 9, TicketCode: "A", Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)

	fake := &fakeServerAdapter{
		syncCheckinFn: func(models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			return models.CheckinSyncResponse{Success: true}, nil
		},
		syncSwagFn: func(models.SwagSyncRequest) error {
			return fmt.Errorf("%w: duplicate", adapter.ErrConflict)
		},
	}
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())
	ctx := context.Background()

	report, err := rec.SyncNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Conflicts)

	count, err := storages.Swag.CountUnsyncedSwagCollections(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSyncNow_SecondCallWhileRunning(t *testing.T) {
	storages := newTestStorages(t)
	queueCheckins(t, storages, "A")

	block := make(chan struct{})
	started := make(chan struct{})
	fake := &fakeServerAdapter{
		syncCheckinFn: func(models.CheckinSyncRequest) (models.CheckinSyncResponse, error) {
			close(started)
			<-block
			return models.CheckinSyncResponse{Success: true}, nil
		},
		syncSwagFn: func(models.SwagSyncRequest) error { return nil },
	}
	rec := NewReconcilerService(storages, fake, NewBus(), logger.Nop())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = rec.SyncNow(ctx)
	}()

	<-started
	assert.True(t, rec.IsSyncing())

	_, err := rec.SyncNow(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(block)
	<-done
	assert.False(t, rec.IsSyncing())
}

func TestSyncNow_NoStorage(t *testing.T) {
	rec := NewReconcilerService(nil, &fakeServerAdapter{}, NewBus(), logger.Nop())

	_, err := rec.SyncNow(context.Background())
	assert.True(t, errors.Is(err, store.ErrStorageUnavailable))
}
