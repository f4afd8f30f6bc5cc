package service

import (
	"context"
	"fmt"
	"time"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/models"
)

type cacheLoaderService struct {
	storages *store.Storages
	adapter  adapter.ServerAdapter
	monitor  ConnectivityMonitor
	event    config.Event
	logger   *logger.Logger
}

func NewCacheLoaderService(storages *store.Storages, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, eventCfg config.Event, logger *logger.Logger) CacheLoaderService {
	return &cacheLoaderService{
		storages: storages,
		adapter:  serverAdapter,
		monitor:  monitor,
		event:    eventCfg,
		logger:   logger,
	}
}

// LoadEventSnapshot implements [CacheLoaderService]. The swag catalogue is
// replaced wholesale; tickets are upserted and then re-flipped for every
// check-in still queued locally, so an optimistic flag never gets lost to a
// refresh that raced a pending record.
func (s *cacheLoaderService) LoadEventSnapshot(ctx context.Context) (models.EventSnapshot, error) {
	if !s.monitor.IsOnline() {
		return models.EventSnapshot{}, fmt.Errorf("%w: server is not reachable", ErrSyncFailed)
	}

	snapshot, err := s.adapter.FetchSnapshot(ctx, s.event.OrgSlug, s.event.EventSlug)
	if err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: fetch snapshot: %w", ErrSyncFailed, err)
	}

	if s.storages == nil {
		return snapshot, nil
	}

	snapshot.Event.SyncedAt = time.Now().UTC()

	if err = s.storages.Events.SaveEvent(ctx, snapshot.Event); err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: save event: %w", ErrSyncFailed, err)
	}
	if err = s.storages.Tickets.SaveTickets(ctx, snapshot.Tickets...); err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: save tickets: %w", ErrSyncFailed, err)
	}

	if err = s.storages.Swag.DeleteEventSwagItems(ctx, snapshot.Event.ID); err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: clear swag items: %w", ErrSyncFailed, err)
	}
	if err = s.storages.Swag.SaveSwagItems(ctx, snapshot.SwagItems...); err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: save swag items: %w", ErrSyncFailed, err)
	}

	if err = s.reapplyPendingFlips(ctx); err != nil {
		return models.EventSnapshot{}, fmt.Errorf("%w: reapply pending check-ins: %w", ErrSyncFailed, err)
	}

	s.logger.Info().
		Str("event", snapshot.Event.Slug).
		Int("tickets", len(snapshot.Tickets)).
		Int("swagItems", len(snapshot.SwagItems)).
		Msg("event snapshot loaded")

	return snapshot, nil
}

// reapplyPendingFlips restores is_checked_in on tickets that still have an
// unsynced local check-in. The fresh snapshot reflects the server state,
// which does not know about queued records yet.
func (s *cacheLoaderService) reapplyPendingFlips(ctx context.Context) error {
	pending, err := s.storages.Checkins.GetUnsyncedCheckins(ctx)
	if err != nil {
		return err
	}

	for _, checkin := range pending {
		ticket, err := s.storages.Tickets.GetTicketByCode(ctx, checkin.TicketCode)
		if err != nil {
			// the ticket may no longer exist server-side; the queued record
			// will surface the problem during reconciliation
			continue
		}
		if ticket.IsCheckedIn {
			continue
		}

		ts := checkin.Timestamp
		ticket.IsCheckedIn = true
		ticket.CheckedInAt = &ts
		if err = s.storages.Tickets.UpdateTicket(ctx, ticket); err != nil {
			return err
		}
	}

	return nil
}

// CachedEvent implements [CacheLoaderService].
func (s *cacheLoaderService) CachedEvent(ctx context.Context) (models.CachedEvent, error) {
	if s.storages == nil {
		return models.CachedEvent{}, store.ErrStorageUnavailable
	}

	return s.storages.Events.GetEventBySlug(ctx, s.event.EventSlug)
}

// ClearEventData implements [CacheLoaderService].
func (s *cacheLoaderService) ClearEventData(ctx context.Context) error {
	if s.storages == nil {
		return store.ErrStorageUnavailable
	}

	event, err := s.storages.Events.GetEventBySlug(ctx, s.event.EventSlug)
	if err != nil {
		return fmt.Errorf("lookup cached event: %w", err)
	}

	if err = s.storages.Tickets.DeleteEventTickets(ctx, event.ID); err != nil {
		return fmt.Errorf("delete cached tickets: %w", err)
	}
	if err = s.storages.Swag.DeleteEventSwagItems(ctx, event.ID); err != nil {
		return fmt.Errorf("delete cached swag items: %w", err)
	}
	if err = s.storages.Events.DeleteEvent(ctx, event.ID); err != nil {
		return fmt.Errorf("delete cached event: %w", err)
	}

	return nil
}
