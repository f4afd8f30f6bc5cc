package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/models"
)

type reconcilerService struct {
	storages *store.Storages
	adapter  adapter.ServerAdapter
	bus      *Bus
	logger   *logger.Logger

	syncing atomic.Bool
}

func NewReconcilerService(storages *store.Storages, serverAdapter adapter.ServerAdapter, bus *Bus, logger *logger.Logger) ReconcilerService {
	return &reconcilerService{
		storages: storages,
		adapter:  serverAdapter,
		bus:      bus,
		logger:   logger,
	}
}

// IsSyncing implements [ReconcilerService].
func (s *reconcilerService) IsSyncing() bool {
	return s.syncing.Load()
}

// SyncNow implements [ReconcilerService]. Check-ins are replayed before swag
// collections so a collection never arrives at the server ahead of the
// check-in it belongs to. A record that fails for any reason other than a
// duplicate rejection stays queued and the pass moves on to the next record;
// a single failure never aborts the batch.
func (s *reconcilerService) SyncNow(ctx context.Context) (report models.SyncReport, err error) {
	if s.storages == nil {
		return models.SyncReport{}, store.ErrStorageUnavailable
	}
	if !s.syncing.CompareAndSwap(false, true) {
		return models.SyncReport{}, ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	defer func() {
		if report.Changed() {
			s.bus.Publish(Event{Type: EventSyncCompleted, Report: report})
		}
	}()

	if err = s.replayCheckins(ctx, &report); err != nil {
		return report, err
	}
	if err = s.replaySwag(ctx, &report); err != nil {
		return report, err
	}

	s.logger.Info().
		Int("checkins", report.CheckinsSynced).
		Int("swag", report.SwagSynced).
		Int("conflicts", report.Conflicts).
		Int("failed", report.Failed).
		Msg("reconciliation pass finished")

	return report, nil
}

func (s *reconcilerService) replayCheckins(ctx context.Context, report *models.SyncReport) error {
	pending, err := s.storages.Checkins.GetUnsyncedCheckins(ctx)
	if err != nil {
		return fmt.Errorf("%w: load pending check-ins: %w", ErrSyncFailed, err)
	}

	for _, checkin := range pending {
		resp, err := s.adapter.SyncCheckin(ctx, models.CheckinSyncRequest{
			TicketCode:  checkin.TicketCode,
			CheckedInAt: checkin.Timestamp,
			Notes:       checkin.Notes,
			ClientRef:   checkin.ClientRef,
		})
		switch {
		case err == nil:
			if err = s.storages.Checkins.MarkCheckinSynced(ctx, checkin.LocalID, resp.Reference); err != nil {
				s.logger.Error().Err(err).Int64("localID", checkin.LocalID).Msg("could not mark check-in synced")
				report.Failed++
				continue
			}
			report.CheckinsSynced++
			s.bus.Publish(Event{Type: EventCheckinSynced, TicketCode: checkin.TicketCode})

		case errors.Is(err, adapter.ErrConflict):
			// another device checked this ticket in first; settle the
			// record and keep the local flag, it matches the server anyway
			if err = s.storages.Checkins.MarkCheckinConflict(ctx, checkin.LocalID); err != nil {
				s.logger.Error().Err(err).Int64("localID", checkin.LocalID).Msg("could not mark check-in conflicted")
				report.Failed++
				continue
			}
			report.Conflicts++

		default:
			s.logger.Warn().Err(err).Str("ticketCode", checkin.TicketCode).Msg("check-in replay failed, will retry next pass")
			report.Failed++
		}
	}

	return nil
}

func (s *reconcilerService) replaySwag(ctx context.Context, report *models.SyncReport) error {
	pending, err := s.storages.Swag.GetUnsyncedSwagCollections(ctx)
	if err != nil {
		return fmt.Errorf("%w: load pending swag collections: %w", ErrSyncFailed, err)
	}

	for _, collection := range pending {
		err := s.adapter.SyncSwag(ctx, models.SwagSyncRequest{
			TicketCode:  collection.TicketCode,
			SwagItemID:  collection.SwagItemID,
			CollectedAt: collection.Timestamp,
		})
		switch {
		case err == nil:
			if err = s.storages.Swag.MarkSwagCollectionSynced(ctx, collection.LocalID); err != nil {
				s.logger.Error().Err(err).Int64("localID", collection.LocalID).Msg("could not mark swag collection synced")
				report.Failed++
				continue
			}
			report.SwagSynced++

		case errors.Is(err, adapter.ErrConflict):
			// the server already holds this collection; settle the record
			if err = s.storages.Swag.MarkSwagCollectionSynced(ctx, collection.LocalID); err != nil {
				s.logger.Error().Err(err).Int64("localID", collection.LocalID).Msg("could not settle duplicate swag collection")
				report.Failed++
				continue
			}
			report.Conflicts++

		default:
			s.logger.Warn().Err(err).Str("ticketCode", collection.TicketCode).Msg("swag replay failed, will retry next pass")
			report.Failed++
		}
	}

	return nil
}
