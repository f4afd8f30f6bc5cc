package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reckot/checkin-station/internal/adapter"
	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/internal/store"
	"github.com/reckot/checkin-station/internal/utils"
	"github.com/reckot/checkin-station/models"
)

type recorderService struct {
	storages   *store.Storages
	adapter    adapter.ServerAdapter
	monitor    ConnectivityMonitor
	reconciler ReconcilerService
	refs       *utils.UUIDGenerator
	event      config.Event
	logger     *logger.Logger

	// mu serialises the offline check-then-act sequence on the ticket
	// cache so two concurrent scans of the same code cannot both queue a
	// check-in.
	mu sync.Mutex
}

func NewRecorderService(storages *store.Storages, serverAdapter adapter.ServerAdapter, monitor ConnectivityMonitor, reconciler ReconcilerService, eventCfg config.Event, logger *logger.Logger) RecorderService {
	return &recorderService{
		storages:   storages,
		adapter:    serverAdapter,
		monitor:    monitor,
		reconciler: reconciler,
		refs:       utils.NewUUIDGenerator(),
		event:      eventCfg,
		logger:     logger,
	}
}

// VerifyTicket implements [RecorderService]. The online path is preferred;
// it falls back to the offline path only when the server never produced a
// response, never after a definitive rejection.
func (s *recorderService) VerifyTicket(ctx context.Context, code string) models.Outcome {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.FailureOutcome(models.ReasonNotFound, "Empty ticket code")
	}

	if s.online(ctx) {
		outcome, retryOffline := s.verifyOnline(ctx, code)
		if !retryOffline {
			return outcome
		}
	}

	return s.verifyOffline(ctx, code)
}

func (s *recorderService) verifyOnline(ctx context.Context, code string) (outcome models.Outcome, retryOffline bool) {
	resp, err := s.adapter.VerifyTicket(ctx, s.event.OrgSlug, s.event.EventSlug, code)
	switch {
	case err == nil:
		s.cacheServerTicket(ctx, resp.Ticket)
		return models.Outcome{
			Success:    resp.Success,
			Message:    resp.Message,
			CheckinRef: resp.Reference,
			Ticket:     resp.Ticket,
			SwagItems:  resp.SwagItems,
		}, false

	case errors.Is(err, adapter.ErrNotFound):
		return models.FailureOutcome(models.ReasonNotFound, messageOr(resp.Message, "Ticket not found")), false

	case errors.Is(err, adapter.ErrConflict):
		s.cacheServerTicket(ctx, resp.Ticket)
		outcome = models.FailureOutcome(models.ReasonAlreadyCheckedIn, messageOr(resp.Message, "Ticket already checked in"))
		outcome.Ticket = resp.Ticket
		return outcome, false

	case errors.Is(err, adapter.ErrServerUnreachable):
		s.logger.Warn().Err(err).Str("code", code).Msg("online verify unreachable, falling back to offline path")
		return models.Outcome{}, true

	default:
		return models.FailureOutcome(models.ReasonTransportFailure, "Server error: "+err.Error()), false
	}
}

func (s *recorderService) verifyOffline(ctx context.Context, code string) models.Outcome {
	if s.storages == nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Offline storage unavailable, cannot verify while offline")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.storages.Tickets.GetTicketByCode(ctx, code)
	if errors.Is(err, store.ErrTicketNotFound) {
		return models.FailureOutcome(models.ReasonNotFound, "Ticket not found in offline cache")
	}
	if err != nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Ticket lookup failed: "+err.Error())
	}

	if ticket.IsCheckedIn {
		outcome := models.FailureOutcome(models.ReasonAlreadyCheckedIn, "Ticket already checked in")
		outcome.Offline = true
		outcome.Ticket = &ticket
		return outcome
	}

	// the cached flag can lag the queue when a flip failed after a
	// successful SaveCheckin, so the queue itself is checked too
	queued, err := s.storages.Checkins.HasUnsyncedCheckin(ctx, ticket.Code)
	if err != nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Check-in lookup failed: "+err.Error())
	}
	if queued {
		outcome := models.FailureOutcome(models.ReasonAlreadyCheckedIn, "Ticket already checked in, sync pending")
		outcome.Offline = true
		outcome.Ticket = &ticket
		return outcome
	}

	now := time.Now().UTC()
	localID, err := s.storages.Checkins.SaveCheckin(ctx, models.PendingCheckin{
		TicketCode: ticket.Code,
		Timestamp:  now,
		Notes:      "Offline check-in",
		ClientRef:  s.refs.Generate(),
	})
	if err != nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Could not queue check-in: "+err.Error())
	}

	ticket.IsCheckedIn = true
	ticket.CheckedInAt = &now
	if err = s.storages.Tickets.UpdateTicket(ctx, ticket); err != nil {
		// the queued record is the durable truth; a stale cache flag only
		// weakens duplicate detection until the next snapshot refresh
		s.logger.Warn().Err(err).Str("code", code).Msg("could not flip cached ticket after queueing check-in")
	}

	swagItems, err := s.storages.Swag.GetEventSwagItems(ctx, ticket.EventID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("eventID", ticket.EventID).Msg("could not load swag items for outcome")
	}

	return models.Outcome{
		Success:    true,
		Message:    "Checked in offline, will sync",
		Offline:    true,
		WillSync:   true,
		CheckinRef: localCheckinRef(localID),
		Ticket:     &ticket,
		SwagItems:  swagItems,
	}
}

// CollectSwag implements [RecorderService].
func (s *recorderService) CollectSwag(ctx context.Context, checkinRef string, swagItemID int64, ticketCode string) models.Outcome {
	now := time.Now().UTC()

	if s.online(ctx) {
		err := s.adapter.SyncSwag(ctx, models.SwagSyncRequest{
			TicketCode:  ticketCode,
			SwagItemID:  swagItemID,
			CollectedAt: now,
		})
		switch {
		case err == nil:
			return models.Outcome{Success: true, CheckinRef: checkinRef}

		case errors.Is(err, adapter.ErrConflict):
			return models.FailureOutcome(models.ReasonAlreadyCollected, "Swag already collected")

		case errors.Is(err, adapter.ErrServerUnreachable):
			s.logger.Warn().Err(err).Str("ticketCode", ticketCode).Msg("online swag collection unreachable, falling back to offline path")

		default:
			return models.FailureOutcome(models.ReasonTransportFailure, "Server error: "+err.Error())
		}
	}

	if s.storages == nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Offline storage unavailable, cannot collect while offline")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collected, err := s.storages.Swag.HasUnsyncedSwagCollection(ctx, checkinRef, swagItemID)
	if err != nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Swag lookup failed: "+err.Error())
	}
	if collected {
		outcome := models.FailureOutcome(models.ReasonAlreadyCollected, "Swag already collected")
		outcome.Offline = true
		return outcome
	}

	if _, err = s.storages.Swag.SaveSwagCollection(ctx, models.PendingSwagCollection{
		CheckinRef: checkinRef,
		SwagItemID: swagItemID,
		TicketCode: ticketCode,
		Timestamp:  now,
	}); err != nil {
		return models.FailureOutcome(models.ReasonStorageUnavailable, "Could not queue swag collection: "+err.Error())
	}

	return models.Outcome{
		Success:    true,
		Message:    "Swag collected offline, will sync",
		Offline:    true,
		WillSync:   true,
		CheckinRef: checkinRef,
	}
}

// SearchTickets implements [RecorderService]. Search runs against the local
// cache only, so it works identically on- and offline.
func (s *recorderService) SearchTickets(ctx context.Context, query string, limit uint64) ([]models.CachedTicket, error) {
	if s.storages == nil {
		return nil, store.ErrStorageUnavailable
	}

	event, err := s.storages.Events.GetEventBySlug(ctx, s.event.EventSlug)
	if err != nil {
		return nil, err
	}

	return s.storages.Tickets.SearchTickets(ctx, event.ID, query, limit)
}

// SetOfflineMode implements [RecorderService].
func (s *recorderService) SetOfflineMode(ctx context.Context, enabled bool) error {
	if s.storages == nil {
		return store.ErrStorageUnavailable
	}

	return s.storages.Settings.SaveSetting(ctx, models.SettingOfflineMode, strconv.FormatBool(enabled))
}

// OfflineMode implements [RecorderService]. An unset or unreadable setting
// counts as disabled.
func (s *recorderService) OfflineMode(ctx context.Context) bool {
	if s.storages == nil {
		return false
	}

	value, err := s.storages.Settings.GetSetting(ctx, models.SettingOfflineMode)
	if err != nil {
		return false
	}

	return value == "true" || value == "1"
}

// Status implements [RecorderService].
func (s *recorderService) Status(ctx context.Context) models.OfflineStatus {
	status := models.OfflineStatus{
		IsOnline:  s.online(ctx),
		IsSyncing: s.reconciler.IsSyncing(),
	}

	if s.storages == nil {
		return status
	}

	var err error
	if status.PendingCheckins, err = s.storages.Checkins.CountUnsyncedCheckins(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("could not count pending check-ins")
	}
	if status.PendingSwag, err = s.storages.Swag.CountUnsyncedSwagCollections(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("could not count pending swag collections")
	}

	return status
}

// online reports whether the online path should be used: the server must be
// reachable and the operator must not have forced offline mode.
func (s *recorderService) online(ctx context.Context) bool {
	if s.OfflineMode(ctx) {
		return false
	}

	return s.monitor.IsOnline()
}

func localCheckinRef(localID int64) string {
	return "local:" + strconv.FormatInt(localID, 10)
}

// cacheServerTicket writes the server's view of a ticket into the local
// cache so offline duplicate detection stays current.
func (s *recorderService) cacheServerTicket(ctx context.Context, ticket *models.CachedTicket) {
	if s.storages == nil || ticket == nil {
		return
	}

	if err := s.storages.Tickets.SaveTickets(ctx, *ticket); err != nil {
		s.logger.Warn().Err(err).Str("code", ticket.Code).Msg("could not cache server ticket state")
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
