package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/models"
)

type eventRepository struct {
	*DB
	logger *logger.Logger
}

func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

func (e *eventRepository) SaveEvent(ctx context.Context, event models.CachedEvent) error {
	log := logger.FromContext(ctx)

	_, err := e.DB.ExecContext(ctx, upsertEvent,
		event.ID,
		event.Slug,
		event.Title,
		event.StartTime,
		event.EndTime,
		event.SyncedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.SaveEvent").
			Int64("event_id", event.ID).
			Str("slug", event.Slug).
			Msg("failed to execute upsert for cached event")
		return fmt.Errorf("failed to save cached event (id=%d): %w", event.ID, err)
	}

	return nil
}

func (e *eventRepository) GetEvent(ctx context.Context, id int64) (models.CachedEvent, error) {
	return e.getEvent(ctx, getEvent, id, "eventRepository.GetEvent")
}

func (e *eventRepository) GetEventBySlug(ctx context.Context, slug string) (models.CachedEvent, error) {
	return e.getEvent(ctx, getEventBySlug, slug, "eventRepository.GetEventBySlug")
}

func (e *eventRepository) getEvent(ctx context.Context, query string, key any, funcName string) (models.CachedEvent, error) {
	log := logger.FromContext(ctx)

	var event models.CachedEvent
	row := e.DB.QueryRowContext(ctx, query, key)

	scanErr := row.Scan(
		&event.ID,
		&event.Slug,
		&event.Title,
		&event.StartTime,
		&event.EndTime,
		&event.SyncedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.CachedEvent{}, ErrEventNotFound
		}
		log.Err(scanErr).
			Str("func", funcName).
			Msg("failed to scan cached event row")
		return models.CachedEvent{}, fmt.Errorf("failed to scan cached event row: %w", scanErr)
	}

	return event, nil
}

func (e *eventRepository) DeleteEvent(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	_, err := e.DB.ExecContext(ctx, deleteEvent, id)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.DeleteEvent").
			Int64("event_id", id).
			Msg("failed to execute delete for cached event")
		return fmt.Errorf("failed to delete cached event (id=%d): %w", id, err)
	}

	return nil
}
