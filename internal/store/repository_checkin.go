package store

import (
	"context"
	"fmt"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/models"
)

type checkinRepository struct {
	*DB
	logger *logger.Logger
}

func NewCheckinRepository(db *DB, logger *logger.Logger) CheckinRepository {
	return &checkinRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *checkinRepository) SaveCheckin(ctx context.Context, checkin models.PendingCheckin) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, insertCheckin,
		checkin.ClientRef,
		checkin.TicketCode,
		checkin.Timestamp,
		checkin.Notes,
		checkin.Synced,
		checkin.ServerReference,
		checkin.Conflict,
	)
	if err != nil {
		log.Err(err).
			Str("func", "checkinRepository.SaveCheckin").
			Str("ticket_code", checkin.TicketCode).
			Msg("failed to execute insert for pending check-in")
		return 0, fmt.Errorf("failed to save pending check-in (code=%s): %w", checkin.TicketCode, err)
	}

	localID, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "checkinRepository.SaveCheckin").
			Str("ticket_code", checkin.TicketCode).
			Msg("failed to get local id of inserted check-in")
		return 0, fmt.Errorf("failed to get local id of pending check-in: %w", err)
	}

	return localID, nil
}

func (c *checkinRepository) GetUnsyncedCheckins(ctx context.Context) ([]models.PendingCheckin, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, getUnsyncedCheckins)
	if err != nil {
		log.Err(err).
			Str("func", "checkinRepository.GetUnsyncedCheckins").
			Msg("failed to execute query for unsynced check-ins")
		return nil, fmt.Errorf("failed to query unsynced check-ins: %w", err)
	}
	defer rows.Close()

	var checkins []models.PendingCheckin

	for rows.Next() {
		var checkin models.PendingCheckin

		scanErr := rows.Scan(
			&checkin.LocalID,
			&checkin.ClientRef,
			&checkin.TicketCode,
			&checkin.Timestamp,
			&checkin.Notes,
			&checkin.Synced,
			&checkin.ServerReference,
			&checkin.Conflict,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "checkinRepository.GetUnsyncedCheckins").
				Msg("failed to scan pending check-in row")
			return nil, fmt.Errorf("failed to scan pending check-in row: %w", scanErr)
		}

		checkins = append(checkins, checkin)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "checkinRepository.GetUnsyncedCheckins").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating pending check-in rows: %w", rowsErr)
	}

	return checkins, nil
}

func (c *checkinRepository) MarkCheckinSynced(ctx context.Context, localID int64, serverReference string) error {
	return c.markCheckin(ctx, markCheckinSynced, "checkinRepository.MarkCheckinSynced", localID, serverReference, localID)
}

func (c *checkinRepository) MarkCheckinConflict(ctx context.Context, localID int64) error {
	return c.markCheckin(ctx, markCheckinConflict, "checkinRepository.MarkCheckinConflict", localID, localID)
}

func (c *checkinRepository) markCheckin(ctx context.Context, query, funcName string, localID int64, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("local_id", localID).
			Msg("failed to execute sync-state update for pending check-in")
		return fmt.Errorf("failed to update pending check-in (local_id=%d): %w", localID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("local_id", localID).
			Msg("failed to get rows affected after check-in sync-state update")
		return fmt.Errorf("failed to get rows affected (local_id=%d): %w", localID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", funcName).
			Int64("local_id", localID).
			Msg("no rows affected during check-in sync-state update: record not found")
		return ErrCheckinNotFound
	}

	return nil
}

func (c *checkinRepository) HasUnsyncedCheckin(ctx context.Context, ticketCode string) (bool, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := c.DB.QueryRowContext(ctx, hasUnsyncedCheckin, ticketCode).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "checkinRepository.HasUnsyncedCheckin").
			Str("ticket_code", ticketCode).
			Msg("failed to look up pending check-in by ticket code")
		return false, fmt.Errorf("failed to look up pending check-in (code=%s): %w", ticketCode, err)
	}

	return count > 0, nil
}

func (c *checkinRepository) CountUnsyncedCheckins(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := c.DB.QueryRowContext(ctx, countUnsyncedCheckins).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "checkinRepository.CountUnsyncedCheckins").
			Msg("failed to count unsynced check-ins")
		return 0, fmt.Errorf("failed to count unsynced check-ins: %w", err)
	}

	return count, nil
}
