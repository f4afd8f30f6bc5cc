package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/models"
)

type ticketRepository struct {
	*DB
	logger *logger.Logger
}

func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	return &ticketRepository{
		DB:     db,
		logger: logger,
	}
}

func (t *ticketRepository) SaveTickets(ctx context.Context, tickets ...models.CachedTicket) error {
	log := logger.FromContext(ctx)

	for _, ticket := range tickets {
		_, err := t.DB.ExecContext(ctx, upsertTicket,
			ticket.ID,
			ticket.Code,
			ticket.EventID,
			ticket.AttendeeName,
			ticket.AttendeeEmail,
			ticket.TicketType,
			ticket.IsCheckedIn,
			nullableTime(ticket.CheckedInAt),
		)
		if err != nil {
			log.Err(err).
				Str("func", "ticketRepository.SaveTickets").
				Str("code", ticket.Code).
				Int64("event_id", ticket.EventID).
				Msg("failed to execute upsert for cached ticket")
			return fmt.Errorf("failed to save cached ticket (code=%s): %w", ticket.Code, err)
		}
	}

	return nil
}

func (t *ticketRepository) GetTicketByCode(ctx context.Context, code string) (models.CachedTicket, error) {
	log := logger.FromContext(ctx)

	var ticket models.CachedTicket
	var checkedInAt sql.NullTime

	row := t.DB.QueryRowContext(ctx, getTicketByCode, code)
	scanErr := row.Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.EventID,
		&ticket.AttendeeName,
		&ticket.AttendeeEmail,
		&ticket.TicketType,
		&ticket.IsCheckedIn,
		&checkedInAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.CachedTicket{}, ErrTicketNotFound
		}
		log.Err(scanErr).
			Str("func", "ticketRepository.GetTicketByCode").
			Str("code", code).
			Msg("failed to scan cached ticket row")
		return models.CachedTicket{}, fmt.Errorf("failed to scan cached ticket row: %w", scanErr)
	}

	if checkedInAt.Valid {
		ticket.CheckedInAt = &checkedInAt.Time
	}

	return ticket, nil
}

func (t *ticketRepository) GetEventTickets(ctx context.Context, eventID int64) ([]models.CachedTicket, error) {
	return t.queryTickets(ctx, "ticketRepository.GetEventTickets", getEventTickets, eventID)
}

func (t *ticketRepository) SearchTickets(ctx context.Context, eventID int64, query string, limit uint64) ([]models.CachedTicket, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildTicketSearchQuery(eventID, query, limit)
	if err != nil {
		log.Err(err).
			Str("func", "ticketRepository.SearchTickets").
			Int64("event_id", eventID).
			Msg("failed to build ticket search query")
		return nil, err
	}

	return t.queryTickets(ctx, "ticketRepository.SearchTickets", sqlQuery, args...)
}

func (t *ticketRepository) queryTickets(ctx context.Context, funcName, query string, args ...any) ([]models.CachedTicket, error) {
	log := logger.FromContext(ctx)

	rows, err := t.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for cached tickets")
		return nil, fmt.Errorf("failed to query cached tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.CachedTicket

	for rows.Next() {
		var ticket models.CachedTicket
		var checkedInAt sql.NullTime

		scanErr := rows.Scan(
			&ticket.ID,
			&ticket.Code,
			&ticket.EventID,
			&ticket.AttendeeName,
			&ticket.AttendeeEmail,
			&ticket.TicketType,
			&ticket.IsCheckedIn,
			&checkedInAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan cached ticket row")
			return nil, fmt.Errorf("failed to scan cached ticket row: %w", scanErr)
		}

		if checkedInAt.Valid {
			ticket.CheckedInAt = &checkedInAt.Time
		}

		tickets = append(tickets, ticket)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating cached ticket rows: %w", rowsErr)
	}

	return tickets, nil
}

func (t *ticketRepository) UpdateTicket(ctx context.Context, ticket models.CachedTicket) error {
	log := logger.FromContext(ctx)

	result, err := t.DB.ExecContext(ctx, updateTicket,
		ticket.Code,
		ticket.EventID,
		ticket.AttendeeName,
		ticket.AttendeeEmail,
		ticket.TicketType,
		ticket.IsCheckedIn,
		nullableTime(ticket.CheckedInAt),
		ticket.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "ticketRepository.UpdateTicket").
			Str("code", ticket.Code).
			Msg("failed to execute update for cached ticket")
		return fmt.Errorf("failed to update cached ticket (code=%s): %w", ticket.Code, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "ticketRepository.UpdateTicket").
			Str("code", ticket.Code).
			Msg("failed to get rows affected after ticket update")
		return fmt.Errorf("failed to get rows affected (code=%s): %w", ticket.Code, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "ticketRepository.UpdateTicket").
			Str("code", ticket.Code).
			Msg("no rows affected during ticket update: record not found")
		return ErrTicketNotFound
	}

	return nil
}

func (t *ticketRepository) DeleteEventTickets(ctx context.Context, eventID int64) error {
	log := logger.FromContext(ctx)

	_, err := t.DB.ExecContext(ctx, deleteEventTickets, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "ticketRepository.DeleteEventTickets").
			Int64("event_id", eventID).
			Msg("failed to execute delete for cached event tickets")
		return fmt.Errorf("failed to delete cached tickets (event_id=%d): %w", eventID, err)
	}

	return nil
}

// nullableTime converts an optional timestamp into the driver representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
