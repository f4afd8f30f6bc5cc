package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	upsertEvent = `
		INSERT OR REPLACE INTO events (
			id,
			slug,
			title,
			start_time,
			end_time,
			synced_at
		) VALUES (?, ?, ?, ?, ?, ?);`

	getEvent = `
		SELECT id, slug, title, start_time, end_time, synced_at
		FROM events
		WHERE id = ?;`

	getEventBySlug = `
		SELECT id, slug, title, start_time, end_time, synced_at
		FROM events
		WHERE slug = ?;`

	deleteEvent = `
		DELETE FROM events
		WHERE id = ?;`

	upsertTicket = `
		INSERT OR REPLACE INTO tickets (
			id,
			code,
			event_id,
			attendee_name,
			attendee_email,
			ticket_type,
			is_checked_in,
			checked_in_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getTicketByCode = `
		SELECT id, code, event_id, attendee_name, attendee_email, ticket_type, is_checked_in, checked_in_at
		FROM tickets
		WHERE code = ?;`

	getEventTickets = `
		SELECT id, code, event_id, attendee_name, attendee_email, ticket_type, is_checked_in, checked_in_at
		FROM tickets
		WHERE event_id = ?;`

	updateTicket = `
		UPDATE tickets SET
			code           = ?,
			event_id       = ?,
			attendee_name  = ?,
			attendee_email = ?,
			ticket_type    = ?,
			is_checked_in  = ?,
			checked_in_at  = ?
		WHERE id = ?;`

	deleteEventTickets = `
		DELETE FROM tickets
		WHERE event_id = ?;`

	insertCheckin = `
		INSERT INTO checkins (
			client_ref,
			ticket_code,
			timestamp,
			notes,
			synced,
			server_reference,
			conflict
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	getUnsyncedCheckins = `
		SELECT local_id, client_ref, ticket_code, timestamp, notes, synced, server_reference, conflict
		FROM checkins
		WHERE synced = 0
		ORDER BY timestamp ASC, local_id ASC;`

	markCheckinSynced = `
		UPDATE checkins SET
			synced           = 1,
			server_reference = ?
		WHERE local_id = ?;`

	markCheckinConflict = `
		UPDATE checkins SET
			synced   = 1,
			conflict = 1
		WHERE local_id = ?;`

	countUnsyncedCheckins = `
		SELECT COUNT(*)
		FROM checkins
		WHERE synced = 0;`

	hasUnsyncedCheckin = `
		SELECT COUNT(*)
		FROM checkins
		WHERE synced = 0 AND ticket_code = ?;`

	upsertSwagItem = `
		INSERT OR REPLACE INTO swag_items (
			id,
			event_id,
			name,
			description,
			quantity
		) VALUES (?, ?, ?, ?, ?);`

	getEventSwagItems = `
		SELECT id, event_id, name, description, quantity
		FROM swag_items
		WHERE event_id = ?;`

	deleteEventSwagItems = `
		DELETE FROM swag_items
		WHERE event_id = ?;`

	insertSwagCollection = `
		INSERT INTO swag_collections (
			checkin_ref,
			swag_item_id,
			ticket_code,
			timestamp,
			synced
		) VALUES (?, ?, ?, ?, ?);`

	getUnsyncedSwagCollections = `
		SELECT local_id, checkin_ref, swag_item_id, ticket_code, timestamp, synced
		FROM swag_collections
		WHERE synced = 0
		ORDER BY timestamp ASC, local_id ASC;`

	markSwagCollectionSynced = `
		UPDATE swag_collections SET
			synced = 1
		WHERE local_id = ?;`

	countUnsyncedSwagCollections = `
		SELECT COUNT(*)
		FROM swag_collections
		WHERE synced = 0;`

	hasUnsyncedSwagCollection = `
		SELECT COUNT(*)
		FROM swag_collections
		WHERE synced = 0 AND checkin_ref = ? AND swag_item_id = ?;`

	upsertSetting = `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getSetting = `
		SELECT value
		FROM settings
		WHERE key = ?;`
)

// buildTicketSearchQuery builds the attendee-search SELECT for the offline
// search box: substring match on code, attendee name, or attendee email,
// scoped to one event. The query string is matched case-insensitively
// (LIKE is case-insensitive for ASCII in SQLite).
func buildTicketSearchQuery(eventID int64, query string, limit uint64) (string, []any, error) {
	pattern := "%" + query + "%"

	sql, args, err := sq.
		Select("id", "code", "event_id", "attendee_name", "attendee_email", "ticket_type", "is_checked_in", "checked_in_at").
		From("tickets").
		Where(sq.Eq{"event_id": eventID}).
		Where(sq.Or{
			sq.Like{"code": pattern},
			sq.Like{"attendee_name": pattern},
			sq.Like{"attendee_email": pattern},
		}).
		OrderBy("attendee_name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("error building ticket search query: %w", err)
	}

	return sql, args, nil
}
