package store

import (
	"context"

	"github.com/reckot/checkin-station/models"
)

// EventRepository stores the cached event records written by the snapshot
// loader. Exactly one record exists per server id; the slug is a secondary
// unique lookup key.
type EventRepository interface {
	SaveEvent(ctx context.Context, event models.CachedEvent) error
	GetEvent(ctx context.Context, id int64) (models.CachedEvent, error)
	GetEventBySlug(ctx context.Context, slug string) (models.CachedEvent, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// TicketRepository stores the offline ticket cache. Tickets are bulk-upserted
// by the snapshot loader and mutated by the recorder when an offline check-in
// flips the local is_checked_in flag.
type TicketRepository interface {
	SaveTickets(ctx context.Context, tickets ...models.CachedTicket) error
	GetTicketByCode(ctx context.Context, code string) (models.CachedTicket, error)
	GetEventTickets(ctx context.Context, eventID int64) ([]models.CachedTicket, error)
	UpdateTicket(ctx context.Context, ticket models.CachedTicket) error
	SearchTickets(ctx context.Context, eventID int64, query string, limit uint64) ([]models.CachedTicket, error)
	DeleteEventTickets(ctx context.Context, eventID int64) error
}

// CheckinRepository stores locally generated check-ins until the
// reconciliation engine settles them against the server.
type CheckinRepository interface {
	SaveCheckin(ctx context.Context, checkin models.PendingCheckin) (localID int64, err error)
	GetUnsyncedCheckins(ctx context.Context) ([]models.PendingCheckin, error)
	MarkCheckinSynced(ctx context.Context, localID int64, serverReference string) error
	MarkCheckinConflict(ctx context.Context, localID int64) error
	CountUnsyncedCheckins(ctx context.Context) (int, error)
	HasUnsyncedCheckin(ctx context.Context, ticketCode string) (bool, error)
}

// SwagRepository stores the cached swag catalogue and locally queued swag
// collections.
type SwagRepository interface {
	SaveSwagItems(ctx context.Context, items ...models.SwagItem) error
	GetEventSwagItems(ctx context.Context, eventID int64) ([]models.SwagItem, error)
	DeleteEventSwagItems(ctx context.Context, eventID int64) error

	SaveSwagCollection(ctx context.Context, collection models.PendingSwagCollection) (localID int64, err error)
	GetUnsyncedSwagCollections(ctx context.Context) ([]models.PendingSwagCollection, error)
	MarkSwagCollectionSynced(ctx context.Context, localID int64) error
	CountUnsyncedSwagCollections(ctx context.Context) (int, error)
	HasUnsyncedSwagCollection(ctx context.Context, checkinRef string, swagItemID int64) (bool, error)
}

// SettingRepository stores arbitrary key/value settings that persist across
// sessions (e.g. the forced-offline toggle).
type SettingRepository interface {
	SaveSetting(ctx context.Context, key, value string) error
	GetSetting(ctx context.Context, key string) (string, error)
}
