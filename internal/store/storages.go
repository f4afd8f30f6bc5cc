package store

import (
	"context"
	"fmt"

	"github.com/reckot/checkin-station/internal/config"
	"github.com/reckot/checkin-station/internal/logger"
)

// Storages groups all station-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	Events   EventRepository
	Tickets  TicketRepository
	Checkins CheckinRepository
	Swag     SwagRepository
	Settings SettingRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.Path,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to one repository per
//     collection.
//
// Any failure is wrapped in [ErrStorageUnavailable]: the caller must degrade
// to online-only operation instead of aborting.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite connection error: %w", ErrStorageUnavailable, err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("%w: migration failed: %w", ErrStorageUnavailable, err)
	}

	return &Storages{
		Events:   NewEventRepository(db, logger),
		Tickets:  NewTicketRepository(db, logger),
		Checkins: NewCheckinRepository(db, logger),
		Swag:     NewSwagRepository(db, logger),
		Settings: NewSettingRepository(db, logger),
	}, nil
}
