package store

import (
	"database/sql"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
