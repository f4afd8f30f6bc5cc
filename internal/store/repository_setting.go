package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reckot/checkin-station/internal/logger"
)

type settingRepository struct {
	*DB
	logger *logger.Logger
}

func NewSettingRepository(db *DB, logger *logger.Logger) SettingRepository {
	return &settingRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *settingRepository) SaveSetting(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, upsertSetting, key, value)
	if err != nil {
		log.Err(err).
			Str("func", "settingRepository.SaveSetting").
			Str("key", key).
			Msg("failed to execute upsert for setting")
		return fmt.Errorf("failed to save setting (key=%s): %w", key, err)
	}

	return nil
}

func (s *settingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	err := s.DB.QueryRowContext(ctx, getSetting, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		log.Err(err).
			Str("func", "settingRepository.GetSetting").
			Str("key", key).
			Msg("failed to scan setting row")
		return "", fmt.Errorf("failed to get setting (key=%s): %w", key, err)
	}

	return value, nil
}
