package store

import (
	"context"
	"fmt"

	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/models"
)

type swagRepository struct {
	*DB
	logger *logger.Logger
}

func NewSwagRepository(db *DB, logger *logger.Logger) SwagRepository {
	return &swagRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *swagRepository) SaveSwagItems(ctx context.Context, items ...models.SwagItem) error {
	log := logger.FromContext(ctx)

	for _, item := range items {
		_, err := s.DB.ExecContext(ctx, upsertSwagItem,
			item.ID,
			item.EventID,
			item.Name,
			item.Description,
			item.Quantity,
		)
		if err != nil {
			log.Err(err).
				Str("func", "swagRepository.SaveSwagItems").
				Int64("swag_item_id", item.ID).
				Int64("event_id", item.EventID).
				Msg("failed to execute upsert for swag item")
			return fmt.Errorf("failed to save swag item (id=%d): %w", item.ID, err)
		}
	}

	return nil
}

func (s *swagRepository) GetEventSwagItems(ctx context.Context, eventID int64) ([]models.SwagItem, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getEventSwagItems, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.GetEventSwagItems").
			Int64("event_id", eventID).
			Msg("failed to execute query for event swag items")
		return nil, fmt.Errorf("failed to query swag items: %w", err)
	}
	defer rows.Close()

	var items []models.SwagItem

	for rows.Next() {
		var item models.SwagItem

		scanErr := rows.Scan(
			&item.ID,
			&item.EventID,
			&item.Name,
			&item.Description,
			&item.Quantity,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "swagRepository.GetEventSwagItems").
				Int64("event_id", eventID).
				Msg("failed to scan swag item row")
			return nil, fmt.Errorf("failed to scan swag item row: %w", scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "swagRepository.GetEventSwagItems").
			Int64("event_id", eventID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating swag item rows: %w", rowsErr)
	}

	return items, nil
}

func (s *swagRepository) DeleteEventSwagItems(ctx context.Context, eventID int64) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, deleteEventSwagItems, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.DeleteEventSwagItems").
			Int64("event_id", eventID).
			Msg("failed to execute delete for event swag items")
		return fmt.Errorf("failed to delete swag items (event_id=%d): %w", eventID, err)
	}

	return nil
}

func (s *swagRepository) SaveSwagCollection(ctx context.Context, collection models.PendingSwagCollection) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, insertSwagCollection,
		collection.CheckinRef,
		collection.SwagItemID,
		collection.TicketCode,
		collection.Timestamp,
		collection.Synced,
	)
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.SaveSwagCollection").
			Str("checkin_ref", collection.CheckinRef).
			Int64("swag_item_id", collection.SwagItemID).
			Msg("failed to execute insert for pending swag collection")
		return 0, fmt.Errorf("failed to save pending swag collection (item=%d): %w", collection.SwagItemID, err)
	}

	localID, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.SaveSwagCollection").
			Msg("failed to get local id of inserted swag collection")
		return 0, fmt.Errorf("failed to get local id of pending swag collection: %w", err)
	}

	return localID, nil
}

func (s *swagRepository) GetUnsyncedSwagCollections(ctx context.Context) ([]models.PendingSwagCollection, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, getUnsyncedSwagCollections)
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.GetUnsyncedSwagCollections").
			Msg("failed to execute query for unsynced swag collections")
		return nil, fmt.Errorf("failed to query unsynced swag collections: %w", err)
	}
	defer rows.Close()

	var collections []models.PendingSwagCollection

	for rows.Next() {
		var collection models.PendingSwagCollection

		scanErr := rows.Scan(
			&collection.LocalID,
			&collection.CheckinRef,
			&collection.SwagItemID,
			&collection.TicketCode,
			&collection.Timestamp,
			&collection.Synced,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "swagRepository.GetUnsyncedSwagCollections").
				Msg("failed to scan pending swag collection row")
			return nil, fmt.Errorf("failed to scan pending swag collection row: %w", scanErr)
		}

		collections = append(collections, collection)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "swagRepository.GetUnsyncedSwagCollections").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating pending swag collection rows: %w", rowsErr)
	}

	return collections, nil
}

func (s *swagRepository) MarkSwagCollectionSynced(ctx context.Context, localID int64) error {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, markSwagCollectionSynced, localID)
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.MarkSwagCollectionSynced").
			Int64("local_id", localID).
			Msg("failed to execute sync-state update for pending swag collection")
		return fmt.Errorf("failed to mark swag collection synced (local_id=%d): %w", localID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "swagRepository.MarkSwagCollectionSynced").
			Int64("local_id", localID).
			Msg("failed to get rows affected after swag collection update")
		return fmt.Errorf("failed to get rows affected (local_id=%d): %w", localID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "swagRepository.MarkSwagCollectionSynced").
			Int64("local_id", localID).
			Msg("no rows affected during swag collection update: record not found")
		return ErrSwagCollectionNotFound
	}

	return nil
}

func (s *swagRepository) CountUnsyncedSwagCollections(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := s.DB.QueryRowContext(ctx, countUnsyncedSwagCollections).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "swagRepository.CountUnsyncedSwagCollections").
			Msg("failed to count unsynced swag collections")
		return 0, fmt.Errorf("failed to count unsynced swag collections: %w", err)
	}

	return count, nil
}

func (s *swagRepository) HasUnsyncedSwagCollection(ctx context.Context, checkinRef string, swagItemID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := s.DB.QueryRowContext(ctx, hasUnsyncedSwagCollection, checkinRef, swagItemID).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "swagRepository.HasUnsyncedSwagCollection").
			Str("checkin_ref", checkinRef).
			Int64("swag_item_id", swagItemID).
			Msg("failed to check for duplicate pending swag collection")
		return false, fmt.Errorf("failed to check for duplicate swag collection: %w", err)
	}

	return count > 0, nil
}
