// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/models"
)

// recordRepository is the SQLite-backed implementation of [RecordStore].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions of a sync round are
// traced with the session fields attached by the orchestrator.
type recordRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewRecordRepository constructs a [RecordStore] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordStore {
	return &recordRepository{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.SyncableRecord, error) {
	var (
		rec              models.SyncableRecord
		remoteID         sql.NullString
		lastSyncID       sql.NullString
		dataType         string
		modificationTime sql.NullTime
	)

	err := row.Scan(
		&rec.LocalID,
		&remoteID,
		&rec.UserID,
		&dataType,
		&rec.Payload,
		&lastSyncID,
		&rec.MarkedForDeletion,
		&rec.CreationTime,
		&modificationTime,
		&rec.Revision,
	)
	if err != nil {
		return models.SyncableRecord{}, err
	}

	rec.DataType = models.DataType(dataType)
	if remoteID.Valid {
		rec.RemoteID = &remoteID.String
	}
	if lastSyncID.Valid {
		rec.LastSyncID = &lastSyncID.String
	}
	if modificationTime.Valid {
		t := modificationTime.Time
		rec.ModificationTime = &t
	}

	return rec, nil
}

func (r *recordRepository) queryRecords(ctx context.Context, runner queryRunner, funcName, userID, query string, args []any) ([]models.SyncableRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := runner.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("user_id", userID).
			Msg("failed to execute query for records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.SyncableRecord, 0, 50)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Str("user_id", userID).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (r *recordRepository) exec(ctx context.Context, runner queryRunner, funcName, query string, args []any) (int64, error) {
	res, err := runner.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", funcName).
			Msg("failed to execute statement")
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", ErrDuplicateRemoteID, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}

// QueryUnsynced implements [RecordStore].
func (r *recordRepository) QueryUnsynced(ctx context.Context, userID string, dataType models.DataType, limit int) ([]models.SyncableRecord, error) {
	query, args, err := buildQueryUnsynced(userID, dataType, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, r.DB, "recordRepository.QueryUnsynced", userID, query, args)
}

// CountUnsynced implements [RecordStore].
func (r *recordRepository) CountUnsynced(ctx context.Context, userID string, dataType models.DataType) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountUnsynced(userID, dataType)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "recordRepository.CountUnsynced").
			Str("user_id", userID).
			Str("data_type", dataType.String()).
			Msg("failed to count unsynced records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// UpsertFromRemote implements [RecordStore].
func (r *recordRepository) UpsertFromRemote(ctx context.Context, userID string, remote models.RemoteRecord, dataType models.DataType, roundID string) (models.SyncableRecord, error) {
	log := logger.FromContext(ctx)

	remoteID, err := remote.ID()
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrInvalidRemoteRecord, err)
	}
	creationTime, err := remote.CreationTime()
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrInvalidRemoteRecord, err)
	}
	modificationTime, err := remote.ModificationTime()
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrInvalidRemoteRecord, err)
	}

	var stored models.SyncableRecord
	err = r.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, buildErr := buildFindByRemoteID(userID, dataType, remoteID)
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		existing, scanErr := scanRecord(tx.QueryRowContext(ctx, query, args...))
		found := true
		switch {
		case errors.Is(scanErr, sql.ErrNoRows):
			found = false
		case scanErr != nil:
			log.Err(scanErr).
				Str("func", "recordRepository.UpsertFromRemote").
				Str("user_id", userID).
				Str("remote_id", remoteID).
				Msg("failed to look up record by remote id")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}

		rec := existing
		if found {
			rec.Revision++
		} else {
			rec = models.SyncableRecord{
				RemoteID:     &remoteID,
				UserID:       userID,
				DataType:     dataType,
				Payload:      models.Payload{},
				CreationTime: r.now(),
			}
		}

		if remote.IsDeletionMarker() {
			rec.MarkedForDeletion = true
		} else {
			rec.Payload = remote.Payload()
		}
		if creationTime != nil {
			rec.CreationTime = creationTime.UTC()
		}
		if modificationTime != nil {
			t := modificationTime.UTC()
			rec.ModificationTime = &t
		}
		round := roundID
		rec.LastSyncID = &round

		if found {
			query, args, buildErr = buildApplyRemote(rec)
			if buildErr != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			}
			if _, execErr := r.exec(ctx, tx, "recordRepository.UpsertFromRemote", query, args); execErr != nil {
				return execErr
			}
			stored = rec
			return nil
		}

		query, args, buildErr = buildInsertRecord(rec)
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "recordRepository.UpsertFromRemote").
				Str("user_id", userID).
				Str("remote_id", remoteID).
				Msg("failed to insert downloaded record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		localID, idErr := res.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, idErr)
		}
		rec.LocalID = localID
		stored = rec
		return nil
	})
	if err != nil {
		return models.SyncableRecord{}, err
	}

	return stored, nil
}

// AssignRemoteIDs implements [RecordStore].
func (r *recordRepository) AssignRemoteIDs(ctx context.Context, records []models.SyncableRecord, identifiers []*string) error {
	if len(records) != len(identifiers) {
		logger.FromContext(ctx).Error().
			Str("func", "recordRepository.AssignRemoteIDs").
			Int("records", len(records)).
			Int("identifiers", len(identifiers)).
			Msg("identifier count mismatch")
		return fmt.Errorf("%w: %d records, %d identifiers", ErrLengthMismatch, len(records), len(identifiers))
	}
	if len(records) == 0 {
		return nil
	}

	return r.WithTx(ctx, func(tx *sql.Tx) error {
		for i, rec := range records {
			if identifiers[i] == nil {
				continue
			}

			query, args, err := buildAssignRemoteID(rec.LocalID, *identifiers[i])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = r.exec(ctx, tx, "recordRepository.AssignRemoteIDs", query, args); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkSyncedAndPurgeDeleted implements [RecordStore].
func (r *recordRepository) MarkSyncedAndPurgeDeleted(ctx context.Context, touched []models.SyncableRecord, roundID string) error {
	if len(touched) == 0 {
		return nil
	}

	return r.WithTx(ctx, func(tx *sql.Tx) error {
		for _, rec := range touched {
			var (
				query string
				args  []any
				err   error
			)
			if rec.MarkedForDeletion {
				query, args, err = buildPurgeTombstone(rec.LocalID, rec.Revision)
			} else {
				query, args, err = buildMarkSynced(rec.LocalID, rec.Revision, roundID)
			}
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			affected, err := r.exec(ctx, tx, "recordRepository.MarkSyncedAndPurgeDeleted", query, args)
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.FromContext(ctx).Debug().
					Str("func", "recordRepository.MarkSyncedAndPurgeDeleted").
					Int64("local_id", rec.LocalID).
					Int64("revision", rec.Revision).
					Msg("record changed during the round, left for the next one")
			}
		}
		return nil
	})
}

// WipeForUser implements [RecordStore].
func (r *recordRepository) WipeForUser(ctx context.Context, userID string) error {
	query, args, err := buildWipeForUser(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.WithTx(ctx, func(tx *sql.Tx) error {
		_, execErr := r.exec(ctx, tx, "recordRepository.WipeForUser", query, args)
		return execErr
	})
}

// WipeSyncedSensorData implements [RecordStore].
func (r *recordRepository) WipeSyncedSensorData(ctx context.Context, userID string) error {
	query, args, err := buildWipeSyncedSensorData(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.WithTx(ctx, func(tx *sql.Tx) error {
		deleted, execErr := r.exec(ctx, tx, "recordRepository.WipeSyncedSensorData", query, args)
		if execErr != nil {
			return execErr
		}
		logger.FromContext(ctx).Debug().
			Str("func", "recordRepository.WipeSyncedSensorData").
			Str("user_id", userID).
			Int64("deleted", deleted).
			Msg("synced sensor data removed")
		return nil
	})
}

// CreateOrUpdateLocal implements [RecordStore].
func (r *recordRepository) CreateOrUpdateLocal(ctx context.Context, userID string, dataType models.DataType, payload models.Payload, existingLocalID *int64) (models.SyncableRecord, error) {
	if !dataType.Valid() {
		return models.SyncableRecord{}, fmt.Errorf("%w: %q", ErrInvalidDataType, dataType)
	}
	if payload == nil {
		payload = models.Payload{}
	}

	now := r.now()
	var stored models.SyncableRecord

	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		if existingLocalID != nil {
			query, args, err := buildUpdateLocalPayload(userID, *existingLocalID, payload, now)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			affected, err := r.exec(ctx, tx, "recordRepository.CreateOrUpdateLocal", query, args)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: local id %d", ErrRecordNotFound, *existingLocalID)
			}

			query, args, err = buildGetLive(userID, *existingLocalID)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			stored, err = scanRecord(tx.QueryRowContext(ctx, query, args...))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			return nil
		}

		rec := models.SyncableRecord{
			UserID:           userID,
			DataType:         dataType,
			Payload:          payload,
			CreationTime:     now,
			ModificationTime: &now,
		}
		query, args, err := buildInsertRecord(rec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "recordRepository.CreateOrUpdateLocal").
				Str("user_id", userID).
				Msg("failed to insert local record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		rec.LocalID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		stored = rec
		return nil
	})
	if err != nil {
		return models.SyncableRecord{}, err
	}

	return stored, nil
}

// MarkForDeletion implements [RecordStore].
func (r *recordRepository) MarkForDeletion(ctx context.Context, userID string, localID int64) (bool, error) {
	query, args, err := buildMarkForDeletion(userID, localID, r.now())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.WithTx(ctx, func(tx *sql.Tx) error {
		var execErr error
		affected, execErr = r.exec(ctx, tx, "recordRepository.MarkForDeletion", query, args)
		return execErr
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// GetAll implements [RecordStore].
func (r *recordRepository) GetAll(ctx context.Context, userID string, dataType models.DataType) ([]models.SyncableRecord, error) {
	if dataType == models.SensorData {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRead, dataType)
	}
	if !dataType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDataType, dataType)
	}

	query, args, err := buildGetAllLive(userID, dataType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, r.DB, "recordRepository.GetAll", userID, query, args)
}

// Get implements [RecordStore].
func (r *recordRepository) Get(ctx context.Context, userID string, localID int64) (models.SyncableRecord, error) {
	query, args, err := buildGetLive(userID, localID)
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncableRecord{}, fmt.Errorf("%w: local id %d", ErrRecordNotFound, localID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.Get").
			Str("user_id", userID).
			Int64("local_id", localID).
			Msg("failed to get record")
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}
