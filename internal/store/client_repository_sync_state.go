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

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateRepository constructs a [SyncStateStore] backed by db.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateStore {
	return &syncStateRepository{DB: db, logger: logger}
}

// GetSyncState implements [SyncStateStore].
func (s *syncStateRepository) GetSyncState(ctx context.Context, userID string) (models.SyncState, error) {
	query, args, err := buildGetSyncState(userID)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		lastSync sql.NullTime
		modified bool
	)
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&lastSync, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{UserID: userID, ModifiedSinceLastSync: true}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.GetSyncState").
			Str("user_id", userID).
			Msg("failed to read sync state")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	state := models.SyncState{UserID: userID, ModifiedSinceLastSync: modified}
	if lastSync.Valid {
		t := lastSync.Time
		state.LastSyncTime = &t
	}
	return state, nil
}

// SetLastSuccessfulSync implements [SyncStateStore].
func (s *syncStateRepository) SetLastSuccessfulSync(ctx context.Context, userID string, at time.Time) error {
	query, args, err := buildUpsertLastSync(userID, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.execInTx(ctx, "syncStateRepository.SetLastSuccessfulSync", userID, query, args)
}

// SetModifiedSinceLastSync implements [SyncStateStore].
func (s *syncStateRepository) SetModifiedSinceLastSync(ctx context.Context, userID string, modified bool) error {
	query, args, err := buildUpsertModified(userID, modified)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.execInTx(ctx, "syncStateRepository.SetModifiedSinceLastSync", userID, query, args)
}

// ResetSyncState implements [SyncStateStore].
func (s *syncStateRepository) ResetSyncState(ctx context.Context, userID string) error {
	query, args, err := buildDeleteSyncState(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.execInTx(ctx, "syncStateRepository.ResetSyncState", userID, query, args)
}

func (s *syncStateRepository) execInTx(ctx context.Context, funcName, userID, query string, args []any) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", funcName).
				Str("user_id", userID).
				Msg("failed to update sync state")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}
