// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/store"
	"github.com/MKhiriev/study-companion/models"
)

type clientDataService struct {
	records   store.RecordStore
	syncState store.SyncStateStore
	status    *SyncStatus
	logger    *logger.Logger
}

func NewClientDataService(storages *store.ClientStorages, status *SyncStatus, logger *logger.Logger) ClientDataService {
	return &clientDataService{
		records:   storages.RecordStore,
		syncState: storages.SyncStateStore,
		status:    status,
		logger:    logger,
	}
}

func (d *clientDataService) CreateOrUpdate(ctx context.Context, session models.Session, dataType models.DataType, payload models.Payload, localID *int64) (models.SyncableRecord, error) {
	if err := checkDataPermission(session); err != nil {
		return models.SyncableRecord{}, err
	}

	rec, err := d.records.CreateOrUpdateLocal(ctx, session.UserID, dataType, payload, localID)
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("store local %s: %w", dataType, err)
	}

	d.markModified(ctx, session.UserID)
	return rec, nil
}

func (d *clientDataService) Get(ctx context.Context, session models.Session, localID int64) (models.SyncableRecord, error) {
	if err := checkDataPermission(session); err != nil {
		return models.SyncableRecord{}, err
	}

	rec, err := d.records.Get(ctx, session.UserID, localID)
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("get local record: %w", err)
	}
	return rec, nil
}

func (d *clientDataService) GetAll(ctx context.Context, session models.Session, dataType models.DataType) ([]models.SyncableRecord, error) {
	if err := checkDataPermission(session); err != nil {
		return nil, err
	}

	recs, err := d.records.GetAll(ctx, session.UserID, dataType)
	if err != nil {
		return nil, fmt.Errorf("get all local %s: %w", dataType, err)
	}
	return recs, nil
}

func (d *clientDataService) Delete(ctx context.Context, session models.Session, localID int64) (bool, error) {
	if err := checkDataPermission(session); err != nil {
		return false, err
	}

	changed, err := d.records.MarkForDeletion(ctx, session.UserID, localID)
	if err != nil {
		return false, fmt.Errorf("mark local record for deletion: %w", err)
	}
	if changed {
		d.markModified(ctx, session.UserID)
	}
	return changed, nil
}

func (d *clientDataService) WipeForUser(ctx context.Context, session models.Session) error {
	if err := d.records.WipeForUser(ctx, session.UserID); err != nil {
		return fmt.Errorf("wipe local records: %w", err)
	}
	if err := d.syncState.ResetSyncState(ctx, session.UserID); err != nil {
		return fmt.Errorf("reset sync state: %w", err)
	}

	d.status.reset()
	return nil
}

// markModified persists the modified flag. The edit itself is already
// stored, so a failure here is only logged.
func (d *clientDataService) markModified(ctx context.Context, userID string) {
	d.status.markModified()

	if err := d.syncState.SetModifiedSinceLastSync(ctx, userID, true); err != nil {
		d.logger.Warn().Err(err).
			Str("func", "clientDataService.markModified").
			Str("user_id", userID).
			Msg("failed to persist modified flag")
	}
}

func checkDataPermission(session models.Session) error {
	if !session.Role.CanSync() {
		return fmt.Errorf("%w: role %q has no local study data", ErrPermission, session.Role)
	}
	return nil
}
