// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/study-companion/internal/adapter"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/store"
	"github.com/MKhiriev/study-companion/models"
)

// step is the work done in one state. It runs on its own goroutine and
// must not touch the session; everything it needs is captured when the
// worker builds it. post delivers intermediate updates to the worker.
type step func(ctx context.Context, post func(transition)) transition

func failed(err error) transition {
	return transition{err: err}
}

// stepFor is the dispatch table of the state machine.
func (o *syncOrchestrator) stepFor(s *SyncSession) step {
	switch s.State {
	case StateStarted:
		return o.beginRoundStep(s.UserID)
	case StateRoundIDReceived:
		return o.downloadPhase(s.RoundID, models.UserData, s.DownloadAll)
	case StateDownloadedUserData:
		return o.storePhase(s.UserID, s.RoundID, models.UserData, s.fetched)
	case StateStoredUserData:
		return o.downloadPhase(s.RoundID, models.LabData, s.DownloadAll)
	case StateDownloadedLabData:
		return o.storePhase(s.UserID, s.RoundID, models.LabData, s.fetched)
	case StateStoredLabData:
		return o.uploadPhase(s.UserID, s.RoundID, models.UserData, true)
	case StateUploadedUserData:
		return o.storeKeysPhase(models.UserData, s.batch, s.identifiers)
	case StateKeysStoredUserData:
		return o.uploadPhase(s.UserID, s.RoundID, models.SensorData, false)
	case StateUploadedSensorData:
		return o.storeKeysPhase(models.SensorData, s.batch, s.identifiers)
	case StateKeysStoredSensorData:
		return o.confirmStep(s.RoundID)
	case StateConfirmed:
		return o.commitStep(s.UserID, s.RoundID, slices.Clone(s.Touched))
	}
	return nil
}

func (o *syncOrchestrator) beginRoundStep(userID string) step {
	return func(ctx context.Context, _ func(transition)) transition {
		state, err := o.syncState.GetSyncState(ctx, userID)
		if err != nil {
			return failed(fmt.Errorf("read sync state: %w", err))
		}

		roundID, err := o.gateway.BeginRound(ctx)
		if err != nil {
			return failed(fmt.Errorf("begin round: %w", err))
		}

		downloadAll := state.NeverSynced()
		return transition{
			next: StateRoundIDReceived,
			apply: func(s *SyncSession) {
				s.RoundID = roundID
				s.DownloadAll = downloadAll
			},
		}
	}
}

func (o *syncOrchestrator) downloadPhase(roundID string, dataType models.DataType, all bool) step {
	return func(ctx context.Context, _ func(transition)) transition {
		remote, err := o.gateway.FetchDelta(ctx, roundID, dataType, all)
		if err != nil {
			return failed(fmt.Errorf("fetch %s delta: %w", dataType, err))
		}

		return transition{
			next: statesByDataType[dataType].downloaded,
			apply: func(s *SyncSession) {
				s.fetched = remote
			},
		}
	}
}

func (o *syncOrchestrator) storePhase(userID, roundID string, dataType models.DataType, remote []models.RemoteRecord) step {
	return func(ctx context.Context, _ func(transition)) transition {
		stored := make([]models.SyncableRecord, 0, len(remote))
		for _, r := range remote {
			if err := ctx.Err(); err != nil {
				return failed(err)
			}

			rec, err := o.records.UpsertFromRemote(ctx, userID, r, dataType, roundID)
			if errors.Is(err, store.ErrInvalidRemoteRecord) {
				return failed(fmt.Errorf("%w: store %s: %w", adapter.ErrInvalidResponse, dataType, err))
			}
			if err != nil {
				return failed(fmt.Errorf("store %s: %w", dataType, err))
			}
			stored = append(stored, rec)
		}

		return transition{
			next: statesByDataType[dataType].stored,
			apply: func(s *SyncSession) {
				s.fetched = nil
				s.Touched = append(s.Touched, stored...)
				s.Downloaded += len(stored)
			},
		}
	}
}

// uploadPhase pushes the unsynced records of dataType. With announce set it
// first counts everything waiting for upload and reports it through
// OnStartedUploading.
func (o *syncOrchestrator) uploadPhase(userID, roundID string, dataType models.DataType, announce bool) step {
	return func(ctx context.Context, post func(transition)) transition {
		if announce {
			pending, err := o.countPending(ctx, userID)
			if err != nil {
				return failed(err)
			}
			post(transition{apply: func(s *SyncSession) {
				s.PendingUpload = pending
				s.Listener.OnStartedUploading(pending)
			}})
		}

		unsynced, err := o.records.QueryUnsynced(ctx, userID, dataType, o.cfg.UploadLimit)
		if err != nil {
			return failed(fmt.Errorf("query unsynced %s: %w", dataType, err))
		}

		batch, wire, skipped := buildUploadBatch(unsynced)

		identifiers, err := o.gateway.PushDelta(ctx, roundID, dataType, wire)
		if err != nil {
			return failed(fmt.Errorf("push %s delta: %w", dataType, err))
		}
		if err = checkIdentifiers(batch, identifiers); err != nil {
			return failed(fmt.Errorf("%w: push %s delta: %w", adapter.ErrInvalidResponse, dataType, err))
		}

		logger.FromContext(ctx).Debug().
			Str("func", "syncOrchestrator.uploadPhase").
			Str("data_type", dataType.String()).
			Int("sent", len(batch)).
			Int("dropped_tombstones", len(skipped)).
			Msg("delta pushed")

		return transition{
			next: statesByDataType[dataType].uploaded,
			apply: func(s *SyncSession) {
				s.Touched = append(s.Touched, skipped...)
				s.Touched = append(s.Touched, batch...)
				s.Uploaded += len(batch)
				s.batch = batch
				s.identifiers = identifiers
			},
		}
	}
}

func (o *syncOrchestrator) countPending(ctx context.Context, userID string) (int, error) {
	userData, err := o.records.CountUnsynced(ctx, userID, models.UserData)
	if err != nil {
		return 0, fmt.Errorf("count unsynced %s: %w", models.UserData, err)
	}
	sensorData, err := o.records.CountUnsynced(ctx, userID, models.SensorData)
	if err != nil {
		return 0, fmt.Errorf("count unsynced %s: %w", models.SensorData, err)
	}
	return userData + sensorData, nil
}

// buildUploadBatch splits unsynced records into the records that are sent
// (with their wire form, in the same order) and tombstones the server never
// saw, which are only purged locally.
func buildUploadBatch(unsynced []models.SyncableRecord) (batch []models.SyncableRecord, wire []models.RemoteRecord, skipped []models.SyncableRecord) {
	batch = make([]models.SyncableRecord, 0, len(unsynced))
	wire = make([]models.RemoteRecord, 0, len(unsynced))
	for _, rec := range unsynced {
		remote, send := models.ToRemoteRecord(rec)
		if !send {
			skipped = append(skipped, rec)
			continue
		}
		batch = append(batch, rec)
		wire = append(wire, remote)
	}
	return batch, wire, skipped
}

// checkIdentifiers requires one identifier per submitted record and a
// non-nil identifier for every live record.
func checkIdentifiers(batch []models.SyncableRecord, identifiers []*string) error {
	if len(identifiers) != len(batch) {
		return fmt.Errorf("%w: sent %d, received %d", ErrIdentifierMismatch, len(batch), len(identifiers))
	}
	for i, rec := range batch {
		if !rec.MarkedForDeletion && identifiers[i] == nil {
			return fmt.Errorf("%w: local id %d", ErrMissingIdentifier, rec.LocalID)
		}
	}
	return nil
}

func (o *syncOrchestrator) storeKeysPhase(dataType models.DataType, batch []models.SyncableRecord, identifiers []*string) step {
	return func(ctx context.Context, _ func(transition)) transition {
		if len(batch) > 0 {
			if err := o.records.AssignRemoteIDs(ctx, batch, identifiers); err != nil {
				return failed(fmt.Errorf("assign %s remote ids: %w", dataType, err))
			}
		}

		return transition{
			next: statesByDataType[dataType].keysStored,
			apply: func(s *SyncSession) {
				s.batch = nil
				s.identifiers = nil
			},
		}
	}
}

func (o *syncOrchestrator) confirmStep(roundID string) step {
	return func(ctx context.Context, _ func(transition)) transition {
		ok, err := o.gateway.ConfirmRound(ctx, roundID)
		if err != nil {
			return failed(fmt.Errorf("confirm round: %w", err))
		}
		if !ok {
			return failed(ErrRoundNotConfirmed)
		}
		return transition{next: StateConfirmed}
	}
}

// commitStep finalises the local bookkeeping of a confirmed round. It is not
// cancellable. Only the record commit can fail the round; failures of the
// sync state writes are logged and ignored.
//
// Records edited while the round ran are left unsynced by the commit, so the
// modified flag is cleared only if nothing is pending afterwards.
func (o *syncOrchestrator) commitStep(userID, roundID string, touched []models.SyncableRecord) step {
	return func(ctx context.Context, _ func(transition)) transition {
		ctx = context.WithoutCancel(ctx)
		editsAtCommit := o.status.editCount()

		if err := o.records.MarkSyncedAndPurgeDeleted(ctx, touched, roundID); err != nil {
			return failed(fmt.Errorf("commit touched records: %w", err))
		}

		log := logger.FromContext(ctx)
		finishedAt := o.now()
		if err := o.syncState.SetLastSuccessfulSync(ctx, userID, finishedAt); err != nil {
			log.Warn().Err(err).
				Str("func", "syncOrchestrator.commitStep").
				Msg("failed to persist last sync time")
		}

		remaining, err := o.countPending(ctx, userID)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "syncOrchestrator.commitStep").
				Msg("failed to count records left after commit")
		}
		pending := err != nil || remaining > 0 || o.status.editCount() != editsAtCommit
		if err = o.syncState.SetModifiedSinceLastSync(ctx, userID, pending); err != nil {
			log.Warn().Err(err).
				Str("func", "syncOrchestrator.commitStep").
				Bool("modified", pending).
				Msg("failed to persist modified flag")
		}
		if o.cfg.WipeSyncedSensorData {
			if err := o.records.WipeSyncedSensorData(ctx, userID); err != nil {
				log.Warn().Err(err).
					Str("func", "syncOrchestrator.commitStep").
					Msg("failed to wipe synced sensor data")
			}
		}

		return transition{
			next: StateFinished,
			apply: func(s *SyncSession) {
				s.finishedAt = finishedAt
				s.pendingAfterCommit = pending
				s.editsAtCommit = editsAtCommit
			},
		}
	}
}
