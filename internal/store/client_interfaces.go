// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local persistence of the study-companion
// client: the record store used by the sync engine and the data service,
// and the per-user sync bookkeeping.
//
// Both are backed by an embedded SQLite database whose schema is managed by
// goose migrations (see package migrations). Every mutation runs inside a
// single local transaction.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/study-companion/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// RecordStore is the transactional repository of syncable records.
type RecordStore interface {
	// QueryUnsynced returns records of dataType whose last sync id is nil,
	// oldest first, at most limit of them (limit <= 0 means no limit).
	QueryUnsynced(ctx context.Context, userID string, dataType models.DataType, limit int) ([]models.SyncableRecord, error)

	// CountUnsynced returns the number of records of dataType whose last
	// sync id is nil.
	CountUnsynced(ctx context.Context, userID string, dataType models.DataType) (int, error)

	// UpsertFromRemote applies a downloaded record: it finds the local
	// record bound to the remote id or creates one, overwrites the payload,
	// marks it for deletion when the remote object carries only an id, and
	// sets its last sync id to roundID. Applying the same remote record
	// twice yields the same state.
	UpsertFromRemote(ctx context.Context, userID string, remote models.RemoteRecord, dataType models.DataType, roundID string) (models.SyncableRecord, error)

	// AssignRemoteIDs binds identifiers[i] to records[i] in one
	// transaction. Nil identifiers are skipped. Returns ErrLengthMismatch
	// without touching anything when the lengths differ.
	AssignRemoteIDs(ctx context.Context, records []models.SyncableRecord, identifiers []*string) error

	// MarkSyncedAndPurgeDeleted deletes every touched tombstone and sets
	// the last sync id of every other touched record, in one transaction.
	// A record whose revision moved on since it was read is left as it is
	// and goes out with the next round.
	MarkSyncedAndPurgeDeleted(ctx context.Context, touched []models.SyncableRecord, roundID string) error

	// WipeForUser deletes every record of the user.
	WipeForUser(ctx context.Context, userID string) error

	// WipeSyncedSensorData deletes sensor readings already acknowledged by
	// the server.
	WipeSyncedSensorData(ctx context.Context, userID string) error

	// CreateOrUpdateLocal stores a local edit. When existingLocalID is nil a
	// record is created, otherwise that record's payload is replaced. The
	// last sync id is cleared either way.
	CreateOrUpdateLocal(ctx context.Context, userID string, dataType models.DataType, payload models.Payload, existingLocalID *int64) (models.SyncableRecord, error)

	// MarkForDeletion turns a live record into a tombstone. It reports
	// whether a record was changed.
	MarkForDeletion(ctx context.Context, userID string, localID int64) (bool, error)

	// GetAll returns live records of dataType. Reading SensorData returns
	// ErrUnsupportedRead.
	GetAll(ctx context.Context, userID string, dataType models.DataType) ([]models.SyncableRecord, error)

	// Get returns a single live record.
	Get(ctx context.Context, userID string, localID int64) (models.SyncableRecord, error)
}

// SyncStateStore persists the per-user bookkeeping between rounds.
type SyncStateStore interface {
	// GetSyncState returns the state of the user. A user without a row has
	// never synced and counts as modified.
	GetSyncState(ctx context.Context, userID string) (models.SyncState, error)

	SetLastSuccessfulSync(ctx context.Context, userID string, at time.Time) error

	SetModifiedSinceLastSync(ctx context.Context, userID string, modified bool) error

	// ResetSyncState forgets everything known about the user.
	ResetSyncState(ctx context.Context, userID string) error
}
