// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/study-companion/internal/config"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Эти тесты работают с настоящей SQLite базой во временной директории.

func newSQLiteStorages(t *testing.T) *ClientStorages {
	t.Helper()

	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "records.db")}}
	s, err := NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func countRows(t *testing.T, s *ClientStorages, userID string) int {
	t.Helper()
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM records WHERE user_id = ?", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// ── local edits ──────────────────────────────────────────────────────────────

func TestSQLite_CreateLocal_IsUnsynced(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"mood": "good"}, nil)
	require.NoError(t, err)
	assert.NotZero(t, rec.LocalID)
	assert.False(t, rec.Synced())

	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	unsynced, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.UserData, 10)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, "good", unsynced[0].Payload["mood"])
}

func TestSQLite_UpdateLocal_ClearsLastSyncID(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"v": 1.0}, nil)
	require.NoError(t, err)
	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, []models.SyncableRecord{rec}, "round-1"))

	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	updated, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"v": 2.0}, &rec.LocalID)
	require.NoError(t, err)
	assert.Nil(t, updated.LastSyncID)
	assert.Equal(t, 2.0, updated.Payload["v"])

	n, err = s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLite_UpdateLocal_OtherUser(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, nil, nil)
	require.NoError(t, err)

	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-2", models.UserData, nil, &rec.LocalID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// ── deletion ─────────────────────────────────────────────────────────────────

func TestSQLite_Tombstone_KeptUntilConfirmed(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.LabData, models.Payload{"hb": 13.5}, nil)
	require.NoError(t, err)
	require.NoError(t, s.RecordStore.AssignRemoteIDs(ctx, []models.SyncableRecord{rec}, []*string{strPtr("r-1")}))
	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, []models.SyncableRecord{rec}, "round-1"))

	ok, err := s.RecordStore.MarkForDeletion(ctx, "u-1", rec.LocalID)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second delete is a no-op
	ok, err = s.RecordStore.MarkForDeletion(ctx, "u-1", rec.LocalID)
	require.NoError(t, err)
	assert.False(t, ok)

	live, err := s.RecordStore.GetAll(ctx, "u-1", models.LabData)
	require.NoError(t, err)
	assert.Empty(t, live)

	// the tombstone is still physically present and waiting for upload
	assert.Equal(t, 1, countRows(t, s, "u-1"))
	unsynced, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.LabData, 0)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.True(t, unsynced[0].MarkedForDeletion)

	wire, send := models.ToRemoteRecord(unsynced[0])
	require.True(t, send)
	assert.Equal(t, models.RemoteRecord{"id": "r-1"}, wire)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, unsynced, "round-2"))
	assert.Equal(t, 0, countRows(t, s, "u-1"))
}

// ── commit of a round with concurrent edits ─────────────────────────────────

func TestSQLite_Commit_KeepsEditMadeAfterSnapshot(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"v": 1.0}, nil)
	require.NoError(t, err)

	snapshot, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.UserData, 10)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	require.NoError(t, s.RecordStore.AssignRemoteIDs(ctx, snapshot, []*string{strPtr("r-1")}))

	// пользователь правит запись, пока раунд ещё не подтверждён
	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"v": 2.0}, &rec.LocalID)
	require.NoError(t, err)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, snapshot, "round-1"))

	unsynced, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.UserData, 10)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, 2.0, unsynced[0].Payload["v"])
	require.NotNil(t, unsynced[0].RemoteID)
	assert.Equal(t, "r-1", *unsynced[0].RemoteID)

	// следующий раунд отправляет правку и фиксирует её
	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, unsynced, "round-2"))
	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLite_Commit_KeepsDeleteMadeAfterSnapshot(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	rec, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.LabData, models.Payload{"hb": 13.5}, nil)
	require.NoError(t, err)

	snapshot, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.LabData, 10)
	require.NoError(t, err)
	require.NoError(t, s.RecordStore.AssignRemoteIDs(ctx, snapshot, []*string{strPtr("r-1")}))

	ok, err := s.RecordStore.MarkForDeletion(ctx, "u-1", rec.LocalID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, snapshot, "round-1"))

	// надгробие ждёт отправки как маркер удаления
	unsynced, err := s.RecordStore.QueryUnsynced(ctx, "u-1", models.LabData, 10)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.True(t, unsynced[0].MarkedForDeletion)

	wire, send := models.ToRemoteRecord(unsynced[0])
	require.True(t, send)
	assert.Equal(t, models.RemoteRecord{"id": "r-1"}, wire)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, unsynced, "round-2"))
	assert.Equal(t, 0, countRows(t, s, "u-1"))
}

func TestSQLite_Commit_KeepsEditOfDownloadedRecord(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	downloaded, err := s.RecordStore.UpsertFromRemote(ctx, "u-1", models.RemoteRecord{"id": "r-5", "v": "server"}, models.UserData, "round-1")
	require.NoError(t, err)

	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, models.Payload{"v": "local"}, &downloaded.LocalID)
	require.NoError(t, err)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, []models.SyncableRecord{downloaded}, "round-1"))

	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ── remote apply ─────────────────────────────────────────────────────────────

func TestSQLite_UpsertFromRemote_Idempotent(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	remote := models.RemoteRecord{
		"id":                "r-7",
		"answer":            "yes",
		"creation_time":     "2024-05-01T10:00:00.000Z",
		"modification_time": "2024-05-01T11:00:00.000Z",
	}

	first, err := s.RecordStore.UpsertFromRemote(ctx, "u-1", remote, models.UserData, "round-1")
	require.NoError(t, err)
	second, err := s.RecordStore.UpsertFromRemote(ctx, "u-1", remote, models.UserData, "round-1")
	require.NoError(t, err)
	assert.Equal(t, first.LocalID, second.LocalID)

	all, err := s.RecordStore.GetAll(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.Payload{"answer": "yes"}, all[0].Payload)
	require.NotNil(t, all[0].LastSyncID)
	assert.Equal(t, "round-1", *all[0].LastSyncID)
	assert.True(t, all[0].CreationTime.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLite_UpsertFromRemote_DeletionMarker(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.RecordStore.UpsertFromRemote(ctx, "u-1", models.RemoteRecord{"id": "r-3", "v": "x"}, models.UserData, "round-1")
	require.NoError(t, err)

	marked, err := s.RecordStore.UpsertFromRemote(ctx, "u-1", models.RemoteRecord{"id": "r-3"}, models.UserData, "round-2")
	require.NoError(t, err)
	assert.True(t, marked.MarkedForDeletion)
	assert.Equal(t, "x", marked.Payload["v"])

	live, err := s.RecordStore.GetAll(ctx, "u-1", models.UserData)
	require.NoError(t, err)
	assert.Empty(t, live)

	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, []models.SyncableRecord{marked}, "round-2"))
	assert.Equal(t, 0, countRows(t, s, "u-1"))
}

func TestSQLite_AssignRemoteIDs_DuplicateRollsBack(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	a, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, nil, nil)
	require.NoError(t, err)
	b, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, nil, nil)
	require.NoError(t, err)

	err = s.RecordStore.AssignRemoteIDs(ctx, []models.SyncableRecord{a, b}, []*string{strPtr("dup"), strPtr("dup")})
	assert.ErrorIs(t, err, ErrDuplicateRemoteID)

	got, err := s.RecordStore.Get(ctx, "u-1", a.LocalID)
	require.NoError(t, err)
	assert.Nil(t, got.RemoteID)
}

// ── wipes ────────────────────────────────────────────────────────────────────

func TestSQLite_WipeSyncedSensorData(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	synced, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.SensorData, models.Payload{"steps": 100.0}, nil)
	require.NoError(t, err)
	require.NoError(t, s.RecordStore.MarkSyncedAndPurgeDeleted(ctx, []models.SyncableRecord{synced}, "round-1"))

	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.SensorData, models.Payload{"steps": 50.0}, nil)
	require.NoError(t, err)
	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.RecordStore.WipeSyncedSensorData(ctx, "u-1"))

	assert.Equal(t, 2, countRows(t, s, "u-1"))
	n, err := s.RecordStore.CountUnsynced(ctx, "u-1", models.SensorData)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.RecordStore.GetAll(ctx, "u-1", models.SensorData)
	assert.ErrorIs(t, err, ErrUnsupportedRead)
}

func TestSQLite_WipeForUser(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.RecordStore.CreateOrUpdateLocal(ctx, "u-1", models.UserData, nil, nil)
	require.NoError(t, err)
	_, err = s.RecordStore.CreateOrUpdateLocal(ctx, "u-2", models.UserData, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.RecordStore.WipeForUser(ctx, "u-1"))

	assert.Equal(t, 0, countRows(t, s, "u-1"))
	assert.Equal(t, 1, countRows(t, s, "u-2"))
}

// ── sync state ───────────────────────────────────────────────────────────────

func TestSQLite_SyncState(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	state, err := s.SyncStateStore.GetSyncState(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, state.NeverSynced())
	assert.True(t, state.ModifiedSinceLastSync)

	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.SyncStateStore.SetLastSuccessfulSync(ctx, "u-1", at))
	require.NoError(t, s.SyncStateStore.SetModifiedSinceLastSync(ctx, "u-1", false))

	state, err = s.SyncStateStore.GetSyncState(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, state.LastSyncTime)
	assert.True(t, state.LastSyncTime.Equal(at))
	assert.False(t, state.ModifiedSinceLastSync)

	require.NoError(t, s.SyncStateStore.ResetSyncState(ctx, "u-1"))
	state, err = s.SyncStateStore.GetSyncState(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, state.NeverSynced())
}
