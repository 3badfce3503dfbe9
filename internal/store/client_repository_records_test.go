// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRecordRepo(t *testing.T) (*recordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &recordRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows(recordColumns)
}

func strPtr(s string) *string { return &s }

// ── QueryUnsynced ────────────────────────────────────────────────────────────

func TestQueryUnsynced_Success(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	rows := recordRows().
		AddRow(int64(1), nil, "u-1", "UserData", `{"answer":"yes"}`, nil, false, fixedNow, nil, int64(0)).
		AddRow(int64(2), "r-2", "u-1", "UserData", `{"answer":"no"}`, nil, true, fixedNow, fixedNow, int64(3))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT local_id, remote_id, user_id, data_type, payload, last_sync_id, marked_for_deletion, creation_time, modification_time, revision FROM records WHERE user_id = ? AND data_type = ? AND last_sync_id IS NULL ORDER BY local_id LIMIT 1000")).
		WithArgs("u-1", "UserData").
		WillReturnRows(rows)

	got, err := repo.QueryUnsynced(context.Background(), "u-1", models.UserData, 1000)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].LocalID)
	assert.Nil(t, got[0].RemoteID)
	assert.Nil(t, got[0].ModificationTime)
	assert.Equal(t, models.Payload{"answer": "yes"}, got[0].Payload)
	assert.Equal(t, models.UserData, got[0].DataType)

	require.NotNil(t, got[1].RemoteID)
	assert.Equal(t, "r-2", *got[1].RemoteID)
	assert.True(t, got[1].MarkedForDeletion)
	require.NotNil(t, got[1].ModificationTime)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryUnsynced_QueryError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM records").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.QueryUnsynced(context.Background(), "u-1", models.UserData, 10)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestQueryUnsynced_ScanError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	rows := recordRows().
		AddRow(int64(1), nil, "u-1", "UserData", 42, nil, false, fixedNow, nil, int64(0))
	mock.ExpectQuery("SELECT (.+) FROM records").WillReturnRows(rows)

	_, err := repo.QueryUnsynced(context.Background(), "u-1", models.UserData, 10)
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── CountUnsynced ────────────────────────────────────────────────────────────

func TestCountUnsynced(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM records WHERE user_id = ? AND data_type = ? AND last_sync_id IS NULL")).
		WithArgs("u-1", "SensorData").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountUnsynced(context.Background(), "u-1", models.SensorData)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

// ── AssignRemoteIDs ──────────────────────────────────────────────────────────

func TestAssignRemoteIDs_LengthMismatch(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	records := []models.SyncableRecord{{LocalID: 1}, {LocalID: 2}, {LocalID: 3}}
	err := repo.AssignRemoteIDs(context.Background(), records, []*string{strPtr("a"), strPtr("b")})

	assert.ErrorIs(t, err, ErrLengthMismatch)
	// nothing must reach the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRemoteIDs_SkipsNilIdentifiers(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET remote_id = ? WHERE local_id = ?")).
		WithArgs("r-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET remote_id = ? WHERE local_id = ?")).
		WithArgs("r-3", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	records := []models.SyncableRecord{
		{LocalID: 1},
		{LocalID: 2, MarkedForDeletion: true, RemoteID: strPtr("old")},
		{LocalID: 3},
	}
	err := repo.AssignRemoteIDs(context.Background(), records, []*string{strPtr("r-1"), nil, strPtr("r-3")})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRemoteIDs_ExecErrorRollsBack(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET remote_id").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.AssignRemoteIDs(context.Background(), []models.SyncableRecord{{LocalID: 1}}, []*string{strPtr("r-1")})

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignRemoteIDs_BeginError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	err := repo.AssignRemoteIDs(context.Background(), []models.SyncableRecord{{LocalID: 1}}, []*string{strPtr("r-1")})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestAssignRemoteIDs_CommitError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET remote_id").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := repo.AssignRemoteIDs(context.Background(), []models.SyncableRecord{{LocalID: 1}}, []*string{strPtr("r-1")})
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

// ── MarkSyncedAndPurgeDeleted ────────────────────────────────────────────────

func TestMarkSyncedAndPurgeDeleted(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET last_sync_id = ? WHERE local_id = ? AND revision = ?")).
		WithArgs("round-1", int64(1), int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records WHERE local_id = ? AND marked_for_deletion = ? AND revision = ?")).
		WithArgs(int64(2), true, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// запись изменилась во время раунда: ни одна строка не совпала
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET last_sync_id = ? WHERE local_id = ? AND revision = ?")).
		WithArgs("round-1", int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	touched := []models.SyncableRecord{
		{LocalID: 1},
		{LocalID: 2, MarkedForDeletion: true, Revision: 4},
		{LocalID: 3, Revision: 1},
	}
	require.NoError(t, repo.MarkSyncedAndPurgeDeleted(context.Background(), touched, "round-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSyncedAndPurgeDeleted_Empty(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	require.NoError(t, repo.MarkSyncedAndPurgeDeleted(context.Background(), nil, "round-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── UpsertFromRemote ─────────────────────────────────────────────────────────

func TestUpsertFromRemote_MissingID(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	_, err := repo.UpsertFromRemote(context.Background(), "u-1", models.RemoteRecord{"answer": "yes"}, models.UserData, "round-1")

	assert.ErrorIs(t, err, ErrInvalidRemoteRecord)
	assert.ErrorIs(t, err, models.ErrMissingRemoteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertFromRemote_InsertsNewRecord(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM records WHERE user_id = ? AND data_type = ? AND remote_id = ?")).
		WithArgs("u-1", "LabData", "r-9").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO records").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	rec, err := repo.UpsertFromRemote(context.Background(), "u-1",
		models.RemoteRecord{"id": "r-9", "value": 4.2}, models.LabData, "round-1")

	require.NoError(t, err)
	assert.Equal(t, int64(11), rec.LocalID)
	assert.Equal(t, "r-9", *rec.RemoteID)
	assert.Equal(t, "round-1", *rec.LastSyncID)
	assert.Equal(t, models.Payload{"value": 4.2}, rec.Payload)
	assert.Equal(t, fixedNow, rec.CreationTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertFromRemote_UpdatesExisting(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM records WHERE user_id").
		WillReturnRows(recordRows().
			AddRow(int64(4), "r-4", "u-1", "UserData", `{"answer":"old"}`, "round-0", false, fixedNow, nil, int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET payload = ?, last_sync_id = ?, marked_for_deletion = ?, creation_time = ?, modification_time = ?, revision = ? WHERE local_id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := repo.UpsertFromRemote(context.Background(), "u-1",
		models.RemoteRecord{"id": "r-4", "answer": "new", "modification_time": "2024-05-02T08:00:00.000Z"},
		models.UserData, "round-1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.LocalID)
	assert.Equal(t, int64(3), rec.Revision)
	assert.Equal(t, models.Payload{"answer": "new"}, rec.Payload)
	assert.Equal(t, "round-1", *rec.LastSyncID)
	require.NotNil(t, rec.ModificationTime)
	assert.True(t, rec.ModificationTime.Equal(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── CreateOrUpdateLocal / MarkForDeletion ────────────────────────────────────

func TestCreateOrUpdateLocal_InvalidDataType(t *testing.T) {
	repo, _ := newTestRecordRepo(t)

	_, err := repo.CreateOrUpdateLocal(context.Background(), "u-1", models.DataType("Photos"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDataType)
}

func TestCreateOrUpdateLocal_UnknownRecord(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET payload").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	id := int64(99)
	_, err := repo.CreateOrUpdateLocal(context.Background(), "u-1", models.UserData, models.Payload{"a": 1}, &id)

	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkForDeletion(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET marked_for_deletion = ?, modification_time = ?, last_sync_id = ?, revision = revision + 1 WHERE local_id = ? AND user_id = ? AND marked_for_deletion = ?")).
		WithArgs(true, fixedNow, nil, int64(3), "u-1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.MarkForDeletion(context.Background(), "u-1", 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── GetAll / Get ─────────────────────────────────────────────────────────────

func TestGetAll_SensorDataUnsupported(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	_, err := repo.GetAll(context.Background(), "u-1", models.SensorData)
	assert.ErrorIs(t, err, ErrUnsupportedRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("FROM records").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u-1", 5)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
