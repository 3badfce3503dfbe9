// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/study-companion/models"
)

const (
	recordsTable   = "records"
	syncStateTable = "sync_state"
)

var recordColumns = []string{
	"local_id",
	"remote_id",
	"user_id",
	"data_type",
	"payload",
	"last_sync_id",
	"marked_for_deletion",
	"creation_time",
	"modification_time",
	"revision",
}

// builder renders queries with "?" placeholders as expected by go-sqlite3.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func selectRecords() sq.SelectBuilder {
	return builder.Select(recordColumns...).From(recordsTable)
}

func buildQueryUnsynced(userID string, dataType models.DataType, limit int) (string, []any, error) {
	q := selectRecords().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"data_type": string(dataType)}).
		Where(sq.Eq{"last_sync_id": nil}).
		OrderBy("local_id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q.ToSql()
}

func buildCountUnsynced(userID string, dataType models.DataType) (string, []any, error) {
	return builder.Select("COUNT(*)").From(recordsTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"data_type": string(dataType)}).
		Where(sq.Eq{"last_sync_id": nil}).
		ToSql()
}

func buildFindByRemoteID(userID string, dataType models.DataType, remoteID string) (string, []any, error) {
	return selectRecords().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"data_type": string(dataType)}).
		Where(sq.Eq{"remote_id": remoteID}).
		ToSql()
}

func buildGetLive(userID string, localID int64) (string, []any, error) {
	return selectRecords().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"marked_for_deletion": false}).
		ToSql()
}

func buildGetAllLive(userID string, dataType models.DataType) (string, []any, error) {
	return selectRecords().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"data_type": string(dataType)}).
		Where(sq.Eq{"marked_for_deletion": false}).
		OrderBy("local_id").
		ToSql()
}

func buildInsertRecord(rec models.SyncableRecord) (string, []any, error) {
	return builder.Insert(recordsTable).
		Columns(
			"remote_id",
			"user_id",
			"data_type",
			"payload",
			"last_sync_id",
			"marked_for_deletion",
			"creation_time",
			"modification_time",
			"revision",
		).
		Values(
			rec.RemoteID,
			rec.UserID,
			string(rec.DataType),
			rec.Payload,
			rec.LastSyncID,
			rec.MarkedForDeletion,
			rec.CreationTime,
			rec.ModificationTime,
			rec.Revision,
		).
		ToSql()
}

func buildApplyRemote(rec models.SyncableRecord) (string, []any, error) {
	return builder.Update(recordsTable).
		Set("payload", rec.Payload).
		Set("last_sync_id", rec.LastSyncID).
		Set("marked_for_deletion", rec.MarkedForDeletion).
		Set("creation_time", rec.CreationTime).
		Set("modification_time", rec.ModificationTime).
		Set("revision", rec.Revision).
		Where(sq.Eq{"local_id": rec.LocalID}).
		ToSql()
}

func buildUpdateLocalPayload(userID string, localID int64, payload models.Payload, now time.Time) (string, []any, error) {
	return builder.Update(recordsTable).
		Set("payload", payload).
		Set("modification_time", now).
		Set("last_sync_id", nil).
		Set("revision", sq.Expr("revision + 1")).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"marked_for_deletion": false}).
		ToSql()
}

func buildMarkForDeletion(userID string, localID int64, now time.Time) (string, []any, error) {
	return builder.Update(recordsTable).
		Set("marked_for_deletion", true).
		Set("modification_time", now).
		Set("last_sync_id", nil).
		Set("revision", sq.Expr("revision + 1")).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"marked_for_deletion": false}).
		ToSql()
}

func buildAssignRemoteID(localID int64, remoteID string) (string, []any, error) {
	return builder.Update(recordsTable).
		Set("remote_id", remoteID).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
}

// buildMarkSynced matches only the revision that was sent, so a record
// changed during the round stays unsynced.
func buildMarkSynced(localID, revision int64, roundID string) (string, []any, error) {
	return builder.Update(recordsTable).
		Set("last_sync_id", roundID).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"revision": revision}).
		ToSql()
}

func buildPurgeTombstone(localID, revision int64) (string, []any, error) {
	return builder.Delete(recordsTable).
		Where(sq.Eq{"local_id": localID}).
		Where(sq.Eq{"marked_for_deletion": true}).
		Where(sq.Eq{"revision": revision}).
		ToSql()
}

func buildWipeForUser(userID string) (string, []any, error) {
	return builder.Delete(recordsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildWipeSyncedSensorData(userID string) (string, []any, error) {
	return builder.Delete(recordsTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"data_type": string(models.SensorData)}).
		Where(sq.NotEq{"last_sync_id": nil}).
		ToSql()
}

func buildGetSyncState(userID string) (string, []any, error) {
	return builder.Select("last_sync_time", "modified_since_last_sync").
		From(syncStateTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertLastSync(userID string, at time.Time) (string, []any, error) {
	return builder.Insert(syncStateTable).
		Columns("user_id", "last_sync_time").
		Values(userID, at).
		Suffix("ON CONFLICT(user_id) DO UPDATE SET last_sync_time = excluded.last_sync_time").
		ToSql()
}

func buildUpsertModified(userID string, modified bool) (string, []any, error) {
	return builder.Insert(syncStateTable).
		Columns("user_id", "modified_since_last_sync").
		Values(userID, modified).
		Suffix("ON CONFLICT(user_id) DO UPDATE SET modified_since_last_sync = excluded.modified_since_last_sync").
		ToSql()
}

func buildDeleteSyncState(userID string) (string, []any, error) {
	return builder.Delete(syncStateTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}
