// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/study-companion/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildQueryUnsynced_SQLContainsParts(t *testing.T) {
	query, args, err := buildQueryUnsynced("u-1", models.UserData, 1000)
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.Equal(t, "u-1", args[0])
	assert.Equal(t, "UserData", args[1])

	q := strings.ToLower(query)
	assert.Contains(t, q, "from records")
	assert.Contains(t, q, "user_id = ?")
	assert.Contains(t, q, "data_type = ?")
	assert.Contains(t, q, "last_sync_id is null")
	assert.Contains(t, q, "order by local_id")
	assert.Contains(t, q, "limit 1000")

	// placeholder format should be ? (SQLite)
	assert.NotContains(t, query, "$1")
}

func Test_buildQueryUnsynced_NoLimit(t *testing.T) {
	query, _, err := buildQueryUnsynced("u-1", models.SensorData, 0)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(query), "limit")
}

func Test_selectRecords_SelectsAllColumns(t *testing.T) {
	query, _, err := selectRecords().ToSql()
	require.NoError(t, err)

	for _, col := range recordColumns {
		assert.Contains(t, query, col)
	}
}

func Test_buildWipeSyncedSensorData(t *testing.T) {
	query, args, err := buildWipeSyncedSensorData("u-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "delete from records"))
	assert.Contains(t, q, "last_sync_id is not null")
	assert.Equal(t, []any{"u-1", "SensorData"}, args)
}

func Test_buildPurgeTombstone_OnlyTombstones(t *testing.T) {
	query, args, err := buildPurgeTombstone(5, 2)
	require.NoError(t, err)

	assert.Contains(t, strings.ToLower(query), "marked_for_deletion = ?")
	assert.Equal(t, []any{int64(5), true, int64(2)}, args)
}

func Test_buildMarkSynced_GuardsRevision(t *testing.T) {
	query, args, err := buildMarkSynced(7, 3, "round-1")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE records SET last_sync_id = ? WHERE local_id = ? AND revision = ?", query)
	assert.Equal(t, []any{"round-1", int64(7), int64(3)}, args)
}

func Test_buildMarkForDeletion_ClearsLastSyncID(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildMarkForDeletion("u-1", 3, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "set marked_for_deletion = ?, modification_time = ?, last_sync_id = ?, revision = revision + 1")
	require.Len(t, args, 6)
	assert.Equal(t, true, args[0])
	assert.Equal(t, now, args[1])
	assert.Nil(t, args[2])
}

func Test_buildUpsertLastSync_OnConflict(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildUpsertLastSync("u-1", at)
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT(user_id) DO UPDATE SET last_sync_time = excluded.last_sync_time")
	assert.Equal(t, []any{"u-1", at}, args)
}
