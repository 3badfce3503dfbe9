// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the per-user bookkeeping that survives between rounds.
type SyncState struct {
	UserID string `json:"user_id"`

	// LastSyncTime is the time of the last round that reached the finished
	// state, or nil if the user never synced on this device. A nil value
	// makes the next round download everything.
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`

	// ModifiedSinceLastSync is set by every local edit and cleared by a
	// finished round.
	ModifiedSinceLastSync bool `json:"modified_since_last_sync"`
}

// NeverSynced reports whether no round ever finished for the user.
func (s SyncState) NeverSynced() bool {
	return s.LastSyncTime == nil
}

// RoundResponse is the body returned when a new round is opened.
type RoundResponse struct {
	SyncID string `json:"sync_id"`
}

// DeltaResponse is the body returned by a fetch of one data type.
type DeltaResponse struct {
	Data []RemoteRecord `json:"data"`
}

// PushRequest is the body of an upload of one data type.
type PushRequest struct {
	DataType DataType       `json:"datatype"`
	Data     []RemoteRecord `json:"data"`
}

// PushResponse carries one identifier per submitted record, in submission
// order. Deletion markers are answered with null.
type PushResponse struct {
	Identifiers []*string `json:"identifiers"`
}

// ConfirmResponse is the body returned when a round is confirmed.
type ConfirmResponse struct {
	Success bool `json:"success"`
}
