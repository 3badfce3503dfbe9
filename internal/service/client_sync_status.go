// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync/atomic"
	"time"

	"github.com/MKhiriev/study-companion/internal/observable"
	"github.com/MKhiriev/study-companion/models"
)

// SyncStatus exposes the sync bookkeeping of the signed-in user as
// observable values for the UI.
type SyncStatus struct {
	// LastSyncDate is the time of the last finished round, nil if the user
	// never synced on this device.
	LastSyncDate *observable.Value[*time.Time]

	// ModifiedSinceLastSync is true while local edits wait for upload.
	ModifiedSinceLastSync *observable.Value[bool]

	edits atomic.Uint64
}

func NewSyncStatus() *SyncStatus {
	return &SyncStatus{
		LastSyncDate:          observable.NewValue[*time.Time](nil),
		ModifiedSinceLastSync: observable.NewValue(true),
	}
}

// Load publishes a state read from the store.
func (s *SyncStatus) Load(state models.SyncState) {
	s.LastSyncDate.Set(state.LastSyncTime)
	s.ModifiedSinceLastSync.Set(state.ModifiedSinceLastSync)
}

// editCount is the number of local edits seen so far.
func (s *SyncStatus) editCount() uint64 {
	return s.edits.Load()
}

// markSynced publishes a finished round. The modified flag is cleared only
// when nothing is pending and no edit arrived after editsAtCommit.
func (s *SyncStatus) markSynced(at time.Time, pending bool, editsAtCommit uint64) {
	s.LastSyncDate.Set(&at)
	s.ModifiedSinceLastSync.Set(pending || s.editCount() != editsAtCommit)
}

func (s *SyncStatus) markModified() {
	s.edits.Add(1)
	if !s.ModifiedSinceLastSync.Get() {
		s.ModifiedSinceLastSync.Set(true)
	}
}

func (s *SyncStatus) reset() {
	s.LastSyncDate.Set(nil)
	s.ModifiedSinceLastSync.Set(true)
}
