// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client business logic: the sync orchestrator
// that drives one round at a time against the remote gateway, the periodic
// sync job, the authentication of the bearer token and the data service
// used by the rest of the application to edit local records.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/study-companion/models"
)

// ClientSyncService runs sync rounds. At most one round is active at a time.
type ClientSyncService interface {
	// Start begins a round for session and returns immediately; progress and
	// the outcome are reported to listener from the orchestrator's worker.
	//
	// While a round is active Start calls listener.OnSynchronizationError
	// with ErrSyncInProgress before returning it. A session whose role may
	// not sync gets ErrPermission and nothing else happens.
	Start(ctx context.Context, session models.Session, listener SyncListener) error

	// Cancel aborts the active round, if any. Safe to call from any
	// goroutine. A round the server already confirmed still commits and
	// finishes.
	Cancel()

	// IsSyncInProgress reports whether a round is active.
	IsSyncInProgress() bool

	// State returns the state of the active round, or StateIdle.
	State() State

	// Wait blocks until the worker of the most recent round has exited.
	Wait()

	// LastResult returns the outcome of the most recently finished round.
	LastResult() SyncResult
}

// ClientAuthService turns a bearer token into an authenticated session.
type ClientAuthService interface {
	// Login parses token, hands it to the remote gateway and loads the sync
	// status of the user.
	Login(ctx context.Context, token string) (models.Session, error)
}

// ClientDataService edits local records outside of a sync round. Every
// mutation marks the user as modified since the last sync.
type ClientDataService interface {
	// CreateOrUpdate stores payload as a new record when localID is nil,
	// otherwise replaces the payload of that record.
	CreateOrUpdate(ctx context.Context, session models.Session, dataType models.DataType, payload models.Payload, localID *int64) (models.SyncableRecord, error)

	// Get returns a live record.
	Get(ctx context.Context, session models.Session, localID int64) (models.SyncableRecord, error)

	// GetAll returns the live records of dataType. SensorData cannot be
	// read back.
	GetAll(ctx context.Context, session models.Session, dataType models.DataType) ([]models.SyncableRecord, error)

	// Delete turns a record into a tombstone that is removed after the next
	// confirmed round. It reports whether a record was changed.
	Delete(ctx context.Context, session models.Session, localID int64) (bool, error)

	// WipeForUser removes every local record and the sync bookkeeping of the
	// user.
	WipeForUser(ctx context.Context, session models.Session) error
}

// ClientSyncJob defines the contract for a background worker that
// periodically starts a sync round for the authenticated user.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative, and reports
	// the rounds it starts to listener. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context, session models.Session, interval time.Duration, listener SyncListener)

	// Stop signals the background goroutine to exit, cancels a round it
	// started and blocks until both have terminated.
	Stop()
}
