// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrPermission is returned when the role of the session may not sync
	// or touch local study data.
	ErrPermission = errors.New("permission denied")

	// ErrSyncInProgress rejects a sync request while another round is
	// active.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrUnexpected wraps any failure that ended a round.
	ErrUnexpected = errors.New("unexpected sync error")

	ErrRoundNotConfirmed  = errors.New("round was not confirmed by the server")
	ErrIdentifierMismatch = errors.New("identifier count does not match submitted records")
	ErrMissingIdentifier  = errors.New("server returned no identifier for a live record")

	ErrNotAuthenticated = errors.New("not authenticated")
)
