// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/study-companion/models"
)

// SyncSession is the bookkeeping of one round. It is created when a round
// is accepted and dropped when the round reaches a terminal state. Only the
// orchestrator's worker goroutine mutates it.
type SyncSession struct {
	ID     string
	UserID string

	State       State
	RoundID     string
	DownloadAll bool

	Downloaded    int
	Uploaded      int
	PendingUpload int

	// Touched collects every record read or written during the round.
	// Their bookkeeping is committed once the round is confirmed.
	Touched []models.SyncableRecord

	Listener SyncListener

	// data handed from one step to the next
	fetched     []models.RemoteRecord
	batch       []models.SyncableRecord
	identifiers []*string
	finishedAt  time.Time

	// outcome of the commit for the published status
	pendingAfterCommit bool
	editsAtCommit      uint64

	ctx     context.Context
	cancel  context.CancelFunc
	mailbox chan transition
	quit    chan struct{}
	done    chan struct{}
	steps   sync.WaitGroup
}

func (s *SyncSession) cancelled() bool {
	return s.ctx.Err() != nil
}

// transition is posted by a step into the mailbox of the worker.
//
// An intermediate transition only applies its update and keeps the current
// state; the step that posted it posts a final transition later.
type transition struct {
	sessionID    string
	next         State
	intermediate bool
	apply        func(s *SyncSession)
	err          error
}

// SyncResult is the outcome of a finished round.
type SyncResult struct {
	SessionID  string
	RoundID    string
	State      State
	Uploaded   int
	Downloaded int
	Err        error
}
