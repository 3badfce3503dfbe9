// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/models"
)

// DefaultSyncInterval is used by the sync job when no interval is set.
const DefaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that starts a round on a ticker.
// The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{syncService: syncService, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that starts a round every interval and
// waits for it. A tick that finds a round already running is skipped. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, session models.Session, interval time.Duration, listener SyncListener) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if listener == nil {
		listener = SyncListenerFuncs{}
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx, session, listener)
			}
		}
	}()
}

func (j *clientSyncJob) tick(ctx context.Context, session models.Session, listener SyncListener) {
	// ручной запуск уже идёт, ждём следующего тика
	if j.syncService.IsSyncInProgress() {
		return
	}

	err := j.syncService.Start(ctx, session, listener)
	switch {
	case errors.Is(err, ErrSyncInProgress):
		return
	case err != nil:
		j.logger.Warn().Err(err).
			Str("func", "clientSyncJob.tick").
			Str("user_id", session.UserID).
			Msg("periodic sync not started")
		return
	}

	j.syncService.Wait()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context, which also cancels a round the job started, and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
