// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/study-companion/internal/adapter"
	"github.com/MKhiriev/study-companion/internal/config"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/store"
	"github.com/MKhiriev/study-companion/internal/utils"
	"github.com/MKhiriev/study-companion/models"
)

// failureLogTimeout bounds the remote diagnostic log call made after a
// failed round.
const failureLogTimeout = 5 * time.Second

// syncOrchestrator drives one round at a time through the state machine.
//
// Each accepted round gets a worker goroutine that owns the SyncSession.
// Network and store calls run on step goroutines whose result is posted
// into the session mailbox (capacity 1); the worker applies it, moves to
// the next state and launches the step registered for that state.
type syncOrchestrator struct {
	records   store.RecordStore
	syncState store.SyncStateStore
	gateway   adapter.RemoteGateway
	status    *SyncStatus
	cfg       config.ClientSync

	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger

	mu         sync.Mutex
	session    *SyncSession
	state      State
	done       chan struct{}
	lastResult SyncResult
}

// NewClientSyncService constructs the sync orchestrator.
func NewClientSyncService(storages *store.ClientStorages, gateway adapter.RemoteGateway, status *SyncStatus, cfg config.ClientSync, logger *logger.Logger) ClientSyncService {
	if cfg.UploadLimit <= 0 {
		cfg.UploadLimit = config.DefaultUploadLimit
	}

	return &syncOrchestrator{
		records:   storages.RecordStore,
		syncState: storages.SyncStateStore,
		gateway:   gateway,
		status:    status,
		cfg:       cfg,
		ids:       utils.NewUUIDGenerator(),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// Start implements [ClientSyncService].
func (o *syncOrchestrator) Start(ctx context.Context, session models.Session, listener SyncListener) error {
	if listener == nil {
		listener = SyncListenerFuncs{}
	}

	o.mu.Lock()
	if o.session != nil {
		o.mu.Unlock()
		o.logger.Debug().
			Str("func", "syncOrchestrator.Start").
			Str("user_id", session.UserID).
			Msg("sync request rejected, round in progress")
		listener.OnSynchronizationError(ErrSyncInProgress)
		return ErrSyncInProgress
	}
	if !session.Role.CanSync() {
		o.mu.Unlock()
		return fmt.Errorf("%w: role %q may not sync", ErrPermission, session.Role)
	}

	s := o.newSession(ctx, session.UserID, listener)
	o.session = s
	o.state = StateStarted
	o.done = s.done
	o.mu.Unlock()

	logger.FromContext(s.ctx).Info().
		Str("func", "syncOrchestrator.Start").
		Msg("sync round started")

	go o.run(s)
	return nil
}

func (o *syncOrchestrator) newSession(ctx context.Context, userID string, listener SyncListener) *SyncSession {
	id := o.ids.Generate()
	sessionLogger := o.logger.WithSession(id, userID)

	sessionCtx, cancel := context.WithCancel(sessionLogger.WithContext(ctx))
	return &SyncSession{
		ID:       id,
		UserID:   userID,
		State:    StateStarted,
		Listener: listener,
		ctx:      sessionCtx,
		cancel:   cancel,
		mailbox:  make(chan transition, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Cancel implements [ClientSyncService].
func (o *syncOrchestrator) Cancel() {
	o.mu.Lock()
	s := o.session
	o.mu.Unlock()

	if s != nil {
		s.cancel()
	}
}

// IsSyncInProgress implements [ClientSyncService].
func (o *syncOrchestrator) IsSyncInProgress() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session != nil
}

// State implements [ClientSyncService].
func (o *syncOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Wait implements [ClientSyncService].
func (o *syncOrchestrator) Wait() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()

	if done != nil {
		<-done
	}
}

// LastResult implements [ClientSyncService].
func (o *syncOrchestrator) LastResult() SyncResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastResult
}

// run is the worker loop of one session.
func (o *syncOrchestrator) run(s *SyncSession) {
	defer close(s.done)
	defer s.cancel()

	o.launch(s)
	for {
		select {
		case <-o.cancellation(s):
			o.stopSteps(s)
			o.finish(s, StateCancelled, nil)
			return

		case t := <-s.mailbox:
			if !o.accept(s, t) {
				continue
			}
			if t.err != nil {
				o.stopSteps(s)
				o.finish(s, StateUnexpectedError, t.err)
				return
			}

			if t.apply != nil {
				t.apply(s)
			}
			if t.intermediate {
				continue
			}

			o.enter(s, t.next)
			if t.next == StateFinished {
				o.stopSteps(s)
				o.finish(s, StateFinished, nil)
				return
			}
			o.launch(s)
		}
	}
}

// cancellation returns the channel that aborts the round. It is nil once the
// server confirmed the round: the local commit then always completes.
func (o *syncOrchestrator) cancellation(s *SyncSession) <-chan struct{} {
	if s.State == StateConfirmed {
		return nil
	}
	return s.ctx.Done()
}

// accept drops messages of another session and messages arriving after
// the session was cancelled, except the result of the commit.
func (o *syncOrchestrator) accept(s *SyncSession, t transition) bool {
	if t.sessionID == s.ID && (!s.cancelled() || s.State == StateConfirmed) {
		return true
	}

	logger.FromContext(s.ctx).Debug().
		Str("func", "syncOrchestrator.accept").
		Str("message_session_id", t.sessionID).
		Str("state", s.State.String()).
		Msg("dropping stale sync message")
	return false
}

func (o *syncOrchestrator) enter(s *SyncSession, next State) {
	s.State = next
	o.mu.Lock()
	o.state = next
	o.mu.Unlock()

	logger.FromContext(s.ctx).Debug().
		Str("func", "syncOrchestrator.enter").
		Str("round_id", s.RoundID).
		Str("state", next.String()).
		Msg("sync state changed")

	switch next {
	case StateRoundIDReceived:
		s.Listener.OnStartedDownloading()
	case StateStoredUserData, StateStoredLabData, StateKeysStoredUserData, StateKeysStoredSensorData:
		s.Listener.OnSynchronizationProgress(s.Uploaded, s.Downloaded)
	}
}

// launch starts the step registered for the current state.
func (o *syncOrchestrator) launch(s *SyncSession) {
	st := o.stepFor(s)
	if st == nil {
		o.post(s, transition{err: fmt.Errorf("no step registered for state %s", s.State)})
		return
	}

	s.steps.Add(1)
	go func() {
		defer s.steps.Done()
		t := o.runStep(s, st)
		o.post(s, t)
	}()
}

// runStep executes st and turns a panic into a failed transition.
func (o *syncOrchestrator) runStep(s *SyncSession, st step) (t transition) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(s.ctx).Error().
				Str("func", "syncOrchestrator.runStep").
				Interface("panic", r).
				Msg("sync step panicked")
			t = transition{err: fmt.Errorf("panic in sync step: %v", r)}
		}
	}()

	return st(s.ctx, func(intermediate transition) {
		intermediate.intermediate = true
		o.post(s, intermediate)
	})
}

// post delivers t to the worker of s. It never blocks once the worker
// stopped reading.
func (o *syncOrchestrator) post(s *SyncSession, t transition) {
	if t.sessionID == "" {
		t.sessionID = s.ID
	}

	select {
	case s.mailbox <- t:
	case <-s.quit:
	}
}

func (o *syncOrchestrator) stopSteps(s *SyncSession) {
	close(s.quit)
	s.steps.Wait()
}

// finish records the result, releases the single-flight guard and notifies
// the listener.
func (o *syncOrchestrator) finish(s *SyncSession, final State, cause error) {
	failedAt := s.State
	s.State = final

	result := SyncResult{
		SessionID:  s.ID,
		RoundID:    s.RoundID,
		State:      final,
		Uploaded:   s.Uploaded,
		Downloaded: s.Downloaded,
	}

	log := logger.FromContext(s.ctx)
	switch final {
	case StateUnexpectedError:
		result.Err = fmt.Errorf("%w: %w", ErrUnexpected, cause)
		log.Err(cause).
			Str("func", "syncOrchestrator.finish").
			Str("round_id", s.RoundID).
			Str("state", failedAt.String()).
			Msg("sync round failed")
		o.reportFailure(s, failedAt, cause)
	case StateCancelled:
		log.Info().
			Str("func", "syncOrchestrator.finish").
			Str("state", failedAt.String()).
			Msg("sync round cancelled")
	case StateFinished:
		o.status.markSynced(s.finishedAt, s.pendingAfterCommit, s.editsAtCommit)
		log.Info().
			Str("func", "syncOrchestrator.finish").
			Str("round_id", s.RoundID).
			Int("uploaded", s.Uploaded).
			Int("downloaded", s.Downloaded).
			Msg("sync round finished")
	}

	o.mu.Lock()
	o.session = nil
	o.state = StateIdle
	o.lastResult = result
	o.mu.Unlock()

	switch final {
	case StateFinished:
		s.Listener.OnSynchronizationCompleted(s.Uploaded, s.Downloaded)
	case StateCancelled:
		s.Listener.OnSynchronizationCancelled()
	case StateUnexpectedError:
		s.Listener.OnSynchronizationError(result.Err)
	}
}

func (o *syncOrchestrator) reportFailure(s *SyncSession, failedAt State, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), failureLogTimeout)
	defer cancel()

	entry := models.LogEntry{
		Level:   models.LogLevelError,
		Message: fmt.Sprintf("Sync State: %s: %v", failedAt, cause),
	}
	if err := o.gateway.SendLog(ctx, entry); err != nil {
		logger.FromContext(s.ctx).Warn().Err(err).
			Str("func", "syncOrchestrator.reportFailure").
			Msg("failed to send diagnostic log")
	}
}
