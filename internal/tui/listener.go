// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-companion/internal/observable"
	"github.com/MKhiriev/study-companion/internal/service"
)

// programBridge forwards events produced outside of Bubble Tea (sync
// callbacks, status changes) to the running program. Events sent while no
// program is attached are dropped.
type programBridge struct {
	mu      sync.Mutex
	program *tea.Program
}

func (b *programBridge) attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

func (b *programBridge) detach() {
	b.attach(nil)
}

func (b *programBridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// watchStatus subscribes to the observable sync status and returns the
// subscriptions to cancel when the program exits.
func (b *programBridge) watchStatus(status *service.SyncStatus) []observable.Subscription {
	return []observable.Subscription{
		status.LastSyncDate.Subscribe(func(at *time.Time) { b.send(lastSyncMsg{at: at}) }),
		status.ModifiedSinceLastSync.Subscribe(func(v bool) { b.send(modifiedMsg{modified: v}) }),
	}
}

// syncListener turns sync callbacks into Bubble Tea messages.
type syncListener struct {
	send func(tea.Msg)
}

var _ service.SyncListener = syncListener{}

func (l syncListener) OnStartedDownloading() { l.send(syncDownloadingMsg{}) }

func (l syncListener) OnStartedUploading(pending int) {
	l.send(syncUploadingMsg{pending: pending})
}

func (l syncListener) OnSynchronizationProgress(uploaded, downloaded int) {
	l.send(syncProgressMsg{uploaded: uploaded, downloaded: downloaded})
}

func (l syncListener) OnSynchronizationCompleted(uploaded, downloaded int) {
	l.send(syncCompletedMsg{uploaded: uploaded, downloaded: downloaded})
}

func (l syncListener) OnSynchronizationCancelled() { l.send(syncCancelledMsg{}) }

func (l syncListener) OnSynchronizationError(err error) { l.send(syncErrorMsg{err: err}) }
