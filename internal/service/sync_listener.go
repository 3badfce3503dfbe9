// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

// SyncListener receives the progress and the outcome of a round. Callbacks
// are invoked from the orchestrator's worker goroutine, one at a time.
// Exactly one of OnSynchronizationCompleted, OnSynchronizationCancelled and
// OnSynchronizationError ends every accepted round.
type SyncListener interface {
	OnStartedDownloading()
	OnStartedUploading(pending int)
	OnSynchronizationProgress(uploaded, downloaded int)
	OnSynchronizationCompleted(uploaded, downloaded int)
	OnSynchronizationCancelled()
	OnSynchronizationError(err error)
}

// SyncListenerFuncs adapts plain functions to [SyncListener]. Nil fields
// are ignored.
type SyncListenerFuncs struct {
	StartedDownloading func()
	StartedUploading   func(pending int)
	Progress           func(uploaded, downloaded int)
	Completed          func(uploaded, downloaded int)
	Cancelled          func()
	Error              func(err error)
}

func (f SyncListenerFuncs) OnStartedDownloading() {
	if f.StartedDownloading != nil {
		f.StartedDownloading()
	}
}

func (f SyncListenerFuncs) OnStartedUploading(pending int) {
	if f.StartedUploading != nil {
		f.StartedUploading(pending)
	}
}

func (f SyncListenerFuncs) OnSynchronizationProgress(uploaded, downloaded int) {
	if f.Progress != nil {
		f.Progress(uploaded, downloaded)
	}
}

func (f SyncListenerFuncs) OnSynchronizationCompleted(uploaded, downloaded int) {
	if f.Completed != nil {
		f.Completed(uploaded, downloaded)
	}
}

func (f SyncListenerFuncs) OnSynchronizationCancelled() {
	if f.Cancelled != nil {
		f.Cancelled()
	}
}

func (f SyncListenerFuncs) OnSynchronizationError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}
