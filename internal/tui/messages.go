// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/study-companion/models"
)

type loginDoneMsg struct {
	session models.Session
	err     error
}

// sync listener callbacks
type (
	syncDownloadingMsg struct{}

	syncUploadingMsg struct {
		pending int
	}

	syncProgressMsg struct {
		uploaded   int
		downloaded int
	}

	syncCompletedMsg struct {
		uploaded   int
		downloaded int
	}

	syncCancelledMsg struct{}

	syncErrorMsg struct {
		err error
	}
)

// syncRequestedMsg carries the result of SyncService.Start.
type syncRequestedMsg struct {
	err error
}

type lastSyncMsg struct {
	at *time.Time
}

type modifiedMsg struct {
	modified bool
}

type recordsLoadedMsg struct {
	dataType models.DataType
	items    []models.SyncableRecord
	err      error
}

type recordSavedMsg struct {
	err error
}

type recordDeletedMsg struct {
	changed bool
	err     error
}

type wipedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
