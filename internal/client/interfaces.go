// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App].
type UI interface {
	// LoginFlow asks for a token until a session is opened. It returns
	// tui.ErrUserQuit when the user leaves.
	LoginFlow(ctx context.Context) (models.Session, error)

	// MainLoop runs the main screen and reports whether the user logged out.
	MainLoop(ctx context.Context, session models.Session) (logout bool, err error)

	// Listener receives the rounds started by the background job.
	Listener() service.SyncListener
}
