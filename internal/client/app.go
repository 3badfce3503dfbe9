// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/study-companion/internal/config"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/internal/tui"
	"github.com/MKhiriev/study-companion/internal/workers"
	"github.com/MKhiriev/study-companion/models"
)

type App struct {
	services *service.ClientServices
	ui       UI
	token    string
	workers  config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, app config.ClientApp, workersCfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client: services and ui are required")
	}

	return &App{
		services: services,
		ui:       ui,
		token:    app.Token,
		workers:  workersCfg,
		logger:   logger,
	}, nil
}

// Run implements [Client]. After a logout the login screen is shown again;
// leaving the login screen ends Run without an error.
func (a *App) Run(ctx context.Context) error {
	for {
		session, err := a.authenticate(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}

		logout, err := a.runSession(ctx, session)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.logger.Info().
			Str("func", "App.Run").
			Str("user_id", session.UserID).
			Msg("user logged out")
		a.token = ""
	}
}

// authenticate opens a session from the configured token and falls back to
// the login screen.
func (a *App) authenticate(ctx context.Context) (models.Session, error) {
	if a.token != "" {
		session, err := a.services.AuthService.Login(ctx, a.token)
		if err == nil {
			return session, nil
		}
		a.logger.Warn().Err(err).
			Str("func", "App.authenticate").
			Msg("configured token rejected")
	}

	return a.ui.LoginFlow(ctx)
}

func (a *App) runSession(ctx context.Context, session models.Session) (bool, error) {
	background := workers.NewWorkers()
	if session.Role.CanSync() {
		background = workers.NewWorkers(
			workers.NewSyncWorker(a.services.SyncJob, session, a.workers.SyncInterval, a.ui.Listener()),
		)
	}

	background.Run(ctx)
	defer func() {
		background.Stop()
		a.services.SyncService.Cancel()
		a.services.SyncService.Wait()
	}()

	logout, err := a.ui.MainLoop(ctx, session)
	if err != nil {
		return false, fmt.Errorf("main loop: %w", err)
	}
	return logout, nil
}
