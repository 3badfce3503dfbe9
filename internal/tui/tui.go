// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/models"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	bridge    *programBridge
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: services are required")
	}
	return &TUI{
		services:  services,
		buildInfo: buildInfo,
		bridge:    &programBridge{},
		logger:    logger,
	}, nil
}

// Listener reports sync rounds to whichever screen is currently running.
// Rounds started by the background job use it too.
func (t *TUI) Listener() service.SyncListener {
	return syncListener{send: t.bridge.send}
}

func (t *TUI) LoginFlow(ctx context.Context) (models.Session, error) {
	root := NewRootModel(NewLoginModel(ctx, t.services.AuthService), t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.Session{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser || result.session.UserID == "" {
		return models.Session{}, ErrUserQuit
	}

	return result.session, nil
}

func (t *TUI) MainLoop(ctx context.Context, session models.Session) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, session, t.Listener())
	p := tea.NewProgram(NewRootModel(model, t.buildInfo), tea.WithAltScreen())

	t.bridge.attach(p)
	defer t.bridge.detach()

	for _, sub := range t.bridge.watchStatus(t.services.SyncStatus) {
		defer sub.Unsubscribe()
	}

	finalModel, runErr := p.Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	page, ok := result.page.(*mainLoopModel)
	if !ok || result.quitByUser {
		return false, nil
	}

	t.logger.Debug().
		Str("func", "TUI.MainLoop").
		Bool("logout", page.logout).
		Msg("main loop finished")
	return page.logout, nil
}
