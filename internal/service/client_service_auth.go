// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/study-companion/internal/adapter"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/store"
	"github.com/MKhiriev/study-companion/internal/utils"
	"github.com/MKhiriev/study-companion/models"
)

type clientAuthService struct {
	syncState store.SyncStateStore
	gateway   adapter.RemoteGateway
	status    *SyncStatus
	now       func() time.Time
	logger    *logger.Logger
}

func NewClientAuthService(storages *store.ClientStorages, gateway adapter.RemoteGateway, status *SyncStatus, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		syncState: storages.SyncStateStore,
		gateway:   gateway,
		status:    status,
		now:       time.Now,
		logger:    logger,
	}
}

func (a *clientAuthService) Login(ctx context.Context, token string) (models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return models.Session{}, ErrNotAuthenticated
	}

	session, err := utils.ParseSessionToken(token, a.now())
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	// клиент не проверяет подпись, токен проверит сервер при первом запросе
	a.gateway.SetToken(session.Token)

	state, err := a.syncState.GetSyncState(ctx, session.UserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("load sync state: %w", err)
	}
	a.status.Load(state)

	a.logger.Info().
		Str("func", "clientAuthService.Login").
		Str("user_id", session.UserID).
		Str("role", string(session.Role)).
		Msg("session opened")

	return session, nil
}
