// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/study-companion/internal/adapter"
	"github.com/MKhiriev/study-companion/internal/config"
	"github.com/MKhiriev/study-companion/internal/logger"
	"github.com/MKhiriev/study-companion/internal/store"
)

// ClientServices groups the client services that share one store, one
// gateway and one observable sync status.
type ClientServices struct {
	AuthService ClientAuthService
	DataService ClientDataService
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
	SyncStatus  *SyncStatus
}

// NewClientServices wires the services.
func NewClientServices(storages *store.ClientStorages, gateway adapter.RemoteGateway, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	status := NewSyncStatus()
	syncSvc := NewClientSyncService(storages, gateway, status, cfg, logger)

	return &ClientServices{
		AuthService: NewClientAuthService(storages, gateway, status, logger),
		DataService: NewClientDataService(storages, status, logger),
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, logger),
		SyncStatus:  status,
	}
}
