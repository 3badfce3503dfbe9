// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	// DefaultSyncRequestTimeout is applied when no upload timeout is set.
	DefaultSyncRequestTimeout = 30 * time.Second
	// DefaultUploadLimit is applied when no upload limit is set.
	DefaultUploadLimit = 1000
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Token is the bearer token used for every API call.
	Token string
	// Version is reported to the remote diagnostic log.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the versioned API base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// SyncRequestTimeout is the timeout for upload requests.
	SyncRequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientSync contains sync engine settings.
type ClientSync struct {
	// UploadLimit caps records pushed per data type in one round.
	UploadLimit int
	// WipeSyncedSensorData removes uploaded sensor readings after a
	// finished round.
	WipeSyncedSensorData bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// newClientConfig maps cfg onto the client view and fills defaults for
// optional sync settings.
func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:   cfg.App.Token,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:        cfg.Adapter.HTTPAddress,
			RequestTimeout:     cfg.Adapter.RequestTimeout,
			SyncRequestTimeout: cfg.Adapter.SyncRequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Sync: ClientSync{
			UploadLimit:          cfg.Sync.UploadLimit,
			WipeSyncedSensorData: cfg.Sync.WipeSyncedSensorData,
		},
	}

	if clientCfg.Adapter.SyncRequestTimeout == 0 {
		clientCfg.Adapter.SyncRequestTimeout = DefaultSyncRequestTimeout
	}
	if clientCfg.Sync.UploadLimit == 0 {
		clientCfg.Sync.UploadLimit = DefaultUploadLimit
	}

	return clientCfg
}
