// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the identity the client runs as and its version label.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the local record store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the address and timeouts of the study server API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds tuning knobs of the synchronization engine.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Token is the bearer token issued by the study server after login.
	// Its claims carry the user id and study role.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// Version is the client version reported to the remote diagnostic log.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the path of the SQLite database file
	// (e.g. "file:study.db?_foreign_keys=on" or "study.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration of the outbound connection to the study server.
type Adapter struct {
	// HTTPAddress is the versioned base URL of the API
	// (e.g. "https://study.example.org/api/v1").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a regular API call (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SyncRequestTimeout bounds upload calls, which carry large batches of
	// sensor readings (e.g. "30s").
	// Env: ADAPTER_SYNC_REQUEST_TIMEOUT
	SyncRequestTimeout time.Duration `env:"SYNC_REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Sync holds tuning knobs of the synchronization engine.
type Sync struct {
	// UploadLimit caps the number of records pushed per data type in one
	// round. Env: SYNC_UPLOAD_LIMIT
	UploadLimit int `env:"UPLOAD_LIMIT"`

	// WipeSyncedSensorData removes sensor readings from the device once a
	// round that carried them finished.
	// Env: SYNC_WIPE_SYNCED_SENSOR_DATA
	WipeSyncedSensorData bool `env:"WIPE_SYNCED_SENSOR_DATA"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources: environment variables, command-line flags and the JSON file whose
// path was resolved from the first two.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
