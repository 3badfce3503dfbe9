// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a study server API base URL (e.g. https://host/api/v1)
//	-d local database DSN
//	-c/-config json file path with configs
//	-token bearer token
//	-client-version version label reported to the server log
//	-request-timeout request timeout (e.g., "10s", "1m")
//	-sync-request-timeout upload request timeout (e.g., "30s")
//	-sync-interval background sync period (e.g., "15m")
//	-upload-limit max records uploaded per data type and round
//	-wipe-synced-sensor-data drop sensor readings after a finished round
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var token string
	var clientVersion string
	var requestTimeout time.Duration
	var syncRequestTimeout time.Duration
	var syncInterval time.Duration
	var uploadLimit int
	var wipeSensorData bool

	flag.StringVar(&serverAddress, "a", "", "Study server API base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&token, "token", "", "Bearer token")
	flag.StringVar(&clientVersion, "client-version", "", "Client version label")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s, 1m)")
	flag.DurationVar(&syncRequestTimeout, "sync-request-timeout", 0, "Upload request timeout (e.g., 30s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 15m)")
	flag.IntVar(&uploadLimit, "upload-limit", 0, "Max records uploaded per data type and round")
	flag.BoolVar(&wipeSensorData, "wipe-synced-sensor-data", false, "Remove sensor data after a finished round")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Token:   token,
			Version: clientVersion,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:        serverAddress,
			RequestTimeout:     requestTimeout,
			SyncRequestTimeout: syncRequestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		Sync: Sync{
			UploadLimit:          uploadLimit,
			WipeSyncedSensorData: wipeSensorData,
		},
		JSONFilePath: jsonConfigPath,
	}
}
