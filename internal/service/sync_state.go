// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/study-companion/models"

// State is a step of the sync state machine.
type State int

const (
	StateIdle State = iota
	StateStarted
	StateRoundIDReceived
	StateDownloadedUserData
	StateStoredUserData
	StateDownloadedLabData
	StateStoredLabData
	StateUploadedUserData
	StateKeysStoredUserData
	StateUploadedSensorData
	StateKeysStoredSensorData
	StateConfirmed
	StateFinished
	StateCancelled
	StateUnexpectedError
)

var stateNames = [...]string{
	StateIdle:                 "Idle",
	StateStarted:              "Started",
	StateRoundIDReceived:      "RoundIDReceived",
	StateDownloadedUserData:   "DownloadedUserData",
	StateStoredUserData:       "StoredUserData",
	StateDownloadedLabData:    "DownloadedLabData",
	StateStoredLabData:        "StoredLabData",
	StateUploadedUserData:     "UploadedUserData",
	StateKeysStoredUserData:   "KeysStoredUserData",
	StateUploadedSensorData:   "UploadedSensorData",
	StateKeysStoredSensorData: "KeysStoredSensorData",
	StateConfirmed:            "Confirmed",
	StateFinished:             "Finished",
	StateCancelled:            "Cancelled",
	StateUnexpectedError:      "UnexpectedError",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsTerminal reports whether the state ends a round.
func (s State) IsTerminal() bool {
	return s == StateFinished || s == StateCancelled || s == StateUnexpectedError
}

// phaseStates names the states one data type passes through. The download
// and upload steps are shared between data types and pick their target
// state from this table.
type phaseStates struct {
	downloaded State
	stored     State
	uploaded   State
	keysStored State
}

var statesByDataType = map[models.DataType]phaseStates{
	models.UserData: {
		downloaded: StateDownloadedUserData,
		stored:     StateStoredUserData,
		uploaded:   StateUploadedUserData,
		keysStored: StateKeysStoredUserData,
	},
	models.LabData: {
		downloaded: StateDownloadedLabData,
		stored:     StateStoredLabData,
	},
	models.SensorData: {
		uploaded:   StateUploadedSensorData,
		keysStored: StateKeysStoredSensorData,
	},
}
