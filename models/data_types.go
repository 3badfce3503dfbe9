// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DataType identifies the category of a [SyncableRecord]. The value is
// persisted in the local store and sent verbatim to the server as the
// "datatype" of a fetch or push request.
type DataType string

const (
	// UserData holds questionnaire answers entered by the participant.
	// It is both downloaded and uploaded during a round.
	UserData DataType = "UserData"

	// LabData holds lab results pushed by study staff. It is download-only.
	LabData DataType = "LabData"

	// SensorData holds readings from wearable sensors. It is upload-only and
	// is never served to the data service for reading.
	SensorData DataType = "SensorData"
)

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	switch d {
	case UserData, LabData, SensorData:
		return true
	default:
		return false
	}
}

func (d DataType) String() string {
	return string(d)
}
