// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LogLevel is the severity of a diagnostic message sent to the server.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// LogEntry is a diagnostic message reported to the remote log endpoint.
type LogEntry struct {
	Level   LogLevel
	Message string
}

// LogRequest is the wire body of a remote log call.
type LogRequest struct {
	Msg           string `json:"msg"`
	ClientVersion string `json:"client_version"`
}

// Format returns the message prefixed with its level the way the server
// log expects it, for example "[ERROR] sync failed".
func (e LogEntry) Format() string {
	if e.Level == "" || e.Level == LogLevelInfo {
		return e.Message
	}
	return "[" + string(e.Level) + "] " + e.Message
}
