// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It opens a session from the configured token or the login screen, runs
// the background sync worker for that session and the terminal UI, and
// makes sure no sync round outlives the session.
package client
