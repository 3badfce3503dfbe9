// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrCommunication covers transport failures, timeouts and non-2xx
	// responses.
	ErrCommunication = errors.New("communication error")

	// ErrInvalidResponse is returned when the server answered 2xx with a
	// body that cannot be used.
	ErrInvalidResponse = errors.New("invalid server response")

	// ErrUnauthorized is returned for 401 responses. It is always reported
	// together with a [CommunicationError].
	ErrUnauthorized = errors.New("client unauthorized")
)

// CommunicationError carries the status of a non-2xx response.
type CommunicationError struct {
	StatusCode int
	Body       string
}

func (e *CommunicationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Unwrap makes errors.Is(err, ErrCommunication) hold.
func (e *CommunicationError) Unwrap() error {
	return ErrCommunication
}
