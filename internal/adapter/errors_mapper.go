// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	commErr := &CommunicationError{StatusCode: resp.StatusCode(), Body: body}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, commErr)
	default:
		return commErr
	}
}

func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s request: %w", ErrCommunication, op, err)
}

func invalidResponse(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidResponse, op, err)
}
