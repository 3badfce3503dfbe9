// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent HTTPClient. A non-empty userAgent is
// sent with every request.
//
// Example usage:
//
//	client := utils.NewHTTPClient("study-companion/1.4.0")
//	resp, err := client.R().Get("https://example.com/api/v1/sync")
func NewHTTPClient(userAgent string) *HTTPClient {
	client := resty.New()
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPClient{Client: client}
}
