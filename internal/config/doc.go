// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the study-companion client.
//
// Configuration is assembled from multiple sources in the following order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Sources are merged with mergo, so a field keeps the first non-zero value it
// receives. The main entry point is [GetClientConfig], which maps the merged
// [StructuredConfig] to the [ClientConfig] view, fills defaults and validates
// the result.
package config
