// Vitrina - Content Discovery Feed Composition for Creator Analytics
// Copyright 2026 Vitrina contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrina-app/vitrina

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - ComposeTimeMS: Feed composition time in milliseconds
//   - RequestID: The request's correlation identifier
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	ComposeTimeMS int64     `json:"compose_time_ms,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - AUTHENTICATION_ERROR: Invalid/missing credentials
//   - COMPOSITION_ERROR: Feed composition failure
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
