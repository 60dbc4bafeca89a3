// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// Error variables for common gateway failures.
var (
	// ErrAuthFailed indicates the gateway rejected the credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrForbidden indicates the operator's role does not permit the call.
	ErrForbidden = errors.New("forbidden")

	// ErrSessionExpired indicates the session could not be refreshed and
	// the operator must sign in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable indicates a transport-level failure: the gateway
	// never answered. Distinct from a rejection so the UI can offer a
	// retry instead of an error message.
	ErrUnavailable = errors.New("gateway unavailable")
)

// APIError is a structured rejection from the gateway.
type APIError struct {
	Status  int
	Message string

	// Fields carries per-field validation messages, keyed by field name.
	Fields map[string]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway error (HTTP %d)", e.Status)
}

// IsRetryable reports whether the failure is worth retrying as-is: only
// transport failures qualify. Rejections (bad credentials, missing role,
// validation) will fail the same way again.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
