// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the bank administration gateway.
//
// The gateway authenticates with HTTP-only cookies, so the client carries a
// cookie jar and never handles raw credentials after login. Every response
// arrives in a common envelope; a 401 on any endpoint triggers one silent
// token refresh and one retry before the failure surfaces.
//
// API: Secure logging, response limits, and validation
package api
