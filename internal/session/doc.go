// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the console's authentication state: the session
// store (single source of truth for "is the operator logged in"), the
// inactivity monitor that drives the warning/forced-logout sequence, and
// persistence of the session across console restarts.
package session
