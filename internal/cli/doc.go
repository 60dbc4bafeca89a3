// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses banktui's command line and implements the
// non-TUI command handlers (login, logout, status, config, audit).
package cli
