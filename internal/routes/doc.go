// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package routes defines the console's navigable pages and the guard that
// decides whether the current operator may visit them.
package routes
