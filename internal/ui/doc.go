// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui holds the root Bubble Tea model that switches between the
// sign-in view and the signed-in console.
package ui
