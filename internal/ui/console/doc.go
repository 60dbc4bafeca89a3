// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the signed-in view: sidebar navigation over
// the route table, data pages backed by the gateway, and the inactivity
// watchdog that guards every one of them.
package console
