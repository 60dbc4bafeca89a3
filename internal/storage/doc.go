// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage keeps the console-side audit trail: a local SQLite
// record of what the operator did and when, independent of whatever the
// backend logs. Useful when reconciling an incident after the fact.
package storage
