// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types the banktui console renders:
// bank staff and customers, accounts, transactions and pending
// account applications, as returned by the administration backend.
package model
