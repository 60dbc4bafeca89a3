// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

func TestUser_IsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}

	banker := User{Role: RoleBanker}
	if banker.IsAdmin() {
		t.Error("banker role should not report IsAdmin")
	}
}

func TestTransaction_Decode(t *testing.T) {
	raw := `{
		"_id": "tx1",
		"account": {"_id": "a1", "accountNumber": "1002003001"},
		"type": "deposit",
		"amount": 250.75,
		"description": "token airdrop",
		"status": "completed",
		"performedBy": {"_id": "u1", "name": "Ada", "role": "admin"},
		"date": "2025-03-01T10:30:00Z",
		"reference": "AIR-42"
	}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if tx.Account.AccountNumber != "1002003001" {
		t.Errorf("account number = %q", tx.Account.AccountNumber)
	}
	if tx.Amount != 250.75 {
		t.Errorf("amount = %v", tx.Amount)
	}
	if tx.PerformedBy.Role != RoleAdmin {
		t.Errorf("performedBy role = %q", tx.PerformedBy.Role)
	}
	if tx.Date.IsZero() {
		t.Error("date should parse")
	}
}
