// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testTrail(t *testing.T) *AuditTrail {
	t.Helper()
	trail, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { trail.Close() })
	return trail
}

func TestAuditTrail_RecordAndGet(t *testing.T) {
	trail := testTrail(t)
	ctx := context.Background()

	id, err := trail.Record(ctx, "admin@example.com", ActionAirdrop, "1234567890", "amount=250.50")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entry, err := trail.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.Operator != "admin@example.com" || entry.Action != ActionAirdrop {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Target != "1234567890" || entry.Detail != "amount=250.50" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestAuditTrail_RecentNewestFirst(t *testing.T) {
	trail := testTrail(t)
	ctx := context.Background()

	// Deterministic ordering without sleeping between inserts.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ticks := 0
	trail.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	actions := []string{ActionLogin, ActionApprove, ActionLogout}
	for _, action := range actions {
		if _, err := trail.Record(ctx, "admin@example.com", action, "", ""); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := trail.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Action != ActionLogout || entries[2].Action != ActionLogin {
		t.Errorf("order = %s, %s, %s", entries[0].Action, entries[1].Action, entries[2].Action)
	}
}

func TestAuditTrail_RecentLimit(t *testing.T) {
	trail := testTrail(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := trail.Record(ctx, "admin@example.com", ActionLogin, "", ""); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := trail.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}

	n, err := trail.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
}

func TestAuditTrail_ByOperator(t *testing.T) {
	trail := testTrail(t)
	ctx := context.Background()

	trail.Record(ctx, "admin@example.com", ActionLogin, "", "")
	trail.Record(ctx, "banker@example.com", ActionLogin, "", "")
	trail.Record(ctx, "admin@example.com", ActionLogout, "", "")

	entries, err := trail.ByOperator(ctx, "admin@example.com", 10)
	if err != nil {
		t.Fatalf("ByOperator failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Operator != "admin@example.com" {
			t.Errorf("operator = %q", e.Operator)
		}
	}
}

func TestAuditTrail_GetMissing(t *testing.T) {
	trail := testTrail(t)
	if _, err := trail.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAuditTrail_ClosedErrors(t *testing.T) {
	trail := testTrail(t)
	trail.Close()

	if _, err := trail.Record(context.Background(), "x", ActionLogin, "", ""); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after close = %v, want ErrClosed", err)
	}
	if _, err := trail.Recent(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Recent after close = %v, want ErrClosed", err)
	}
}
