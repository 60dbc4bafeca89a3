// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed   = errors.New("audit trail closed")
	ErrNotFound = errors.New("audit entry not found")
)

// =============================================================================
// AUDIT ACTIONS
// =============================================================================

// Actions recorded by the console. The set is closed on purpose: free-text
// actions make the trail impossible to query.
const (
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionLogout         = "logout"
	ActionSessionExpired = "session_expired"
	ActionSessionExtend  = "session_extended"
	ActionApprove        = "application_approved"
	ActionVerify         = "customer_verified"
	ActionAirdrop        = "airdrop"
	ActionStaffCreated   = "staff_created"
)

// Entry is one audit trail record.
type Entry struct {
	ID        string
	Operator  string // operator email; empty for failed logins
	Action    string
	Target    string // subject of the action: user id, account number
	Detail    string
	CreatedAt time.Time
}

// =============================================================================
// AUDIT TRAIL
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id         TEXT PRIMARY KEY,
	operator   TEXT NOT NULL,
	action     TEXT NOT NULL,
	target     TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_audit_operator ON audit_log(operator);
`

// AuditTrail is an append-only action log in a local SQLite database.
// Entries are never updated or deleted through this API.
type AuditTrail struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns the standard audit database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".banktui", "audit.db"), nil
}

// Open opens (creating if needed) the audit trail at path.
func Open(path string) (*AuditTrail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init audit schema: %w", err)
	}

	return &AuditTrail{db: db, now: time.Now}, nil
}

// Close releases the database.
func (a *AuditTrail) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Record appends one entry and returns its generated ID.
func (a *AuditTrail) Record(ctx context.Context, operator, action, target, detail string) (string, error) {
	if a.db == nil {
		return "", ErrClosed
	}
	id := uuid.NewString()
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, operator, action, target, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, operator, action, target, detail, a.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to record audit entry: %w", err)
	}
	return id, nil
}

// Recent returns the newest entries, newest first, capped at limit.
func (a *AuditTrail) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if a.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, operator, action, target, detail, created_at
		FROM audit_log ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ByOperator returns one operator's entries, newest first.
func (a *AuditTrail) ByOperator(ctx context.Context, operator string, limit int) ([]Entry, error) {
	if a.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, operator, action, target, detail, created_at
		FROM audit_log WHERE operator = ?
		ORDER BY created_at DESC, id LIMIT ?`, operator, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Get fetches a single entry by ID.
func (a *AuditTrail) Get(ctx context.Context, id string) (*Entry, error) {
	if a.db == nil {
		return nil, ErrClosed
	}
	var e Entry
	err := a.db.QueryRowContext(ctx, `
		SELECT id, operator, action, target, detail, created_at
		FROM audit_log WHERE id = ?`, id).
		Scan(&e.ID, &e.Operator, &e.Action, &e.Target, &e.Detail, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load audit entry: %w", err)
	}
	return &e, nil
}

// Count returns the total number of entries.
func (a *AuditTrail) Count(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Operator, &e.Action, &e.Target, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
