// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// audit_cmd.go - local audit trail inspection.
//
// Command: audit [--limit N]
// Short:   Show recent local audit entries
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/util"
)

// HandleAudit lists the most recent audit entries, newest first.
func HandleAudit(cfg *config.Config, args Args) error {
	if !cfg.Audit.Enabled {
		return errors.New("audit trail is disabled in config")
	}

	trail := openTrail(cfg, args)
	if trail == nil {
		return errors.New("audit trail unavailable")
	}
	defer trail.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := trail.Recent(ctx, args.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No audit entries.")
		return nil
	}

	// Detail and target are operator-entered text; cap them so one long
	// reference cannot wrap every line of the listing.
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-22s %s",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, e.Operator)
		if e.Target != "" {
			line += "  target=" + util.TruncateRunes(e.Target, 24)
		}
		if e.Detail != "" {
			line += "  " + util.TruncateRunes(e.Detail, 48)
		}
		fmt.Println(line)
	}

	if total, err := trail.Count(ctx); err == nil && total > len(entries) {
		fmt.Println("(" + util.IntToString(len(entries)) + " of " + util.IntToString(total) +
			" entries; use --limit to see more)")
	}
	return nil
}
