// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logout_cmd.go - sign out and clear the saved session.
//
// Command: logout
// Short:   Sign out and clear the saved session
//
// The gateway call is best-effort: the local session file is cleared
// regardless, which is what actually ends access from this machine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
)

// HandleLogout clears the saved session.
func HandleLogout(cfg *config.Config, args Args) error {
	files, err := session.NewFileStore()
	if err != nil {
		return err
	}

	state, err := files.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSavedSession) {
			if !args.Quiet {
				fmt.Println("Not signed in.")
			}
			return nil
		}
		// A corrupt session file still gets cleared below.
		state = session.State{}
	}

	if client, cerr := api.NewClient(cfg.Gateway.BaseURL); cerr == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_ = client.Logout(ctx)
		cancel()
	}

	if err := files.Clear(); err != nil {
		return err
	}

	if trail := openTrail(cfg, args); trail != nil {
		operator := ""
		if state.User != nil {
			operator = state.User.Email
		}
		auditTrail(trail, operator, storage.ActionLogout, "", "")
		trail.Close()
	}

	if !args.Quiet {
		fmt.Println("Signed out.")
	}
	return nil
}
