// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status_cmd.go - gateway and session status.
//
// Command: status, s
// Short:   Show gateway and session status
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/session"
)

// HandleStatus prints the configured gateway and the saved session state.
func HandleStatus(cfg *config.Config, args Args) error {
	fmt.Printf("gateway:  %s\n", cfg.Gateway.BaseURL)
	fmt.Printf("timeouts: warn %dm, expire %dm\n",
		cfg.Session.WarningMins, cfg.Session.ExpireMins)

	files, err := session.NewFileStore()
	if err != nil {
		return err
	}
	state, err := files.Load()
	switch {
	case errors.Is(err, session.ErrNoSavedSession):
		fmt.Println("session:  not signed in")
		return nil
	case err != nil:
		fmt.Printf("session:  unreadable (%v)\n", err)
		return nil
	}

	if state.User == nil {
		fmt.Println("session:  not signed in")
		return nil
	}
	fmt.Printf("session:  %s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
	if !state.LastActivity.IsZero() {
		fmt.Printf("activity: %s ago\n", time.Since(state.LastActivity).Round(time.Second))
	}
	return nil
}
