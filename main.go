// banktui - terminal console for the bank administration backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/cli"
	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
	"github.com/morganforge/banktui/internal/ui"
	"github.com/morganforge/banktui/internal/ui/console"
)

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "banktui: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(cfg)
	case cli.CmdLogin:
		err = cli.HandleLogin(cfg, args)
	case cli.CmdLogout:
		err = cli.HandleLogout(cfg, args)
	case cli.CmdStatus:
		err = cli.HandleStatus(cfg, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(cfg, args)
	case cli.CmdAudit:
		err = cli.HandleAudit(cfg, args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "banktui: %v\n", err)
		os.Exit(1)
	}
}

// runTUI assembles the console and runs the Bubble Tea program.
func runTUI(cfg *config.Config) error {
	client, err := api.NewClient(cfg.Gateway.BaseURL)
	if err != nil {
		return err
	}
	client = client.WithTimeout(time.Duration(cfg.Gateway.TimeoutSecs) * time.Second)

	// Session persistence is best-effort: a home directory problem
	// degrades to an in-memory session, not a refusal to start.
	files, err := session.NewFileStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "banktui: session persistence disabled: %v\n", err)
		files = nil
	}

	var wipes []func() error
	if files != nil {
		wipes = append(wipes, files.Clear)
	}
	store := session.NewStore(session.Config{
		Refresher: client,
		OnWipe:    wipes,
	})

	// Restore the saved session before any route decision.
	if files != nil {
		if state, lerr := files.Load(); lerr == nil {
			store.Restore(state)
		} else if !errors.Is(lerr, session.ErrNoSavedSession) {
			fmt.Fprintf(os.Stderr, "banktui: saved session ignored: %v\n", lerr)
		}
	}

	var trail *storage.AuditTrail
	if cfg.Audit.Enabled {
		path := cfg.Audit.Path
		if path == "" {
			path, err = storage.DefaultPath()
			if err != nil {
				path = ""
			}
		}
		if path != "" {
			if trail, err = storage.Open(path); err != nil {
				fmt.Fprintf(os.Stderr, "banktui: audit trail disabled: %v\n", err)
				trail = nil
			}
		}
	}
	if trail != nil {
		defer trail.Close()
	}

	app := ui.NewApp(cfg, client, store, files, trail)

	program := tea.NewProgram(app, tea.WithAltScreen())

	// A failed silent refresh means the backend session is gone; push the
	// console back to sign-in from wherever the failure surfaced.
	client.OnSessionExpired(func() {
		program.Send(console.SignedOutMsg{Expired: true})
	})

	// Hot-reload the [session] timeouts while the console runs.
	if path, perr := config.Path(); perr == nil {
		if watcher, werr := config.NewWatcher(path, app.ApplySchedule); werr == nil {
			defer watcher.Close()
		}
	}

	_, err = program.Run()
	return err
}
