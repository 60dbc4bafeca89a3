// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login_cmd.go - interactive terminal sign-in.
//
// Command: login
// Short:   Sign in from the terminal
//
// Prompts for email (line editing via liner) and password (no echo).
// Attempts are rate limited so a scripted loop cannot hammer the
// gateway's lockout counter from this machine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
)

const maxLoginAttempts = 3

// loginLimiter spaces attempts: one immediately, then one every 3s.
var loginLimiter = rate.NewLimiter(rate.Every(3*time.Second), 1)

// HandleLogin signs the operator in and saves the session locally.
func HandleLogin(cfg *config.Config, args Args) error {
	if !IsTTY() {
		return errors.New("login requires an interactive terminal")
	}

	client, err := api.NewClient(cfg.Gateway.BaseURL)
	if err != nil {
		return err
	}
	client = client.WithTimeout(time.Duration(cfg.Gateway.TimeoutSecs) * time.Second)

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	trail := openTrail(cfg, args)
	if trail != nil {
		defer trail.Close()
	}

	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := loginLimiter.Wait(ctx); err != nil {
			cancel()
			return err
		}
		cancel()

		email, err := line.Prompt("email: ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				return errors.New("login aborted")
			}
			return err
		}
		email = strings.TrimSpace(email)

		fmt.Print("password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}

		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
		user, err := client.Login(ctx, email, string(password))
		cancel()
		if err != nil {
			auditTrail(trail, email, storage.ActionLoginFailed, "", "")
			var apiErr *api.APIError
			switch {
			case errors.Is(err, api.ErrAuthFailed):
				fmt.Fprintln(os.Stderr, "Invalid email or password.")
			case api.IsRetryable(err):
				fmt.Fprintln(os.Stderr, "Cannot reach the gateway. Check api_url and your connection.")
			case errors.As(err, &apiErr):
				fmt.Fprintln(os.Stderr, apiErr.Message)
			default:
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}

		store := session.NewStore(session.Config{})
		store.SetCredentials(session.Identity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}, "")
		if files, ferr := session.NewFileStore(); ferr == nil {
			if serr := files.Save(store.Snapshot()); serr != nil && !args.Quiet {
				fmt.Fprintf(os.Stderr, "warning: session not saved: %v\n", serr)
			}
		}
		auditTrail(trail, user.Email, storage.ActionLogin, "", "")

		if !args.Quiet {
			fmt.Printf("Signed in as %s (%s).\n", user.Name, user.Role)
		}
		return nil
	}

	return fmt.Errorf("login failed after %d attempts", maxLoginAttempts)
}

// openTrail opens the audit database when auditing is enabled; failures
// are reported but never block the command.
func openTrail(cfg *config.Config, args Args) *storage.AuditTrail {
	if !cfg.Audit.Enabled {
		return nil
	}
	path := cfg.Audit.Path
	if path == "" {
		p, err := storage.DefaultPath()
		if err != nil {
			return nil
		}
		path = p
	}
	trail, err := storage.Open(path)
	if err != nil {
		if args.Verbose {
			fmt.Fprintf(os.Stderr, "warning: audit trail unavailable: %v\n", err)
		}
		return nil
	}
	return trail
}

// auditTrail records one entry, swallowing failures.
func auditTrail(trail *storage.AuditTrail, operator, action, target, detail string) {
	if trail == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = trail.Record(ctx, operator, action, target, detail)
}
