// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - configuration inspection and editing.
//
// Command: config [show|get|set]
// Short:   Configuration management
//
// set writes through Config.Save, so clamping and validation apply the
// same way they do at load time.
package cli

import (
	"fmt"
	"strconv"

	"github.com/morganforge/banktui/internal/config"
)

// HandleConfig runs the config subcommands.
func HandleConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg)
	case "get":
		return configGet(cfg, args.ConfigKey)
	case "set":
		return configSet(cfg, args.ConfigKey, args.ConfigVal)
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, get or set)", args.Subcommand)
	}
}

func configShow(cfg *config.Config) error {
	path, err := config.Path()
	if err == nil {
		fmt.Printf("# %s\n", path)
	}
	fmt.Printf("api_url      = %s\n", cfg.Gateway.BaseURL)
	fmt.Printf("warning_mins = %d\n", cfg.Session.WarningMins)
	fmt.Printf("expire_mins  = %d\n", cfg.Session.ExpireMins)
	fmt.Printf("theme        = %s\n", cfg.UI.Theme)
	fmt.Printf("page_size    = %d\n", cfg.UI.PageSize)
	fmt.Printf("audit        = %t\n", cfg.Audit.Enabled)
	return nil
}

func configGet(cfg *config.Config, key string) error {
	switch key {
	case "api_url":
		fmt.Println(cfg.Gateway.BaseURL)
	case "warning_mins":
		fmt.Println(cfg.Session.WarningMins)
	case "expire_mins":
		fmt.Println(cfg.Session.ExpireMins)
	case "theme":
		fmt.Println(cfg.UI.Theme)
	case "page_size":
		fmt.Println(cfg.UI.PageSize)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func configSet(cfg *config.Config, key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: banktui config set KEY VALUE")
	}

	switch key {
	case "api_url":
		cfg.Gateway.BaseURL = value
	case "warning_mins":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("warning_mins must be a number: %q", value)
		}
		cfg.Session.WarningMins = n
	case "expire_mins":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expire_mins must be a number: %q", value)
		}
		cfg.Session.ExpireMins = n
	case "theme":
		cfg.UI.Theme = value
	case "page_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("page_size must be a number: %q", value)
		}
		cfg.UI.PageSize = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	return configGet(cfg, key)
}
