// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for banktui.
//
// Configuration comes from ~/.banktui/config.toml with environment variable
// overrides and validation. The [session] timeouts can be hot-reloaded while
// the console runs.
package config
