// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

// =============================================================================
// PARSING
// =============================================================================

func TestParseArgs_DefaultsToTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Fatalf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"signin"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"audit"}, CmdAudit},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"frobnicate"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := ParseArgs(tt.argv)
		if cmd != tt.want {
			t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"-q", "status", "--verbose"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.Quiet || !args.Verbose {
		t.Fatalf("flags not parsed: %+v", args)
	}
}

func TestParseArgs_ConfigSetCollectsKeyAndValue(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "api_url", "https://bank.example.com"})
	if args.Subcommand != "set" || args.ConfigKey != "api_url" {
		t.Fatalf("args = %+v", args)
	}
	if args.ConfigVal != "https://bank.example.com" {
		t.Fatalf("ConfigVal = %q", args.ConfigVal)
	}
}

func TestParseArgs_ConfigDefaultsToShow(t *testing.T) {
	_, args := ParseArgs([]string{"config"})
	if args.Subcommand != "show" {
		t.Fatalf("Subcommand = %q, want show", args.Subcommand)
	}
}

func TestParseArgs_AuditLimit(t *testing.T) {
	_, args := ParseArgs([]string{"audit", "--limit", "10"})
	if args.Limit != 10 {
		t.Fatalf("Limit = %d, want 10", args.Limit)
	}

	_, args = ParseArgs([]string{"audit"})
	if args.Limit != 50 {
		t.Fatalf("default Limit = %d, want 50", args.Limit)
	}

	_, args = ParseArgs([]string{"audit", "--limit", "junk"})
	if args.Limit != 50 {
		t.Fatalf("bad limit should keep default, got %d", args.Limit)
	}
}
