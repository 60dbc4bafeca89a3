// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - command-line parsing for banktui.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdAudit
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Limit      int

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `banktui - terminal console for the bank administration backend

Usage:
  banktui                    Start the console TUI (default)
  banktui login              Sign in from the terminal
  banktui logout             Sign out and clear the saved session
  banktui status, s          Show gateway and session status
  banktui config show        Show configuration
  banktui config get KEY     Print one configuration value
  banktui config set KEY VAL Set a configuration value
  banktui audit              Show recent local audit entries
    --limit N                Show last N entries (default: 50)
  banktui version            Show version information
  banktui help               Show this help

Config keys:
  api_url         Gateway origin (e.g. https://bank.example.com)
  warning_mins    Minutes of inactivity before the timeout warning
  expire_mins     Minutes of inactivity before forced logout
  theme           auto, dark, or light

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Environment:
  BANKTUI_API_URL, BANKTUI_WARNING_MINS, BANKTUI_EXPIRE_MINS, BANKTUI_THEME
  override the config file for one run.
`

// Parse reads os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is Parse over an explicit argument list.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "login", "signin":
		return CmdLogin, args

	case "logout", "signout":
		return CmdLogout, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "audit":
		parseAuditArgs(&args, remaining)
		return CmdAudit, args

	case "version", "-V", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "banktui: unknown command %q\n\n", cmd)
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts flags valid for every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	args := Args{Limit: 50}
	var remaining []string
	for _, a := range argv {
		switch a {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining, args
}

func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = remaining[0]
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

func parseAuditArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		switch remaining[i] {
		case "--limit", "-n":
			if i+1 < len(remaining) {
				if n, err := strconv.Atoi(remaining[i+1]); err == nil && n > 0 {
					args.Limit = n
				}
				i++
			}
		default:
			args.Subcommand = remaining[i]
		}
	}
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("banktui %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
