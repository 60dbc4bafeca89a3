// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the console manual shown on "?". Kept as markdown so
// the same text can go in the README verbatim.
const helpMarkdown = `# banktui

## Navigation

| Key | Action |
|-----|--------|
| tab / shift+tab | next / previous page |
| j / k, ↓ / ↑ | move selection |
| enter | open / confirm |
| r | reload current page |
| ? | toggle this help |
| q | sign out and quit |

## Pages

- **Dashboard** - totals and recent activity
- **Customers** - customer roster
- **Transactions** - ledger across all accounts
- **Accounts** - account list with balances
- **Pending Applications** - approve or verify (admin)
- **Airdrop** - credit an account (admin)
- **Create Staff** - register staff (admin)
- **Profile** - your own record

## Session

After 15 minutes without input a warning appears with a countdown;
any key keeps you signed in. At 30 minutes you are signed out.
`

// HelpOverlay renders the manual with glamour, styled to the terminal
// background. Rendering is done once on first use and cached.
type HelpOverlay struct {
	visible  bool
	rendered string
	dark     bool
}

// NewHelpOverlay creates a hidden help overlay.
func NewHelpOverlay(dark bool) HelpOverlay {
	return HelpOverlay{dark: dark}
}

// Toggle flips visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the help is showing.
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// View renders the manual.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}
	if h.rendered == "" {
		style := "light"
		if h.dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(76),
		)
		if err != nil {
			// Fall back to the raw markdown; still readable.
			h.rendered = helpMarkdown
			return h.rendered
		}
		out, err := r.Render(helpMarkdown)
		if err != nil {
			h.rendered = helpMarkdown
			return h.rendered
		}
		h.rendered = out
	}
	return h.rendered
}
