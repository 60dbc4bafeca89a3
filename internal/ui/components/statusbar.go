// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/ui/styles"
)

// StatusBar renders the bottom line: current page, session countdown when
// the warning window is near, and key hints.
type StatusBar struct {
	theme *styles.Theme
	width int

	Page      string
	Remaining time.Duration
	Warning   bool
	Hints     []Hint
}

// Hint is one key binding shown on the right of the bar.
type Hint struct {
	Key  string
	Desc string
}

// NewStatusBar creates a status bar with default hints.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{
		theme: theme,
		Hints: []Hint{
			{"tab", "next page"},
			{"r", "reload"},
			{"q", "quit"},
		},
	}
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders one status line.
func (s StatusBar) View() string {
	left := s.theme.StatusBadge.Render(s.Page)

	middle := ""
	if s.Warning {
		middle = s.theme.StatusWarn.Render(
			styles.StatusIndicators.Warning + " session " + session.FormatRemaining(s.Remaining))
	} else if s.Remaining > 0 {
		middle = s.theme.StatusOK.Render("session " + session.FormatRemaining(s.Remaining))
	}

	right := ""
	for i, h := range s.Hints {
		if i > 0 {
			right += "  "
		}
		right += s.theme.ShortcutKey.Render(h.Key) + " " + s.theme.ShortcutDesc.Render(h.Desc)
	}

	gap1 := (s.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 2) / 2
	if gap1 < 1 {
		gap1 = 1
	}
	spacer := lipgloss.NewStyle().Width(gap1).Render("")
	return s.theme.StatusBar.Width(s.width).Render(left + spacer + middle + spacer + right)
}
