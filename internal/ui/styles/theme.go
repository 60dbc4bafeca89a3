// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the console. It detects the
// terminal's color capability once and hands pre-built styles to the
// views, so render paths never construct styles per frame.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Application container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Sidebar navigation
	Sidebar        lipgloss.Style
	NavItem        lipgloss.Style
	NavItemActive  lipgloss.Style
	NavItemBlocked lipgloss.Style

	// Tables
	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableRowAlt   lipgloss.Style
	TableSelected lipgloss.Style

	// Forms
	FormLabel   lipgloss.Style
	FormInput   lipgloss.Style
	FormError   lipgloss.Style
	FormHint    lipgloss.Style
	FormFocused lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusBadge  lipgloss.Style
	StatusOK     lipgloss.Style
	StatusWarn   lipgloss.Style
	StatusDanger lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Banners and overlays
	ErrorBox   lipgloss.Style
	WarningBox lipgloss.Style
	InfoBox    lipgloss.Style

	// Badges
	BadgeSuccess lipgloss.Style
	BadgePending lipgloss.Style
	BadgeFailed  lipgloss.Style
	BadgeAdmin   lipgloss.Style
	BadgeStaff   lipgloss.Style
}

// NewTheme creates a theme matched to the running terminal. The forced
// argument is the config's ui.theme value: "dark" or "light" overrides
// background detection, "auto" trusts termenv.
func NewTheme(forced string) *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	switch forced {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)
	t.NavItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.NavItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 1)
	t.NavItemBlocked = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.TableRowAlt = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.TableSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(16)
	t.FormInput = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.FormFocused = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1).
		Bold(true)
	t.StatusOK = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusWarn = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.StatusDanger = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Foreground(Rose).
		Padding(0, 1)
	t.WarningBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Foreground(Amber).
		Padding(0, 1)
	t.InfoBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.BadgeSuccess = lipgloss.NewStyle().Foreground(Emerald)
	t.BadgePending = lipgloss.NewStyle().Foreground(Amber)
	t.BadgeFailed = lipgloss.NewStyle().Foreground(Rose)
	t.BadgeAdmin = lipgloss.NewStyle().
		Foreground(RoleAdminFg).
		Background(RoleAdminBg).
		Padding(0, 1)
	t.BadgeStaff = lipgloss.NewStyle().
		Foreground(RoleStaffFg).
		Background(RoleStaffBg).
		Padding(0, 1)
}

// SetSize records the terminal dimensions for layout decisions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// RoleBadge returns the style for a role marker.
func (t *Theme) RoleBadge(role string) lipgloss.Style {
	if role == "admin" {
		return t.BadgeAdmin
	}
	return t.BadgeStaff
}

// StatusBadgeFor returns the style for a transaction or application state.
func (t *Theme) StatusBadgeFor(status string) lipgloss.Style {
	switch status {
	case "completed", "approved", "active", "success":
		return t.BadgeSuccess
	case "failed", "rejected", "frozen", "closed":
		return t.BadgeFailed
	default:
		return t.BadgePending
	}
}
