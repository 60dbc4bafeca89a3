// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/banktui/internal/ui/styles"
)

// Header renders the console title bar: brand on the left, the signed-in
// operator on the right.
type Header struct {
	theme *styles.Theme
	width int

	Title    string
	Operator string
	Role     string
}

// NewHeader creates a header with the product title.
func NewHeader(theme *styles.Theme) Header {
	return Header{theme: theme, Title: "banktui"}
}

// SetWidth sets the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetOperator records who is signed in; empty clears the identity.
func (h *Header) SetOperator(name, role string) {
	h.Operator = name
	h.Role = role
}

// View renders one header line.
func (h Header) View() string {
	left := h.theme.HeaderTitle.Render(h.Title)
	right := ""
	if h.Operator != "" {
		right = h.theme.HeaderMeta.Render(h.Operator) + " " +
			h.theme.RoleBadge(h.Role).Render(h.Role)
	}

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(h.width).Render(
		left + lipgloss.NewStyle().Width(gap).Render("") + right)
}
