// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/banktui/internal/routes"
	"github.com/morganforge/banktui/internal/ui/components"
)

const sidebarWidth = 24

// View implements tea.Model.
func (m Model) View() string {
	// Full-screen overlays replace the console entirely.
	if m.overlay.IsVisible() {
		return m.overlay.View()
	}
	if m.help.IsVisible() {
		return m.help.View()
	}

	header := m.header.View()
	status := m.status.View()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	sidebar := m.theme.Sidebar.Height(bodyHeight).Render(m.viewSidebar())
	content := lipgloss.NewStyle().
		Width(m.width - sidebarWidth - 2).
		Height(bodyHeight).
		Padding(0, 1).
		Render(m.viewContent())

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// viewSidebar renders the navigation list.
func (m Model) viewSidebar() string {
	var b strings.Builder
	for _, route := range m.nav {
		label := route.Title
		switch {
		case route.Name == m.current:
			b.WriteString(m.theme.NavItemActive.Width(sidebarWidth - 2).Render("▸ " + label))
		default:
			b.WriteString(m.theme.NavItem.Width(sidebarWidth - 2).Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// viewContent renders the current page.
func (m Model) viewContent() string {
	var sections []string

	if m.banner.HasMessage() {
		sections = append(sections, m.banner.View())
	}
	if m.loading {
		sections = append(sections, m.theme.FormHint.Render("Loading..."))
	}

	switch m.current {
	case routes.Dashboard:
		sections = append(sections, m.viewDashboard())
	case routes.Customers, routes.Transactions, routes.Accounts:
		sections = append(sections, m.viewTable())
	case routes.Applications:
		sections = append(sections, m.viewTable(),
			m.theme.FormHint.Render("a approve · v verify · i activity · n/p page"))
		if m.activityFor != "" {
			sections = append(sections, m.viewActivity())
		}
	case routes.Airdrop:
		sections = append(sections, m.viewForm("Airdrop funds"))
	case routes.Staff:
		sections = append(sections, m.viewTable(), "",
			m.viewForm("Create staff account"))
	case routes.Profile:
		switch m.profileMode {
		case profileEdit:
			sections = append(sections, m.viewForm("Edit profile"))
		case profilePassword:
			sections = append(sections, m.viewForm("Change password"))
		default:
			sections = append(sections, m.viewProfile())
		}
	case routes.Unauthorized:
		sections = append(sections, m.viewUnauthorized())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewDashboard() string {
	stat := func(label string, n int) string {
		return m.theme.InfoBox.Render(
			m.theme.HeaderTitle.Render(components.FormatCount(n)) + "\n" +
				m.theme.FormLabel.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Customers", m.dash.customers),
		" ",
		stat("Transactions", m.dash.transactions),
		" ",
		stat("Pending applications", m.dash.pending),
	)

	var b strings.Builder
	b.WriteString(row)
	if len(m.dash.activity) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.theme.FormLabel.Render("Recent activity"))
		b.WriteString("\n")
		for _, a := range m.dash.activity {
			line := components.FormatDate(a.CreatedAt) + "  " + a.Action
			if a.Details != "" {
				line += " · " + a.Details
			}
			b.WriteString(m.theme.TableRow.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewTable() string {
	out := m.table.View()
	if m.meta.Pages > 1 {
		out += "\n" + m.theme.FormHint.Render(
			"page "+components.FormatCount(m.meta.Page)+" of "+components.FormatCount(m.meta.Pages)+
				" · "+components.FormatCount(m.meta.Total)+" total")
	}
	return out
}

func (m Model) viewForm(title string) string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")
	for i, in := range m.form {
		label := in.Placeholder
		if i == m.formFocus {
			b.WriteString(m.theme.FormFocused.Render(label))
		} else {
			b.WriteString(m.theme.FormLabel.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.theme.FormInput.Render(in.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.formMsg != "" {
		b.WriteString(m.theme.StatusOK.Render(m.formMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.FormHint.Render("tab next field · enter submit"))
	return b.String()
}

func (m Model) viewProfile() string {
	if m.profile == nil {
		return m.theme.FormHint.Render("Loading profile...")
	}
	u := m.profile
	field := func(label, value string) string {
		if value == "" {
			value = "—"
		}
		return m.theme.FormLabel.Render(label+": ") + m.theme.TableRow.Render(value)
	}
	lines := []string{
		m.theme.HeaderTitle.Render(u.Name) + " " + m.theme.RoleBadge(u.Role).Render(u.Role),
		"",
		field("Email", u.Email),
		field("Phone", u.PhoneNumber),
		field("Theme", u.Preferences.Theme),
		field("Language", u.Preferences.Language),
		field("Member since", components.FormatDate(u.CreatedAt)),
		"",
		m.theme.FormHint.Render("e edit · t toggle theme · w change password"),
	}
	return strings.Join(lines, "\n")
}

// viewActivity renders the selected applicant's recent backend activity.
func (m Model) viewActivity() string {
	var b strings.Builder
	b.WriteString(m.theme.FormLabel.Render("Activity — " + m.activityFor))
	b.WriteString("\n")
	if len(m.activity) == 0 {
		b.WriteString(m.theme.FormHint.Render("(no recorded activity)"))
		return b.String()
	}
	for _, a := range m.activity {
		line := components.FormatDate(a.CreatedAt) + "  " + a.Action + "  " + a.Status
		if a.Details != "" {
			line += " · " + a.Details
		}
		b.WriteString(m.theme.TableRow.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewUnauthorized() string {
	return m.theme.ErrorBox.Render(
		"Access denied\n\nThis area requires administrator access.\nUse tab to return to an allowed page.")
}
