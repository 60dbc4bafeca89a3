// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/routes"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
	"github.com/morganforge/banktui/internal/ui/components"
)

// signedOutDelay keeps the expired notice on screen long enough to read
// before the view flips back to sign-in.
const signedOutDelay = 2 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		m.overlay.SetSize(msg.Width, msg.Height)
		return m, nil

	// ======================== WATCHDOG ========================

	case session.TickMsg:
		m.status.Remaining = m.monitor.Remaining()
		m.status.Warning = m.monitor.Phase() == session.PhaseWarning
		if m.overlay.IsVisible() && !m.overlay.IsExpired() {
			m.overlay.UpdateTime(m.monitor.Remaining())
		}
		return m, m.monitor.HandleTick()

	case session.WarningMsg:
		m.overlay.Show(msg.Remaining)
		return m, nil

	case session.ExpiredMsg:
		return m.forceLogout()

	case session.ExtendedMsg:
		m.monitor.Dismiss()
		m.store.UpdateActivity()
		auditRecord(m.trail, m.operatorEmail(), storage.ActionSessionExtend, "", "")
		return m, nil

	case components.LogoutRequestedMsg:
		return m.logout()

	case SignedOutMsg:
		// Handled by the app root; nothing to do here.
		return m, nil

	// ======================== DATA ========================

	case pageDataMsg:
		if msg.page != m.current {
			return m, nil // stale load from a page we already left
		}
		m.loading = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		m.banner.Clear()
		m.table.SetRows(msg.rows)
		m.meta = msg.meta
		return m, nil

	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		m.banner.Clear()
		m.dash = msg
		return m, nil

	case profileMsg:
		m.loading = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		m.banner.Clear()
		m.profile = msg.user
		return m, nil

	case actionDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		m.banner.SetInfo(msg.message)
		m.formMsg = msg.message
		m.resetForm()
		switch msg.page {
		case routes.Applications:
			// Refresh the list so the handled application drops out.
			m.loading = true
			return m, m.loadCmd(routes.Applications)
		case routes.Profile:
			// Back to the read view, showing the saved record.
			m.profileMode = profileView
			m.form = nil
			m.loading = true
			return m, m.loadProfileCmd()
		}
		return m, nil

	case activityMsg:
		m.loading = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		m.activity = msg.entries
		m.activityFor = msg.userID
		return m, nil

	// ======================== INPUT ========================

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes one key press. Every key counts as operator activity.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The overlay owns the keyboard while visible.
	if m.overlay.IsVisible() {
		if m.overlay.IsExpired() {
			return m, nil
		}
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	m.store.UpdateActivity()
	m.monitor.Activity()
	m.status.Warning = false

	if m.help.IsVisible() {
		m.help.Toggle()
		return m, nil
	}

	switch msg.String() {
	case "q":
		if m.onForm() {
			break // "q" is a legitimate form character
		}
		return m.logout()

	case "?":
		if !m.onForm() {
			m.help.Toggle()
			return m, nil
		}

	case "tab":
		if m.onForm() {
			return m.cycleForm(1), nil
		}
		return m.navigateStep(1)

	case "shift+tab":
		if m.onForm() {
			return m.cycleForm(-1), nil
		}
		return m.navigateStep(-1)

	case "esc":
		if m.current == routes.Profile && m.profileMode != profileView {
			m.profileMode = profileView
			m.form = nil
			return m, nil
		}
		if m.onForm() || m.current == routes.Unauthorized {
			return m.navigate(routes.Dashboard)
		}

	case "r":
		if !m.onForm() {
			return m.reload()
		}

	case "n":
		if !m.onForm() && m.meta.Pages > m.page {
			m.page++
			return m.reload()
		}

	case "p":
		if !m.onForm() && m.page > 1 {
			m.page--
			return m.reload()
		}

	case "up", "k":
		if !m.onForm() {
			m.table.MoveUp()
			return m, nil
		}

	case "down", "j":
		if !m.onForm() {
			m.table.MoveDown()
			return m, nil
		}

	case "a":
		if m.current == routes.Applications {
			if row := m.table.SelectedRow(); row != nil {
				m.loading = true
				return m, m.approveCmd(row[0])
			}
		}

	case "v":
		if m.current == routes.Applications {
			if row := m.table.SelectedRow(); row != nil {
				m.loading = true
				return m, m.verifyCmd(row[0])
			}
		}

	case "i":
		if m.current == routes.Applications {
			if row := m.table.SelectedRow(); row != nil {
				m.loading = true
				return m, m.userActivityCmd(row[0])
			}
		}

	case "e":
		if m.current == routes.Profile && m.profileMode == profileView && m.profile != nil {
			m.profileMode = profileEdit
			m.form = newFormInputs("name", "phone number")
			m.form[0].SetValue(m.profile.Name)
			m.form[1].SetValue(m.profile.PhoneNumber)
			m.formFocus = 0
			return m, nil
		}

	case "w":
		if m.current == routes.Profile && m.profileMode == profileView {
			m.profileMode = profilePassword
			m.form = newFormInputs("current password", "new password", "confirm new password")
			for i := range m.form {
				m.form[i].EchoMode = textinput.EchoPassword
				m.form[i].EchoCharacter = '•'
			}
			m.formFocus = 0
			return m, nil
		}

	case "t":
		if m.current == routes.Profile && m.profileMode == profileView && m.profile != nil {
			prefs := m.profile.Preferences
			if prefs.Theme == "dark" {
				prefs.Theme = "light"
			} else {
				prefs.Theme = "dark"
			}
			m.loading = true
			return m, m.updatePreferencesCmd(prefs)
		}

	case "enter":
		if m.onForm() {
			return m.submitForm()
		}
	}

	// Remaining keys feed the focused form field, if any.
	if m.onForm() && len(m.form) > 0 {
		var cmd tea.Cmd
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// NAVIGATION
// =============================================================================

// onForm reports whether the focused widget is a form.
func (m Model) onForm() bool {
	if m.current == routes.Profile {
		return m.profileMode != profileView
	}
	return m.current == routes.Airdrop || m.current == routes.Staff
}

// navigateStep moves through the sidebar by offset.
func (m Model) navigateStep(offset int) (Model, tea.Cmd) {
	idx := 0
	for i, r := range m.nav {
		if r.Name == m.current {
			idx = i
			break
		}
	}
	idx = (idx + offset + len(m.nav)) % len(m.nav)
	return m.navigate(m.nav[idx].Name)
}

// navigate runs the guard and enters the route it allows. The guard is
// re-evaluated on every navigation, never cached.
func (m Model) navigate(name routes.Name) (Model, tea.Cmd) {
	route, ok := routes.Lookup(name)
	if !ok {
		route, _ = routes.Lookup(routes.Dashboard)
	}

	switch result := routes.Evaluate(m.store.Snapshot(), route); result.Decision {
	case routes.RedirectToLogin:
		return m, func() tea.Msg { return SignedOutMsg{} }
	case routes.RedirectToUnauthorized:
		m.current = routes.Unauthorized
		return m, nil
	}

	m.current = route.Name
	m.status.Page = route.Title
	m.page = 1
	m.meta = api.Meta{}
	m.banner.Clear()
	m.formMsg = ""
	m.setupPage()

	if cmd := m.loadCmd(route.Name); cmd != nil {
		m.loading = true
		return m, cmd
	}
	return m, nil
}

// reload refetches the current page.
func (m Model) reload() (Model, tea.Cmd) {
	if cmd := m.loadCmd(m.current); cmd != nil {
		m.loading = true
		m.banner.Clear()
		return m, cmd
	}
	return m, nil
}

// setupPage prepares the table columns or form fields for the new page.
func (m *Model) setupPage() {
	switch m.current {
	case routes.Customers:
		m.table = components.NewTable(m.theme, []components.Column{
			{Title: "Name", Width: 24}, {Title: "Email", Width: 28},
			{Title: "Application", Width: 12}, {Title: "Verified", Width: 8},
			{Title: "Joined", Width: 16},
		})
	case routes.Transactions:
		m.table = components.NewTable(m.theme, []components.Column{
			{Title: "Date", Width: 16}, {Title: "Account", Width: 14},
			{Title: "Type", Width: 10}, {Title: "Amount", Width: 14},
			{Title: "Status", Width: 10}, {Title: "By", Width: 18},
		})
	case routes.Accounts:
		m.table = components.NewTable(m.theme, []components.Column{
			{Title: "Account", Width: 14}, {Title: "Holder", Width: 24},
			{Title: "Type", Width: 10}, {Title: "Balance", Width: 18},
			{Title: "Status", Width: 10},
		})
	case routes.Applications:
		m.table = components.NewTable(m.theme, []components.Column{
			{Title: "ID", Width: 24}, {Title: "Name", Width: 22},
			{Title: "Email", Width: 26}, {Title: "Status", Width: 10},
			{Title: "Applied", Width: 16},
		})
		m.activity = nil
		m.activityFor = ""
	case routes.Airdrop:
		m.form = newFormInputs("account number", "amount", "reference")
		m.formFocus = 0
	case routes.Staff:
		m.table = components.NewTable(m.theme, []components.Column{
			{Title: "Name", Width: 24}, {Title: "Email", Width: 28},
			{Title: "Role", Width: 10}, {Title: "Joined", Width: 16},
		})
		m.form = newFormInputs("name", "email", "password", "role (staff/banker/admin)")
		m.form[2].EchoMode = textinput.EchoPassword
		m.form[2].EchoCharacter = '•'
		m.formFocus = 0
	case routes.Profile:
		m.profileMode = profileView
		m.form = nil
	}
}

func newFormInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, ph := range placeholders {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 120
		inputs[i] = in
	}
	inputs[0].Focus()
	return inputs
}

// cycleForm moves focus between form fields.
func (m Model) cycleForm(offset int) Model {
	m.form[m.formFocus].Blur()
	m.formFocus = (m.formFocus + offset + len(m.form)) % len(m.form)
	m.form[m.formFocus].Focus()
	return m
}

// resetForm clears the form after a successful submission.
func (m *Model) resetForm() {
	for i := range m.form {
		m.form[i].SetValue("")
	}
	if len(m.form) > 0 {
		m.formFocus = 0
	}
}

// submitForm validates and dispatches the current form.
func (m Model) submitForm() (Model, tea.Cmd) {
	switch m.current {
	case routes.Airdrop:
		amount, err := strconv.ParseFloat(strings.TrimSpace(m.form[1].Value()), 64)
		if err != nil {
			m.banner.SetError(&api.APIError{Status: 400, Message: "Amount must be a number"})
			return m, nil
		}
		req := api.AirdropRequest{
			AccountNumber: strings.TrimSpace(m.form[0].Value()),
			Amount:        amount,
			Reference:     strings.TrimSpace(m.form[2].Value()),
		}
		if fields := req.Validate(); fields != nil {
			m.banner.SetError(&api.APIError{Status: 400, Message: "Airdrop request invalid", Fields: fields})
			return m, nil
		}
		m.loading = true
		return m, m.airdropCmd(req)

	case routes.Staff:
		req := api.CreateStaffRequest{
			Name:     strings.TrimSpace(m.form[0].Value()),
			Email:    strings.TrimSpace(m.form[1].Value()),
			Password: m.form[2].Value(),
			Role:     strings.TrimSpace(m.form[3].Value()),
		}
		if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
			m.banner.SetError(&api.APIError{Status: 400, Message: "All fields are required"})
			return m, nil
		}
		m.loading = true
		return m, m.createStaffCmd(req)

	case routes.Profile:
		switch m.profileMode {
		case profileEdit:
			req := api.UpdateProfileRequest{
				Name:        strings.TrimSpace(m.form[0].Value()),
				PhoneNumber: strings.TrimSpace(m.form[1].Value()),
			}
			if req.Name == "" {
				m.banner.SetError(&api.APIError{Status: 400, Message: "Name is required"})
				return m, nil
			}
			m.loading = true
			return m, m.updateProfileCmd(req)

		case profilePassword:
			current := m.form[0].Value()
			next := m.form[1].Value()
			confirm := m.form[2].Value()
			if current == "" || next == "" {
				m.banner.SetError(&api.APIError{Status: 400, Message: "Current and new password are required"})
				return m, nil
			}
			if next != confirm {
				m.banner.SetError(&api.APIError{Status: 400, Message: "New passwords do not match"})
				return m, nil
			}
			m.loading = true
			return m, m.changePasswordCmd(current, next)
		}
	}
	return m, nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// logout is the voluntary path: clear local state, tell the gateway,
// return to sign-in.
func (m Model) logout() (Model, tea.Cmd) {
	auditRecord(m.trail, m.operatorEmail(), storage.ActionLogout, "", "")
	m.store.Logout()
	return m, tea.Batch(
		logoutCmd(m.client),
		func() tea.Msg { return SignedOutMsg{} },
	)
}

// forceLogout is the watchdog path: show the expired notice, clear local
// state, then return to sign-in after a beat.
func (m Model) forceLogout() (Model, tea.Cmd) {
	auditRecord(m.trail, m.operatorEmail(), storage.ActionSessionExpired, "", "")
	m.overlay.ShowExpired()
	m.store.Logout()
	return m, tea.Batch(
		logoutCmd(m.client),
		tea.Tick(signedOutDelay, func(time.Time) tea.Msg {
			return SignedOutMsg{Expired: true}
		}),
	)
}
