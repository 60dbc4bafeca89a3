// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/model"
	"github.com/morganforge/banktui/internal/routes"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
	"github.com/morganforge/banktui/internal/ui/components"
	"github.com/morganforge/banktui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SignedOutMsg tells the app root to return to the sign-in view. Expired
// is true when the inactivity watchdog forced the logout.
type SignedOutMsg struct {
	Expired bool
}

// pageDataMsg carries a finished page load.
type pageDataMsg struct {
	page routes.Name
	rows [][]string
	meta api.Meta
	err  error
}

// actionDoneMsg reports an approve/verify/airdrop/staff round trip.
type actionDoneMsg struct {
	page    routes.Name
	message string
	err     error
}

// dashboardMsg carries the dashboard totals.
type dashboardMsg struct {
	customers    int
	transactions int
	pending      int
	activity     []model.Activity
	err          error
}

// profileMsg carries the operator's own profile.
type profileMsg struct {
	user *model.User
	err  error
}

// activityMsg carries one user's backend activity log.
type activityMsg struct {
	userID  string
	entries []model.Activity
	err     error
}

// Profile page modes.
const (
	profileView = iota
	profileEdit
	profilePassword
)

// =============================================================================
// CONSOLE MODEL
// =============================================================================

// Model is the Bubble Tea model for the signed-in console.
type Model struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	store  *session.Store

	// monitor drives the inactivity warning/logout sequence. It lives
	// exactly as long as this view: the app root builds a fresh one per
	// sign-in and the tick loop stops on expiry or logout.
	monitor *session.Monitor

	// trail is the local audit log; nil when disabled in config.
	trail *storage.AuditTrail

	// Navigation
	current routes.Name
	nav     []routes.Route

	// Components
	header  components.Header
	status  components.StatusBar
	banner  components.Banner
	overlay components.TimeoutOverlay
	help    components.HelpOverlay
	table   components.Table

	// Page state
	loading bool
	meta    api.Meta
	page    int

	// Dashboard state
	dash dashboardMsg

	// Profile state. profileMode switches the page between the read view
	// and its two inline forms.
	profile     *model.User
	profileMode int

	// Applicant activity shown under the applications table
	activity    []model.Activity
	activityFor string

	// Forms (airdrop, create staff)
	form      []textinput.Model
	formFocus int
	formMsg   string

	width  int
	height int
}

// New assembles the console for a signed-in operator.
func New(theme *styles.Theme, cfg *config.Config, client *api.Client,
	store *session.Store, monitor *session.Monitor, trail *storage.AuditTrail) Model {

	snap := store.Snapshot()
	role := ""
	name := ""
	if snap.User != nil {
		role = snap.User.Role
		name = snap.User.Name
	}

	header := components.NewHeader(theme)
	header.SetOperator(name, role)

	m := Model{
		theme:   theme,
		cfg:     cfg,
		client:  client,
		store:   store,
		monitor: monitor,
		trail:   trail,
		current: routes.Dashboard,
		nav:     routes.Navigable(role),
		header:  header,
		status:  components.NewStatusBar(theme),
		banner:  components.NewBanner(theme),
		overlay: components.NewTimeoutOverlay(),
		help:    components.NewHelpOverlay(theme.IsDark),
		page:    1,
	}
	if route, ok := routes.Lookup(routes.Dashboard); ok {
		m.status.Page = route.Title
	}
	return m
}

// Init starts the watchdog tick loop and loads the dashboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(session.TickCmd(), m.loadCmd(routes.Dashboard))
}

// operatorEmail returns the signed-in operator's email for audit entries.
func (m Model) operatorEmail() string {
	if snap := m.store.Snapshot(); snap.User != nil {
		return snap.User.Email
	}
	return ""
}
