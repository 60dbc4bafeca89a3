// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/config"
	"github.com/morganforge/banktui/internal/session"
	"github.com/morganforge/banktui/internal/storage"
	"github.com/morganforge/banktui/internal/ui/console"
	"github.com/morganforge/banktui/internal/ui/login"
	"github.com/morganforge/banktui/internal/ui/styles"
)

// =============================================================================
// SCHEDULE HOLDER
// =============================================================================

// scheduleHolder carries the live inactivity schedule across config
// reloads. The fsnotify watcher goroutine writes it; the app root reads it
// when building the next monitor, and the current monitor (if any) is
// re-armed in place.
type scheduleHolder struct {
	mu      sync.Mutex
	cfg     config.SessionConfig
	monitor *session.Monitor
}

func (h *scheduleHolder) apply(sc config.SessionConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = sc
	if h.monitor != nil {
		h.monitor.SetSchedule(
			time.Duration(sc.WarningMins)*time.Minute,
			time.Duration(sc.ExpireMins)*time.Minute,
		)
	}
}

func (h *scheduleHolder) attach(m *session.Monitor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.monitor = m
}

func (h *scheduleHolder) current() config.SessionConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// =============================================================================
// APP ROOT
// =============================================================================

type view int

const (
	viewLogin view = iota
	viewConsole
)

// App is the root Bubble Tea model. It owns the login/console switch; the
// console (and its inactivity monitor) is rebuilt fresh on every sign-in.
type App struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	files  *session.FileStore  // nil: no session persistence
	trail  *storage.AuditTrail // nil: audit disabled

	sched *scheduleHolder

	login   login.Model
	console console.Model
	active  view

	width  int
	height int
}

// NewApp assembles the root model. The session store must already carry
// any restored state; when it is authenticated the app opens on the
// console and validates the session with a silent refresh.
func NewApp(cfg *config.Config, client *api.Client, store *session.Store,
	files *session.FileStore, trail *storage.AuditTrail) *App {

	theme := styles.NewTheme(cfg.UI.Theme)
	a := &App{
		theme:  theme,
		cfg:    cfg,
		client: client,
		store:  store,
		files:  files,
		trail:  trail,
		sched:  &scheduleHolder{cfg: cfg.Session},
		login:  login.New(theme, client),
		active: viewLogin,
	}
	if store.IsAuthenticated() {
		a.mountConsole()
	}
	return a
}

// ApplySchedule is the config-watcher hook: it retimes the running
// monitor and every monitor built afterwards.
func (a *App) ApplySchedule(sc config.SessionConfig) {
	a.sched.apply(sc)
}

// mountConsole builds a fresh console view and monitor for the
// authenticated operator.
func (a *App) mountConsole() {
	sc := a.sched.current()
	monitor := session.NewMonitor(session.MonitorConfig{
		WarningAfter: time.Duration(sc.WarningMins) * time.Minute,
		ExpireAfter:  time.Duration(sc.ExpireMins) * time.Minute,
	})
	a.sched.attach(monitor)
	a.console = console.New(a.theme, a.cfg, a.client, a.store, monitor, a.trail)
	a.active = viewConsole
}

// saveSession persists the auth partition; best-effort.
func (a *App) saveSession() {
	if a.files != nil {
		_ = a.files.Save(a.store.Snapshot())
	}
}

func (a *App) auditRecord(action string) {
	if a.trail == nil {
		return
	}
	operator := ""
	if snap := a.store.Snapshot(); snap.User != nil {
		operator = snap.User.Email
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = a.trail.Record(ctx, operator, action, "", "")
}

// refreshCmd validates a restored session against the gateway. Refresh
// failure performs the full logout inside the store; the message just
// flips the view.
func (a *App) refreshCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := store.Refresh(ctx); err != nil {
			return console.SignedOutMsg{Expired: true}
		}
		return nil
	}
}

// =============================================================================
// TEA.MODEL
// =============================================================================

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.active == viewConsole {
		return tea.Batch(a.console.Init(), a.refreshCmd())
	}
	return a.login.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		// Both views get the size so a later switch renders correctly.
		a.login, _ = a.login.Update(msg)
		if a.active == viewConsole {
			a.console, _ = a.console.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if a.store.IsAuthenticated() {
				a.auditRecord(storage.ActionLogout)
				a.store.Logout()
				a.saveSession()
			}
			return a, tea.Quit
		}
		if a.active == viewLogin && msg.String() == "esc" {
			return a, tea.Quit
		}

	case login.SuccessMsg:
		user := msg.User
		a.store.SetCredentials(session.Identity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}, "")
		a.saveSession()
		a.auditRecord(storage.ActionLogin)
		a.mountConsole()
		size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
		var sized tea.Cmd
		a.console, sized = a.console.Update(size)
		return a, tea.Batch(a.console.Init(), sized)

	case console.SignedOutMsg:
		a.saveSession()
		a.login.Reset()
		if msg.Expired {
			a.login.ShowNotice("Your session expired. Please sign in again.")
		}
		a.active = viewLogin
		return a, a.login.Init()
	}

	var cmd tea.Cmd
	switch a.active {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewConsole:
		a.console, cmd = a.console.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.active == viewConsole {
		return a.console.View()
	}
	return a.login.View()
}
