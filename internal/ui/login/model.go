// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/model"
	"github.com/morganforge/banktui/internal/ui/components"
	"github.com/morganforge/banktui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SuccessMsg reports a completed sign-in. The app root swaps to the
// console view and seeds the session store.
type SuccessMsg struct {
	User *model.User
}

// resultMsg is the internal outcome of one login attempt.
type resultMsg struct {
	user *model.User
	err  error
}

// =============================================================================
// LOGIN MODEL
// =============================================================================

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Model is the Bubble Tea model for the sign-in view.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	inputs  [fieldCount]textinput.Model
	focused int

	banner  components.Banner
	busy    bool
	lastTry struct {
		email    string
		password string
	}

	width  int
	height int
}

// New creates the sign-in view.
func New(theme *styles.Theme, client *api.Client) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := Model{
		theme:  theme,
		client: client,
		banner: components.NewBanner(theme),
	}
	m.inputs[fieldEmail] = email
	m.inputs[fieldPassword] = password
	return m
}

// Reset clears the form for a fresh sign-in after logout.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = fieldEmail
	m.inputs[fieldEmail].Focus()
	m.banner.Clear()
	m.busy = false
}

// ShowNotice displays an informational banner. The app root uses it to
// explain a forced return to sign-in (session expiry).
func (m *Model) ShowNotice(message string) {
	m.banner.SetInfo(message)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// attemptCmd runs one login round trip off the UI goroutine.
func attemptCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		user, err := client.Login(ctx, email, password)
		return resultMsg{user: user, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.banner.SetError(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return SuccessMsg{User: msg.user} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focused].Blur()
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focused = (m.focused + fieldCount - 1) % fieldCount
			} else {
				m.focused = (m.focused + 1) % fieldCount
			}
			m.inputs[m.focused].Focus()
			return m, nil

		case "enter":
			return m.submit()

		case "ctrl+r":
			// Retry only makes sense for transport trouble; a rejection
			// will fail identically until the form changes.
			if m.banner.IsRetryable() {
				return m.retry()
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	if email == "" || password == "" {
		m.banner.SetError(&api.APIError{Status: 400, Message: "Email and password are required"})
		return m, nil
	}

	m.busy = true
	m.banner.Clear()
	m.lastTry.email = email
	m.lastTry.password = password
	return m, attemptCmd(m.client, email, password)
}

func (m Model) retry() (Model, tea.Cmd) {
	m.busy = true
	m.banner.Clear()
	return m, attemptCmd(m.client, m.lastTry.email, m.lastTry.password)
}

// View implements tea.Model.
func (m Model) View() string {
	var parts []string

	title := lipgloss.NewStyle().
		Foreground(styles.Indigo).
		Bold(true).
		Render("banktui · sign in")
	parts = append(parts, title, "")

	labels := [fieldCount]string{"Email", "Password"}
	for i := range m.inputs {
		label := m.theme.FormLabel.Render(labels[i])
		if i == m.focused {
			label = m.theme.FormFocused.Width(16).Render(labels[i])
		}
		parts = append(parts, label+m.inputs[i].View())
	}
	parts = append(parts, "")

	if m.busy {
		parts = append(parts, m.theme.FormHint.Render("Signing in..."))
	} else if m.banner.HasMessage() {
		parts = append(parts, m.banner.View())
		if m.banner.IsRetryable() {
			parts = append(parts, m.theme.FormHint.Render("ctrl+r to retry"))
		}
	} else {
		parts = append(parts, m.theme.FormHint.Render("enter to sign in"))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	width := m.width
	if width == 0 {
		width = 80
	}
	height := m.height
	if height == 0 {
		height = 24
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
