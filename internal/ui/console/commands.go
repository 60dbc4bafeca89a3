// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/banktui/internal/api"
	"github.com/morganforge/banktui/internal/model"
	"github.com/morganforge/banktui/internal/routes"
	"github.com/morganforge/banktui/internal/storage"
	"github.com/morganforge/banktui/internal/ui/components"
	"github.com/morganforge/banktui/internal/util"
)

// requestTimeout bounds every page load; the UI must never hang on a
// dead gateway.
const requestTimeout = 15 * time.Second

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// =============================================================================
// PAGE LOADERS
// =============================================================================

// loadCmd returns the loader for a data page; nil for form-only pages.
func (m Model) loadCmd(page routes.Name) tea.Cmd {
	params := api.ListParams{Page: m.page, Limit: m.cfg.UI.PageSize, Sort: "desc"}

	switch page {
	case routes.Dashboard:
		return m.loadDashboardCmd()
	case routes.Customers:
		return m.loadCustomersCmd(params)
	case routes.Transactions:
		return m.loadTransactionsCmd(params)
	case routes.Accounts:
		return m.loadAccountsCmd(params)
	case routes.Applications:
		return m.loadApplicationsCmd(params)
	case routes.Staff:
		return m.loadStaffCmd(params)
	case routes.Profile:
		return m.loadProfileCmd()
	default:
		return nil
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		var out dashboardMsg
		customers, err := client.ListCustomers(ctx, api.ListParams{Limit: 1})
		if err != nil {
			out.err = err
			return out
		}
		out.customers = customers.Meta.Total

		transactions, err := client.ListTransactions(ctx, api.ListParams{Limit: 1})
		if err != nil {
			out.err = err
			return out
		}
		out.transactions = transactions.Meta.Total

		pending, err := client.PendingApplications(ctx, 1, 1, "", "")
		if err != nil {
			out.err = err
			return out
		}
		out.pending = pending.Meta.Total

		// Recent own activity is decoration; ignore its failure.
		if activity, err := client.RecentActivity(ctx, 5); err == nil {
			out.activity = activity
		}
		return out
	}
}

func (m Model) loadCustomersCmd(params api.ListParams) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := client.ListCustomers(ctx, params)
		if err != nil {
			return pageDataMsg{page: routes.Customers, err: err}
		}
		rows := make([][]string, len(page.Items))
		for i, u := range page.Items {
			verified := "no"
			if u.IsVerified {
				verified = "yes"
			}
			rows[i] = []string{u.Name, u.Email, u.ApplicationStatus, verified, components.FormatDate(u.CreatedAt)}
		}
		return pageDataMsg{page: routes.Customers, rows: rows, meta: page.Meta}
	}
}

func (m Model) loadTransactionsCmd(params api.ListParams) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := client.ListTransactions(ctx, params)
		if err != nil {
			return pageDataMsg{page: routes.Transactions, err: err}
		}
		rows := make([][]string, len(page.Items))
		for i, tx := range page.Items {
			rows[i] = []string{
				components.FormatDate(tx.Date),
				tx.Account.AccountNumber,
				tx.Type,
				components.FormatAmount(tx.Amount, ""),
				tx.Status,
				tx.PerformedBy.Name,
			}
		}
		return pageDataMsg{page: routes.Transactions, rows: rows, meta: page.Meta}
	}
}

func (m Model) loadAccountsCmd(params api.ListParams) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := client.ListAccounts(ctx, params)
		if err != nil {
			return pageDataMsg{page: routes.Accounts, err: err}
		}
		rows := make([][]string, len(page.Items))
		for i, acct := range page.Items {
			rows[i] = []string{
				acct.AccountNumber,
				acct.HolderName(),
				acct.AccountType,
				components.FormatAmount(acct.Balance, acct.Currency),
				acct.Status,
			}
		}
		return pageDataMsg{page: routes.Accounts, rows: rows, meta: page.Meta}
	}
}

func (m Model) loadApplicationsCmd(params api.ListParams) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := client.PendingApplications(ctx, params.Page, params.Limit, "createdAt", "desc")
		if err != nil {
			return pageDataMsg{page: routes.Applications, err: err}
		}
		rows := make([][]string, len(page.Items))
		for i, app := range page.Items {
			rows[i] = []string{app.ID, app.Name, app.Email, app.ApplicationStatus, components.FormatDate(app.CreatedAt)}
		}
		return pageDataMsg{page: routes.Applications, rows: rows, meta: page.Meta}
	}
}

func (m Model) loadStaffCmd(params api.ListParams) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := client.ListStaff(ctx, params)
		if err != nil {
			return pageDataMsg{page: routes.Staff, err: err}
		}
		rows := make([][]string, len(page.Items))
		for i, u := range page.Items {
			rows[i] = []string{u.Name, u.Email, u.Role, components.FormatDate(u.CreatedAt)}
		}
		return pageDataMsg{page: routes.Staff, rows: rows, meta: page.Meta}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		user, err := client.GetProfile(ctx)
		return profileMsg{user: user, err: err}
	}
}

func (m Model) userActivityCmd(userID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		entries, err := client.UserActivity(ctx, userID, 10)
		return activityMsg{userID: userID, entries: entries, err: err}
	}
}

// =============================================================================
// PROFILE ACTIONS
// =============================================================================

func (m Model) updateProfileCmd(req api.UpdateProfileRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := client.UpdateProfile(ctx, req); err != nil {
			return actionDoneMsg{page: routes.Profile, err: err}
		}
		return actionDoneMsg{page: routes.Profile, message: "Profile updated"}
	}
}

func (m Model) updatePreferencesCmd(prefs model.Preferences) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := client.UpdatePreferences(ctx, prefs); err != nil {
			return actionDoneMsg{page: routes.Profile, err: err}
		}
		return actionDoneMsg{page: routes.Profile, message: "Preferences updated"}
	}
}

func (m Model) changePasswordCmd(current, next string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := client.ChangePassword(ctx, current, next); err != nil {
			return actionDoneMsg{page: routes.Profile, err: err}
		}
		return actionDoneMsg{page: routes.Profile, message: "Password changed"}
	}
}

// =============================================================================
// REVIEW ACTIONS
// =============================================================================

func (m Model) approveCmd(userID string) tea.Cmd {
	client, trail, operator := m.client, m.trail, m.operatorEmail()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := client.ApproveApplication(ctx, userID); err != nil {
			return actionDoneMsg{page: routes.Applications, err: err}
		}
		auditRecord(trail, operator, storage.ActionApprove, userID, "")
		return actionDoneMsg{page: routes.Applications, message: "Application approved"}
	}
}

func (m Model) verifyCmd(userID string) tea.Cmd {
	client, trail, operator := m.client, m.trail, m.operatorEmail()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := client.VerifyCustomer(ctx, userID); err != nil {
			return actionDoneMsg{page: routes.Applications, err: err}
		}
		auditRecord(trail, operator, storage.ActionVerify, userID, "")
		return actionDoneMsg{page: routes.Applications, message: "Customer verified"}
	}
}

func (m Model) airdropCmd(req api.AirdropRequest) tea.Cmd {
	client, trail, operator := m.client, m.trail, m.operatorEmail()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		account, err := client.Airdrop(ctx, req)
		if err != nil {
			return actionDoneMsg{page: routes.Airdrop, err: err}
		}
		auditRecord(trail, operator, storage.ActionAirdrop, req.AccountNumber,
			"amount="+util.FloatToString(req.Amount))
		return actionDoneMsg{
			page:    routes.Airdrop,
			message: "Credited " + components.FormatAmount(req.Amount, account.Currency) + " to " + account.AccountNumber,
		}
	}
}

func (m Model) createStaffCmd(req api.CreateStaffRequest) tea.Cmd {
	client, trail, operator := m.client, m.trail, m.operatorEmail()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		user, err := client.CreateStaff(ctx, req)
		if err != nil {
			return actionDoneMsg{page: routes.Staff, err: err}
		}
		auditRecord(trail, operator, storage.ActionStaffCreated, user.ID, "role="+req.Role)
		return actionDoneMsg{page: routes.Staff, message: "Staff account created for " + user.Email}
	}
}

// logoutCmd runs the gateway logout. Best-effort: local state is already
// cleared by the time this runs.
func logoutCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		_ = client.Logout(ctx)
		return nil
	}
}

// auditRecord appends to the local trail, swallowing failures: audit
// trouble must never block a banking action that already succeeded.
func auditRecord(trail *storage.AuditTrail, operator, action, target, detail string) {
	if trail == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = trail.Record(ctx, operator, action, target, detail)
}
