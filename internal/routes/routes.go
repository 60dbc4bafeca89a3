// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import "github.com/morganforge/banktui/internal/model"

// =============================================================================
// ROUTE TABLE
// =============================================================================

// Name identifies a console page.
type Name string

const (
	Login        Name = "login"
	Dashboard    Name = "dashboard"
	Customers    Name = "customers"
	Transactions Name = "transactions"
	Accounts     Name = "accounts"
	Applications Name = "pending-applications"
	Airdrop      Name = "airdrop"
	Staff        Name = "staff"
	Profile      Name = "profile"
	Unauthorized Name = "unauthorized"
)

// Route describes one page and what it takes to visit it.
type Route struct {
	Name  Name
	Title string

	// Public routes need no session at all.
	Public bool

	// RequireRole, when set, restricts the route to that role on top of
	// requiring authentication.
	RequireRole string
}

// table is the full set of console pages. Order matters: it is the order
// pages appear in the navigation sidebar.
var table = []Route{
	{Name: Login, Title: "Sign In", Public: true},
	{Name: Dashboard, Title: "Dashboard"},
	{Name: Customers, Title: "Customers"},
	{Name: Transactions, Title: "Transactions"},
	{Name: Accounts, Title: "Accounts"},
	{Name: Applications, Title: "Pending Applications", RequireRole: model.RoleAdmin},
	{Name: Airdrop, Title: "Airdrop", RequireRole: model.RoleAdmin},
	{Name: Staff, Title: "Create Staff", RequireRole: model.RoleAdmin},
	{Name: Profile, Title: "Profile"},
	{Name: Unauthorized, Title: "Unauthorized", Public: true},
}

// All returns the route table in navigation order.
func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds a route by name. Unknown names report ok=false; callers
// treat those as a redirect to the dashboard rather than an error.
func Lookup(name Name) (Route, bool) {
	for _, r := range table {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Navigable returns the routes an operator with the given role can reach,
// in sidebar order. Login and the unauthorized page never appear in the
// sidebar.
func Navigable(role string) []Route {
	var out []Route
	for _, r := range table {
		if r.Public {
			continue
		}
		if r.RequireRole != "" && r.RequireRole != role {
			continue
		}
		out = append(out, r)
	}
	return out
}
