// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"testing"
	"time"

	"github.com/morganforge/banktui/internal/model"
	"github.com/morganforge/banktui/internal/session"
)

func authedState(role string) session.State {
	return session.State{
		User: &session.Identity{
			ID:    "usr-1",
			Name:  "Avery Quinn",
			Email: "avery@example.com",
			Role:  role,
		},
		Token:         "tok",
		Authenticated: true,
		LastActivity:  time.Now(),
	}
}

// =============================================================================
// GUARD TESTS
// =============================================================================

func TestEvaluate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	dash, _ := Lookup(Dashboard)

	got := Evaluate(session.State{}, dash)
	if got.Decision != RedirectToLogin {
		t.Fatalf("decision = %v, want redirect-to-login", got.Decision)
	}
	if got.From != Dashboard {
		t.Errorf("From = %q, want %q", got.From, Dashboard)
	}
}

func TestEvaluate_NonAdminOnAdminRoute(t *testing.T) {
	apps, _ := Lookup(Applications)

	got := Evaluate(authedState(model.RoleBanker), apps)
	if got.Decision != RedirectToUnauthorized {
		t.Errorf("banker on admin route = %v, want redirect-to-unauthorized", got.Decision)
	}
}

func TestEvaluate_AdminOnAdminRoute(t *testing.T) {
	apps, _ := Lookup(Applications)

	got := Evaluate(authedState(model.RoleAdmin), apps)
	if got.Decision != Allow {
		t.Errorf("admin on admin route = %v, want allow", got.Decision)
	}
}

func TestEvaluate_PublicRoutesAlwaysRender(t *testing.T) {
	login, _ := Lookup(Login)
	unauth, _ := Lookup(Unauthorized)

	for _, r := range []Route{login, unauth} {
		if got := Evaluate(session.State{}, r); got.Decision != Allow {
			t.Errorf("%s unauthenticated = %v, want allow", r.Name, got.Decision)
		}
		if got := Evaluate(authedState(model.RoleAdmin), r); got.Decision != Allow {
			t.Errorf("%s authenticated = %v, want allow", r.Name, got.Decision)
		}
	}
}

func TestEvaluate_Table(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		route Name
		want  Decision
	}{
		{"banker dashboard", authedState(model.RoleBanker), Dashboard, Allow},
		{"banker customers", authedState(model.RoleBanker), Customers, Allow},
		{"banker airdrop", authedState(model.RoleBanker), Airdrop, RedirectToUnauthorized},
		{"staff create-staff", authedState(model.RoleStaff), Staff, RedirectToUnauthorized},
		{"admin airdrop", authedState(model.RoleAdmin), Airdrop, Allow},
		{"admin staff", authedState(model.RoleAdmin), Staff, Allow},
		{"unauthenticated profile", session.State{}, Profile, RedirectToLogin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			route, ok := Lookup(tc.route)
			if !ok {
				t.Fatalf("route %q missing from table", tc.route)
			}
			if got := Evaluate(tc.state, route); got.Decision != tc.want {
				t.Errorf("decision = %v, want %v", got.Decision, tc.want)
			}
		})
	}
}

// =============================================================================
// TABLE TESTS
// =============================================================================

func TestLookup_UnknownRoute(t *testing.T) {
	if _, ok := Lookup("no-such-page"); ok {
		t.Error("Lookup of unknown name should report ok=false")
	}
}

func TestNavigable_FiltersByRole(t *testing.T) {
	for _, r := range Navigable(model.RoleBanker) {
		if r.RequireRole == model.RoleAdmin {
			t.Errorf("banker sidebar contains admin route %s", r.Name)
		}
		if r.Public {
			t.Errorf("sidebar contains public route %s", r.Name)
		}
	}

	admin := Navigable(model.RoleAdmin)
	found := false
	for _, r := range admin {
		if r.Name == Applications {
			found = true
		}
	}
	if !found {
		t.Error("admin sidebar missing pending applications")
	}
}
