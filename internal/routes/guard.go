// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import "github.com/morganforge/banktui/internal/session"

// =============================================================================
// ROUTE GUARD
// =============================================================================

// Decision is the guard's verdict on a navigation attempt.
type Decision int

const (
	// Allow renders the requested page.
	Allow Decision = iota
	// RedirectToLogin sends the operator to the sign-in page; Result.From
	// records where they were headed.
	RedirectToLogin
	// RedirectToUnauthorized shows the unauthorized page. The session
	// itself stays intact.
	RedirectToUnauthorized
)

// String returns the decision name for logs and tests.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToUnauthorized:
		return "redirect-to-unauthorized"
	default:
		return "unknown"
	}
}

// Result is the outcome of evaluating one navigation attempt.
type Result struct {
	Decision Decision

	// From is the route originally requested, carried through a login
	// redirect so a successful sign-in can return there.
	From Name
}

// Evaluate decides whether the session may visit the route. It is a pure
// function of the two inputs and is re-run on every navigation: guard
// decisions are never cached, so a logout or role change takes effect on
// the very next keypress.
//
// Checks run in order: public routes always render; unauthenticated
// operators go to sign-in with the destination preserved; authenticated
// operators lacking the required role see the unauthorized page.
func Evaluate(state session.State, route Route) Result {
	if route.Public {
		return Result{Decision: Allow}
	}

	if !state.Authenticated || state.User == nil {
		return Result{Decision: RedirectToLogin, From: route.Name}
	}

	if route.RequireRole != "" && state.User.Role != route.RequireRole {
		return Result{Decision: RedirectToUnauthorized}
	}

	return Result{Decision: Allow}
}
