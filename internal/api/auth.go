// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/morganforge/banktui/internal/model"
)

// =============================================================================
// AUTHENTICATION
// =============================================================================

// LoginRequest carries the sign-in form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginData is the data member of a successful login envelope.
type loginData struct {
	User model.User `json:"user"`
}

// Login authenticates against the gateway. On success the session cookie
// lands in the jar and the signed-in user is returned; the caller decides
// what to do with it (this method never touches session state itself).
//
// A rejection surfaces as ErrAuthFailed or an *APIError carrying the
// gateway's message and per-field errors. SECURITY: the password is sent
// once and not retained.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var data loginData
	_, err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout tells the gateway to invalidate the session cookie. Best-effort:
// callers clear local state whether or not this succeeds.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// RefreshToken renews the session cookie. Implements the session store's
// Refresher interface; a failure means the session is unrecoverable.
func (c *Client) RefreshToken(ctx context.Context) error {
	return c.refresh(ctx)
}

// =============================================================================
// CURRENT OPERATOR
// =============================================================================

// UpdateProfileRequest carries editable profile fields. Empty fields are
// omitted so the gateway leaves them untouched.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
}

// GetProfile fetches the signed-in operator's profile.
func (c *Client) GetProfile(ctx context.Context) (*model.User, error) {
	var user model.User
	if _, err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits the signed-in operator's profile and returns the
// updated record.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*model.User, error) {
	var user model.User
	if _, err := c.do(ctx, http.MethodPut, "/users/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences edits the operator's preferences (theme, language,
// notifications) and returns the updated profile.
func (c *Client) UpdatePreferences(ctx context.Context, prefs model.Preferences) (*model.User, error) {
	var user model.User
	if _, err := c.do(ctx, http.MethodPut, "/users/me/preferences", prefs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the operator's password. The confirmation field
// is checked client-side; only current and new travel to the gateway.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{current, next}
	_, err := c.do(ctx, http.MethodPut, "/users/me/password", body, nil)
	return err
}

// RecentActivity lists the operator's own most recent activity entries.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 1
	}
	var entries []model.Activity
	path := "/users/me/activity?limit=" + strconv.Itoa(limit)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
