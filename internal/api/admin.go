// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/morganforge/banktui/internal/model"
)

// =============================================================================
// LIST QUERIES
// =============================================================================

// ListParams are the common pagination knobs on list endpoints.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string // "asc" or "desc"
	Status string
	Type   string
}

// values renders the params as a query string, defaulting page/limit the
// way the gateway expects.
func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Type != "" {
		v.Set("type", p.Type)
	}
	return v
}

// listPage fetches one page of a list endpoint and bundles items + meta.
func listPage[T any](ctx context.Context, c *Client, path string, query url.Values) (*Page[T], error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var items []T
	env, err := c.do(ctx, http.MethodGet, path, nil, &items)
	if err != nil {
		return nil, err
	}
	page := &Page[T]{Items: items}
	if env.Meta != nil {
		page.Meta = *env.Meta
	}
	return page, nil
}

// ListCustomers fetches one page of customer records.
func (c *Client) ListCustomers(ctx context.Context, params ListParams) (*Page[model.User], error) {
	return listPage[model.User](ctx, c, "/users/customers", params.values())
}

// ListTransactions fetches one page of transactions across all accounts,
// optionally filtered by status and type.
func (c *Client) ListTransactions(ctx context.Context, params ListParams) (*Page[model.Transaction], error) {
	return listPage[model.Transaction](ctx, c, "/transactions/all", params.values())
}

// ListAccounts fetches one page of bank accounts.
func (c *Client) ListAccounts(ctx context.Context, params ListParams) (*Page[model.Account], error) {
	return listPage[model.Account](ctx, c, "/accounts/all", params.values())
}

// ListStaff fetches the staff roster.
func (c *Client) ListStaff(ctx context.Context, params ListParams) (*Page[model.User], error) {
	return listPage[model.User](ctx, c, "/users/staff", params.values())
}

// PendingApplications fetches one page of account applications awaiting
// review. Sorting uses sortBy/order rather than the usual sort param.
func (c *Client) PendingApplications(ctx context.Context, page, limit int, sortBy, order string) (*Page[model.PendingApplication], error) {
	v := ListParams{Page: page, Limit: limit}.values()
	if sortBy != "" {
		v.Set("sortBy", sortBy)
	}
	if order != "" {
		v.Set("order", order)
	}
	return listPage[model.PendingApplication](ctx, c, "/admin/pending-applications", v)
}

// UserActivity fetches the activity log for one user.
func (c *Client) UserActivity(ctx context.Context, userID string, limit int) ([]model.Activity, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/users/activity/" + url.PathEscape(userID)
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var entries []model.Activity
	if _, err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// =============================================================================
// REVIEW ACTIONS
// =============================================================================

// ApproveApplication approves a pending account application.
func (c *Client) ApproveApplication(ctx context.Context, userID string) (*model.ApplicationAction, error) {
	return c.applicationAction(ctx, "/v2/admin/approve-application/", userID)
}

// VerifyCustomer marks a customer's identity as verified.
func (c *Client) VerifyCustomer(ctx context.Context, userID string) (*model.ApplicationAction, error) {
	return c.applicationAction(ctx, "/v2/admin/verify-customer/", userID)
}

func (c *Client) applicationAction(ctx context.Context, prefix, userID string) (*model.ApplicationAction, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	var action model.ApplicationAction
	if _, err := c.do(ctx, http.MethodPost, prefix+url.PathEscape(userID), nil, &action); err != nil {
		return nil, err
	}
	return &action, nil
}

// =============================================================================
// AIRDROP
// =============================================================================

// AirdropRequest credits an account out of thin air. Reference is free
// text the auditors use to trace the credit later.
type AirdropRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
	Reference     string  `json:"reference"`
}

var (
	accountNumberRe = regexp.MustCompile(`^\d+$`)
	amountRe        = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Validate applies the form rules before anything touches the wire:
// numeric account number, positive amount with at most two decimal
// places, non-empty reference.
func (r AirdropRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.AccountNumber == "" {
		fields["accountNumber"] = "Account number is required"
	} else if !accountNumberRe.MatchString(r.AccountNumber) {
		fields["accountNumber"] = "Account number must contain only numbers"
	}
	if r.Amount <= 0 {
		fields["amount"] = "Amount must be positive"
	} else if !amountRe.MatchString(strconv.FormatFloat(r.Amount, 'f', -1, 64)) {
		fields["amount"] = "Amount must have up to 2 decimal places"
	}
	if r.Reference == "" {
		fields["reference"] = "Please provide a reference for tracking"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Airdrop credits the target account. Validation failures are returned as
// an *APIError without a round trip.
func (c *Client) Airdrop(ctx context.Context, req AirdropRequest) (*model.Account, error) {
	if fields := req.Validate(); fields != nil {
		return nil, &APIError{
			Status:  http.StatusBadRequest,
			Message: "airdrop request invalid",
			Fields:  fields,
		}
	}

	var data struct {
		Account model.Account `json:"account"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/accounts/airdrop", req, &data); err != nil {
		return nil, err
	}
	return &data.Account, nil
}

// =============================================================================
// STAFF
// =============================================================================

// CreateStaffRequest carries the new-staff form. Password confirmation is
// a client-side check only.
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateStaff registers a new staff member and returns the created record.
func (c *Client) CreateStaff(ctx context.Context, req CreateStaffRequest) (*model.User, error) {
	if req.Role != model.RoleStaff && req.Role != model.RoleBanker && req.Role != model.RoleAdmin {
		return nil, fmt.Errorf("invalid staff role %q", req.Role)
	}
	var user model.User
	if _, err := c.do(ctx, http.MethodPost, "/admin/create-staff", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
