// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// ROLES
// =============================================================================

// Roles known to the administration backend.
const (
	RoleAdmin    = "admin"
	RoleBanker   = "banker"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// =============================================================================
// USER / CUSTOMER
// =============================================================================

// Address is a customer's postal address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Preferences holds a user's display and notification preferences.
type Preferences struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

// NextOfKin is the emergency contact recorded for a customer.
type NextOfKin struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// User is a full user record as returned by the backend. Staff and
// customers share the same shape; customer-only fields are optional.
type User struct {
	ID                string      `json:"_id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	PhoneNumber       string      `json:"phoneNumber,omitempty"`
	Role              string      `json:"role"`
	ApplicationStatus string      `json:"applicationStatus,omitempty"`
	IsVerified        bool        `json:"isVerified"`
	IsProfileComplete bool        `json:"isProfileComplete"`
	Address           Address     `json:"address,omitempty"`
	Preferences       Preferences `json:"preferences,omitempty"`
	NextOfKin         NextOfKin   `json:"nextOfKin,omitempty"`
	AccountType       string      `json:"accountType,omitempty"`
	DateOfBirth       string      `json:"dateOfBirth,omitempty"`
	IdentityNumber    string      `json:"identityNumber,omitempty"`
	Job               string      `json:"job,omitempty"`
	CreatedAt         time.Time   `json:"createdAt,omitempty"`
	UpdatedAt         time.Time   `json:"updatedAt,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
