// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Application statuses for new-customer onboarding.
const (
	AppStatusPending  = "pending"
	AppStatusApproved = "approved"
	AppStatusRejected = "rejected"
)

// PendingApplication is a customer application awaiting review.
type PendingApplication struct {
	ID                string    `json:"_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber,omitempty"`
	IdentityNumber    string    `json:"identityNumber,omitempty"`
	ApplicationStatus string    `json:"applicationStatus"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// ApplicationAction is the backend's acknowledgement of an
// approve/verify action on an application.
type ApplicationAction struct {
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}
