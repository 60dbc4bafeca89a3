// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Account statuses used by the administration backend.
const (
	AccountActive  = "active"
	AccountFrozen  = "frozen"
	AccountClosed  = "closed"
	AccountDormant = "dormant"
	AccountPending = "pending"
)

// AccountHolder is the slim owner record embedded in an account. Nil when
// the account has been orphaned.
type AccountHolder struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Account is a bank account as the gateway reports it.
type Account struct {
	ID             string         `json:"_id"`
	User           *AccountHolder `json:"user"`
	AccountNumber  string         `json:"accountNumber"`
	AccountType    string         `json:"accountType"`
	Branch         string         `json:"branch"`
	Balance        float64        `json:"balance"`
	InterestRate   float64        `json:"interestRate"`
	Currency       string         `json:"currency"`
	Status         string         `json:"status"`
	DateOpened     time.Time      `json:"dateOpened"`
	OverdraftLimit float64        `json:"overdraftLimit"`
	MinimumBalance float64        `json:"minimumBalance"`
}

// HolderName returns the owner's name, or a placeholder for orphaned
// accounts so table rows never render empty.
func (a *Account) HolderName() string {
	if a.User == nil {
		return "(unassigned)"
	}
	return a.User.Name
}
