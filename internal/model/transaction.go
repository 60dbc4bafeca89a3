// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Transaction statuses used by the backend.
const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// TransactionAccount is the account summary embedded in a transaction.
type TransactionAccount struct {
	ID            string `json:"_id"`
	AccountNumber string `json:"accountNumber"`
}

// TransactionActor identifies who performed a transaction.
type TransactionActor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string             `json:"_id"`
	Account     TransactionAccount `json:"account"`
	Type        string             `json:"type"`
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	PerformedBy TransactionActor   `json:"performedBy"`
	Date        time.Time          `json:"date"`
	Reference   string             `json:"reference,omitempty"`
}
