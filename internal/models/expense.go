package models

import "github.com/shopspring/decimal"

// ExpenseStatus is the settlement state of an expense.
// The only transition is PENDING -> SETTLED; it is never reversed.
type ExpenseStatus string

const (
	ExpensePending ExpenseStatus = "PENDING"
	ExpenseSettled ExpenseStatus = "SETTLED"
)

// ShareStatus is the payment state of a single share.
// Shares move to PAID only when their expense is settled as a whole;
// there is no independent per-share payment.
type ShareStatus string

const (
	SharePending ShareStatus = "PENDING"
	SharePaid    ShareStatus = "PAID"
)

// Expense represents a shared cost paid by one user.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Dinner").
	Description string `json:"description"`

	// Amount is the full monetary amount of the expense.
	Amount decimal.Decimal `json:"amount"`

	// PaidByID is the user who paid. Required.
	PaidByID string `json:"paidBy"`

	// GroupID is the owning group, if any. The reference is stored as given
	// and is not re-validated against the group registry.
	GroupID string `json:"groupId,omitempty"`

	// Status is PENDING until the expense is settled.
	Status ExpenseStatus `json:"status"`

	// CreatedAt is the server-assigned Unix creation timestamp. Immutable.
	CreatedAt int64 `json:"createdAt"`

	// Shares are the per-user allocations of this expense. Populated by
	// storage on reads; creation returns the expense without them.
	Shares []ExpenseShare `json:"shares,omitempty"`
}

// ExpenseShare is the portion of an expense owed by one user.
//
// The sum of a expense's share amounts is deliberately not checked against
// the expense amount.
type ExpenseShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string `json:"id"`

	// ExpenseID is the owning expense. Shares are deleted with it.
	ExpenseID string `json:"expenseId"`

	// UserID is the debtor.
	UserID string `json:"userId"`

	// Amount is the owed portion.
	Amount decimal.Decimal `json:"amount"`

	// Status is PENDING until the owning expense is settled.
	Status ShareStatus `json:"status"`
}
