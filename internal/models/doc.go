// Package models defines the core domain entities for the bill-splitting
// ledger.
//
// The entities mirror the relational layout:
//   - User: account in the user directory
//   - Group: named set of member users
//   - Expense: a shared cost paid by one user, optionally owned by a group
//   - ExpenseShare: the portion of an expense owed by one user
//   - Friendship: a directed friend request between two users
//
// # Design Principles
//
// 1. **Identifier references**: entities point at each other by ID string,
// never by embedded struct, so there are no reference cycles to serialize.
//
// 2. **Derived collections**: Group and User hold no collections of expenses
// or shares; those are derived by query. The one exception is Expense.Shares,
// which storage populates on reads because an expense exclusively owns its
// shares (they are created and deleted with it).
//
// 3. **Exact money**: monetary amounts are decimal.Decimal, never float64.
package models
