// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/kavidoi/re-solve/internal/models"
)

// ErrNotFound is returned when a referenced user, group, expense or
// friendship identifier does not resolve. The API layer maps it to 404.
var ErrNotFound = errors.New("not found")

// ShareBalance is the minimal slice of a pending share needed for balance
// calculations: who owes, who paid the underlying expense, and how much.
type ShareBalance struct {
	DebtorID string
	PayerID  string
	Amount   decimal.Decimal
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID and user.CreatedAt fields
	// are populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if missing.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUsersByIDs retrieves the users for the given IDs in one batch.
	// IDs that do not resolve are silently dropped from the result.
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]*models.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateGroup persists a new group with its initial member set.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if missing.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupsByMember retrieves every group whose member set contains the
	// given user.
	GetGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// SearchGroups returns groups whose name contains the given pattern,
	// case-insensitively. Unordered.
	SearchGroups(ctx context.Context, namePattern string) ([]*models.Group, error)

	// UpdateGroup overwrites name and description. When replaceMembers is
	// true the membership set is fully replaced with group.MemberIDs;
	// otherwise membership is untouched. Returns ErrNotFound if missing.
	UpdateGroup(ctx context.Context, group *models.Group, replaceMembers bool) error

	// DeleteGroup removes the group and its membership rows. Expenses
	// referencing the group are left untouched. Deleting an absent group is
	// not an error.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember inserts the user into the group's member set.
	// Adding a present member is a no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// RemoveGroupMember removes the user from the group's member set.
	// Removing an absent member is a no-op.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// CreateExpense persists the expense and its shares in one transaction.
	// IDs, CreatedAt and statuses are populated by the store. The expense's
	// Shares field is left unpopulated; callers re-fetch to see shares.
	CreateExpense(ctx context.Context, expense *models.Expense, shares []models.ExpenseShare) error

	// GetExpense retrieves an expense with its shares attached.
	// Returns ErrNotFound if missing.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// GetExpensesByPayer retrieves all expenses paid by the given user,
	// shares attached. Unordered.
	GetExpensesByPayer(ctx context.Context, userID string) ([]*models.Expense, error)

	// GetExpensesByGroup retrieves all expenses attributed to the group,
	// regardless of payer.
	GetExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// GetExpensesByPayerAndDateRange retrieves the payer's expenses whose
	// creation timestamp lies within [start, end]. Both bounds inclusive.
	GetExpensesByPayerAndDateRange(ctx context.Context, userID string, start, end int64) ([]*models.Expense, error)

	// SettleExpense sets the expense to SETTLED and every one of its shares
	// to PAID, in one transaction. Returns ErrNotFound if the expense does
	// not exist. Re-settling rewrites the same terminal state.
	SettleExpense(ctx context.Context, expenseID string) error

	// DeleteExpense removes the expense; its shares cascade with it.
	// No settlement check is made and deleting an absent expense is not an
	// error.
	DeleteExpense(ctx context.Context, expenseID string) error

	// GetPendingSharesByDebtor returns pending shares where the user is the
	// debtor, joined with the payer of the owning expense.
	GetPendingSharesByDebtor(ctx context.Context, userID string) ([]ShareBalance, error)

	// GetPendingSharesByPayer returns pending shares on expenses the user
	// paid, joined with each share's debtor.
	GetPendingSharesByPayer(ctx context.Context, userID string) ([]ShareBalance, error)

	// GetPendingSharesByGroup returns pending shares on the group's
	// expenses.
	GetPendingSharesByGroup(ctx context.Context, groupID string) ([]ShareBalance, error)

	// CreateFriendship persists a new friendship request. The ID, CreatedAt
	// and Status fields are populated by the store.
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error

	// GetFriendship retrieves a friendship by ID. Returns ErrNotFound if
	// missing.
	GetFriendship(ctx context.Context, friendshipID string) (*models.Friendship, error)

	// GetFriendshipBetween retrieves the friendship linking the two users in
	// either direction. Returns ErrNotFound if none exists.
	GetFriendshipBetween(ctx context.Context, userA, userB string) (*models.Friendship, error)

	// UpdateFriendshipStatus sets the status of an existing friendship.
	// Returns ErrNotFound if missing.
	UpdateFriendshipStatus(ctx context.Context, friendshipID string, status models.FriendshipStatus) error

	// GetFriendsOfUser returns the users linked to the given user by an
	// ACCEPTED friendship, in either direction.
	GetFriendsOfUser(ctx context.Context, userID string) ([]*models.User, error)

	// GetPendingFriendRequests returns PENDING friendships where the user is
	// the recipient.
	GetPendingFriendRequests(ctx context.Context, userID string) ([]*models.Friendship, error)

	// Close releases any resources held by the store.
	Close() error
}
