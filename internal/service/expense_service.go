package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// ExpenseService owns expense records and their per-user share allocation.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense resolves the payer and every share user, then persists the
// expense with a PENDING share per (user, amount) pair.
//
// Deliberately permissive: amounts are not checked for sign, share amounts
// are not checked against the expense amount, and the group reference is
// stored without being resolved. The returned expense carries no shares;
// callers re-fetch to see them.
func (s *ExpenseService) CreateExpense(ctx context.Context, description string, amount decimal.Decimal, payerID, groupID string, shares map[string]decimal.Decimal) (*models.Expense, error) {
	payer, err := s.store.GetUser(ctx, payerID)
	if err != nil {
		slog.Error("CreateExpense failed to resolve payer", "payer_id", payerID, "error", err)
		return nil, err
	}

	shareRows := make([]models.ExpenseShare, 0, len(shares))
	for userID, owed := range shares {
		if _, err := s.store.GetUser(ctx, userID); err != nil {
			slog.Error("CreateExpense failed to resolve share user", "user_id", userID, "error", err)
			return nil, err
		}
		shareRows = append(shareRows, models.ExpenseShare{UserID: userID, Amount: owed})
	}

	expense := &models.Expense{
		Description: description,
		Amount:      amount,
		PaidByID:    payer.ID,
		GroupID:     groupID,
	}
	if err := s.store.CreateExpense(ctx, expense, shareRows); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"payer_id", payer.ID,
		"amount", amount,
		"shares_count", len(shareRows),
	)
	return expense, nil
}

// GetExpensesByUser returns all expenses where the user is the payer.
func (s *ExpenseService) GetExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetExpensesByPayer(ctx, userID)
}

// GetExpensesByGroup returns all expenses attributed to the group,
// regardless of payer.
func (s *ExpenseService) GetExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.store.GetExpensesByGroup(ctx, groupID)
}

// GetExpensesByUserAndDateRange returns the payer's expenses created within
// [start, end]. Both bounds inclusive.
func (s *ExpenseService) GetExpensesByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]*models.Expense, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetExpensesByPayerAndDateRange(ctx, userID, start.Unix(), end.Unix())
}

// SettleExpense transitions the expense to SETTLED and every one of its
// shares to PAID. Re-settling an already-settled expense rewrites the same
// terminal state.
func (s *ExpenseService) SettleExpense(ctx context.Context, expenseID string) error {
	if err := s.store.SettleExpense(ctx, expenseID); err != nil {
		slog.Error("SettleExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	slog.Info("Expense settled", "expense_id", expenseID)
	return nil
}

// DeleteExpense removes the expense and, through ownership, its shares.
// No settlement check is made.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}
