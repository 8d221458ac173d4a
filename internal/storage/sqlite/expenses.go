package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// CreateExpense persists the expense and its shares in one transaction.
// The expense's Shares field stays unpopulated; callers re-fetch to see
// shares attached.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, shares []models.ExpenseShare) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.Status = models.ExpensePending

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, paid_by_id, group_id, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount.String(),
		expense.PaidByID, nullable(expense.GroupID), expense.Status, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range shares {
		share := &shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.ExpenseID = expense.ID
		share.Status = models.SharePending

		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (id, expense_id, user_id, amount, status) VALUES (?, ?, ?, ?, ?)",
			share.ID, share.ExpenseID, share.UserID, share.Amount.String(), share.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID with its shares attached.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, paid_by_id, group_id, status, created_at FROM expenses WHERE id = ?",
		expenseID,
	)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Shares, err = s.loadShares(ctx, expense.ID); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpensesByPayer retrieves all expenses paid by the given user.
func (s *SQLiteStore) GetExpensesByPayer(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT id, description, amount, paid_by_id, group_id, status, created_at FROM expenses WHERE paid_by_id = ?",
		userID,
	)
}

// GetExpensesByGroup retrieves all expenses attributed to the group.
func (s *SQLiteStore) GetExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT id, description, amount, paid_by_id, group_id, status, created_at FROM expenses WHERE group_id = ?",
		groupID,
	)
}

// GetExpensesByPayerAndDateRange retrieves the payer's expenses created
// within [start, end]. Both bounds inclusive.
func (s *SQLiteStore) GetExpensesByPayerAndDateRange(ctx context.Context, userID string, start, end int64) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT id, description, amount, paid_by_id, group_id, status, created_at FROM expenses WHERE paid_by_id = ? AND created_at BETWEEN ? AND ?",
		userID, start, end,
	)
}

// SettleExpense marks the expense SETTLED and all of its shares PAID in one
// transaction. Re-settling rewrites the same terminal state.
func (s *SQLiteStore) SettleExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET status = ? WHERE id = ?",
		models.ExpenseSettled, expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read settle result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE expense_shares SET status = ? WHERE expense_id = ?",
		models.SharePaid, expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark shares paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes the expense; shares cascade via the foreign key.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// GetPendingSharesByDebtor returns pending shares owed by the user.
func (s *SQLiteStore) GetPendingSharesByDebtor(ctx context.Context, userID string) ([]storage.ShareBalance, error) {
	return s.queryShareBalances(ctx,
		`SELECT sh.user_id, e.paid_by_id, sh.amount
		 FROM expense_shares sh
		 JOIN expenses e ON e.id = sh.expense_id
		 WHERE sh.user_id = ? AND sh.status = ?`,
		userID, models.SharePending,
	)
}

// GetPendingSharesByPayer returns pending shares on expenses the user paid.
func (s *SQLiteStore) GetPendingSharesByPayer(ctx context.Context, userID string) ([]storage.ShareBalance, error) {
	return s.queryShareBalances(ctx,
		`SELECT sh.user_id, e.paid_by_id, sh.amount
		 FROM expense_shares sh
		 JOIN expenses e ON e.id = sh.expense_id
		 WHERE e.paid_by_id = ? AND sh.status = ?`,
		userID, models.SharePending,
	)
}

// GetPendingSharesByGroup returns pending shares on the group's expenses.
func (s *SQLiteStore) GetPendingSharesByGroup(ctx context.Context, groupID string) ([]storage.ShareBalance, error) {
	return s.queryShareBalances(ctx,
		`SELECT sh.user_id, e.paid_by_id, sh.amount
		 FROM expense_shares sh
		 JOIN expenses e ON e.id = sh.expense_id
		 WHERE e.group_id = ? AND sh.status = ?`,
		groupID, models.SharePending,
	)
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	var groupID sql.NullString
	err := row.Scan(&expense.ID, &expense.Description, &amount,
		&expense.PaidByID, &groupID, &expense.Status, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.GroupID = groupID.String
	if expense.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if expense.Shares, err = s.loadShares(ctx, expense.ID); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expenseID string) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, user_id, amount, status FROM expense_shares WHERE expense_id = ?",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var share models.ExpenseShare
		var amount string
		if err := rows.Scan(&share.ID, &share.ExpenseID, &share.UserID, &amount, &share.Status); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		if share.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}

func (s *SQLiteStore) queryShareBalances(ctx context.Context, query string, args ...any) ([]storage.ShareBalance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query share balances: %w", err)
	}
	defer rows.Close()

	var balances []storage.ShareBalance
	for rows.Next() {
		var balance storage.ShareBalance
		var amount string
		if err := rows.Scan(&balance.DebtorID, &balance.PayerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan share balance: %w", err)
		}
		if balance.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share balances: %w", err)
	}
	return balances, nil
}
