package service

import (
	"context"
	"log/slog"

	"github.com/kavidoi/re-solve/internal/calculator"
	"github.com/kavidoi/re-solve/internal/storage"
)

// BalanceService aggregates pending shares into balance summaries.
// Settled expenses never contribute: settlement moves their shares to PAID.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetUserSummary computes what the user owes, what others owe the user, and
// the net position, over pending shares only.
func (s *BalanceService) GetUserSummary(ctx context.Context, userID string) (calculator.UserSummary, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return calculator.UserSummary{}, err
	}

	owed, err := s.store.GetPendingSharesByDebtor(ctx, userID)
	if err != nil {
		slog.Error("GetUserSummary failed to load owed shares", "user_id", userID, "error", err)
		return calculator.UserSummary{}, err
	}
	paid, err := s.store.GetPendingSharesByPayer(ctx, userID)
	if err != nil {
		slog.Error("GetUserSummary failed to load paid shares", "user_id", userID, "error", err)
		return calculator.UserSummary{}, err
	}

	summary := calculator.CalculateUserSummary(userID, shareLines(owed), shareLines(paid))
	slog.Info("User balance computed",
		"user_id", userID,
		"total_owed", summary.TotalOwed,
		"total_owed_to_you", summary.TotalOwedToYou,
	)
	return summary, nil
}

// GetGroupBalances computes per-member net positions over the group's
// pending shares plus a simplified list of debt edges.
func (s *BalanceService) GetGroupBalances(ctx context.Context, groupID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, nil, err
	}

	pending, err := s.store.GetPendingSharesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed to load shares", "group_id", groupID, "error", err)
		return nil, nil, err
	}

	members, edges := calculator.CalculateGroupBalances(shareLines(pending))
	slog.Info("Group balances computed",
		"group_id", groupID,
		"members_count", len(members),
		"edges_count", len(edges),
	)
	return members, edges, nil
}

func shareLines(balances []storage.ShareBalance) []calculator.ShareLine {
	lines := make([]calculator.ShareLine, len(balances))
	for i, b := range balances {
		lines[i] = calculator.ShareLine{
			DebtorID: b.DebtorID,
			PayerID:  b.PayerID,
			Amount:   b.Amount,
		}
	}
	return lines
}
