package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kavidoi/re-solve/internal/calculator"
	"github.com/kavidoi/re-solve/internal/service"
)

// BalanceHandler handles HTTP requests for balance summaries.
type BalanceHandler struct {
	balances *service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balances *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// GroupBalancesResponse is the body for group balance queries.
type GroupBalancesResponse struct {
	GroupID string                     `json:"groupId"`
	Members []calculator.MemberBalance `json:"members"`
	Debts   []calculator.DebtEdge      `json:"debts"`
}

// GetUserSummary handles GET /api/balances/user/{userId}.
func (h *BalanceHandler) GetUserSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	summary, err := h.balances.GetUserSummary(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetGroupBalances handles GET /api/balances/group/{groupId}.
func (h *BalanceHandler) GetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	members, debts, err := h.balances.GetGroupBalances(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	if members == nil {
		members = []calculator.MemberBalance{}
	}
	if debts == nil {
		debts = []calculator.DebtEdge{}
	}
	respondJSON(w, http.StatusOK, GroupBalancesResponse{
		GroupID: groupID,
		Members: members,
		Debts:   debts,
	})
}
