package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/service"
)

// ExpenseHandler handles HTTP requests for the expense ledger.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// CreateExpensePayload is the request body for expense creation.
type CreateExpensePayload struct {
	Description string                     `json:"description"`
	Amount      decimal.Decimal            `json:"amount"`
	PaidBy      string                     `json:"paidBy"`
	GroupID     string                     `json:"groupId"`
	Shares      map[string]decimal.Decimal `json:"shares"`
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateExpensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(),
		payload.Description, payload.Amount, payload.PaidBy, payload.GroupID, payload.Shares)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

// GetByUser handles GET /api/expenses/user/{userId}.
func (h *ExpenseHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	expenses, err := h.expenses.GetExpensesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenseList(expenses))
}

// GetByGroup handles GET /api/expenses/group/{groupId}.
func (h *ExpenseHandler) GetByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	expenses, err := h.expenses.GetExpensesByGroup(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenseList(expenses))
}

// GetByDateRange handles GET /api/expenses/user/{userId}/date-range.
// Bounds are RFC 3339 timestamps; both are inclusive.
func (h *ExpenseHandler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		badRequest(w, "invalid start timestamp, expected RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		badRequest(w, "invalid end timestamp, expected RFC 3339")
		return
	}

	expenses, err := h.expenses.GetExpensesByUserAndDateRange(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenseList(expenses))
}

// Settle handles POST /api/expenses/{expenseId}/settle.
func (h *ExpenseHandler) Settle(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")
	if err := h.expenses.SettleExpense(r.Context(), expenseID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /api/expenses/{expenseId}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")
	if err := h.expenses.DeleteExpense(r.Context(), expenseID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func expenseList(expenses []*models.Expense) []*models.Expense {
	if expenses == nil {
		return []*models.Expense{}
	}
	return expenses
}
