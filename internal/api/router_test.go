package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kavidoi/re-solve/internal/api/handlers"
	"github.com/kavidoi/re-solve/internal/calculator"
	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/service"
	"github.com/kavidoi/re-solve/internal/storage/sqlite"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "resolve-api-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewRouter(Services{
		Users:    service.NewUserService(store),
		Groups:   service.NewGroupService(store),
		Expenses: service.NewExpenseService(store),
		Balances: service.NewBalanceService(store),
		Friends:  service.NewFriendService(store),
	}, "*")
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func createUserViaAPI(t *testing.T, router http.Handler, username string) models.User {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/users", handlers.CreateUserPayload{
		Username: username,
		Password: "secret",
		Email:    username + "@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user %s: expected 201, got %d: %s", username, rec.Code, rec.Body)
	}

	var user models.User
	decodeBody(t, rec, &user)
	return user
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// TestExpenseLifecycle walks the primary workflow: build a group, record a
// split expense, settle it, then delete the group and confirm the expense
// survives with its group reference intact.
func TestExpenseLifecycle(t *testing.T) {
	router := newTestRouter(t)

	alice := createUserViaAPI(t, router, "alice")
	bob := createUserViaAPI(t, router, "bob")
	carol := createUserViaAPI(t, router, "carol")

	// Group with two members.
	rec := doRequest(t, router, http.MethodPost, "/api/groups", handlers.GroupPayload{
		Name:      "Apartment",
		MemberIDs: []string{alice.ID, bob.ID},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create group: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var group models.Group
	decodeBody(t, rec, &group)
	if len(group.MemberIDs) != 2 {
		t.Fatalf("group members: expected 2, got %d", len(group.MemberIDs))
	}

	// Third member joins.
	rec = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/members/%s", group.ID, carol.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add member: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	// Expense of 90 split three ways.
	rec = doRequest(t, router, http.MethodPost, "/api/expenses", handlers.CreateExpensePayload{
		Description: "Groceries",
		Amount:      mustDecimal(t, "90.00"),
		PaidBy:      alice.ID,
		GroupID:     group.ID,
		Shares: map[string]decimal.Decimal{
			alice.ID: mustDecimal(t, "30.00"),
			bob.ID:   mustDecimal(t, "30.00"),
			carol.ID: mustDecimal(t, "30.00"),
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create expense: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var expense models.Expense
	decodeBody(t, rec, &expense)
	if expense.Status != models.ExpensePending {
		t.Errorf("status: expected PENDING, got %s", expense.Status)
	}

	// Group listing returns the expense with all three shares PENDING.
	rec = doRequest(t, router, http.MethodGet, "/api/expenses/group/"+group.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list group expenses: expected 200, got %d", rec.Code)
	}
	var expenses []models.Expense
	decodeBody(t, rec, &expenses)
	if len(expenses) != 1 {
		t.Fatalf("group expenses: expected 1, got %d", len(expenses))
	}
	if len(expenses[0].Shares) != 3 {
		t.Fatalf("shares: expected 3, got %d", len(expenses[0].Shares))
	}
	for _, share := range expenses[0].Shares {
		if share.Status != models.SharePending {
			t.Errorf("share status: expected PENDING, got %s", share.Status)
		}
		if !share.Amount.Equal(mustDecimal(t, "30.00")) {
			t.Errorf("share amount: expected 30.00, got %s", share.Amount)
		}
	}

	// Settle.
	rec = doRequest(t, router, http.MethodPost, "/api/expenses/"+expense.ID+"/settle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("settle: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/expenses/group/"+group.ID, nil)
	decodeBody(t, rec, &expenses)
	if expenses[0].Status != models.ExpenseSettled {
		t.Errorf("status after settle: expected SETTLED, got %s", expenses[0].Status)
	}
	for _, share := range expenses[0].Shares {
		if share.Status != models.SharePaid {
			t.Errorf("share status after settle: expected PAID, got %s", share.Status)
		}
	}

	// Deleting the group leaves the expense behind with the old reference.
	rec = doRequest(t, router, http.MethodDelete, "/api/groups/"+group.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete group: expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/expenses/group/"+group.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list after group delete: expected 200, got %d", rec.Code)
	}
	decodeBody(t, rec, &expenses)
	if len(expenses) != 1 {
		t.Fatalf("expected expense to survive group deletion, got %d", len(expenses))
	}
	if expenses[0].GroupID != group.ID {
		t.Errorf("expected dangling group reference %s, got %q", group.ID, expenses[0].GroupID)
	}
}

func TestNotFoundResponses(t *testing.T) {
	router := newTestRouter(t)
	alice := createUserViaAPI(t, router, "alice")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"unknown user", http.MethodGet, "/api/users/no-such-user", nil},
		{"expenses of unknown user", http.MethodGet, "/api/expenses/user/no-such-user", nil},
		{"settle unknown expense", http.MethodPost, "/api/expenses/no-such-expense/settle", nil},
		{"add member to unknown group", http.MethodPost, "/api/groups/no-such-group/members/" + alice.ID, nil},
		{"update unknown group", http.MethodPut, "/api/groups/no-such-group", handlers.GroupPayload{Name: "x"}},
		{"balances of unknown user", http.MethodGet, "/api/balances/user/no-such-user", nil},
		{"expense with unknown payer", http.MethodPost, "/api/expenses", handlers.CreateExpensePayload{
			Description: "Taxi",
			Amount:      mustDecimal(t, "10.00"),
			PaidBy:      "no-such-user",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.body)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body)
			}
		})
	}

	t.Run("delete unknown expense succeeds", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/expenses/no-such-expense", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("delete unknown group succeeds", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/groups/no-such-group", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestDateRangeQuery(t *testing.T) {
	router := newTestRouter(t)
	alice := createUserViaAPI(t, router, "alice")

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet,
			"/api/expenses/user/"+alice.ID+"/date-range?start=yesterday&end=today", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns expenses inside the range", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/expenses", handlers.CreateExpensePayload{
			Description: "Coffee",
			Amount:      mustDecimal(t, "4.50"),
			PaidBy:      alice.ID,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("create expense: expected 200, got %d: %s", rec.Code, rec.Body)
		}

		rec = doRequest(t, router, http.MethodGet,
			"/api/expenses/user/"+alice.ID+"/date-range?start=2000-01-01T00:00:00Z&end=2100-01-01T00:00:00Z", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var expenses []models.Expense
		decodeBody(t, rec, &expenses)
		if len(expenses) != 1 {
			t.Errorf("expected 1 expense in range, got %d", len(expenses))
		}
	})
}

func TestBalanceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	alice := createUserViaAPI(t, router, "alice")
	bob := createUserViaAPI(t, router, "bob")

	rec := doRequest(t, router, http.MethodPost, "/api/groups", handlers.GroupPayload{
		Name:      "Dinner Club",
		MemberIDs: []string{alice.ID, bob.ID},
	})
	var group models.Group
	decodeBody(t, rec, &group)

	rec = doRequest(t, router, http.MethodPost, "/api/expenses", handlers.CreateExpensePayload{
		Description: "Sushi",
		Amount:      mustDecimal(t, "80.00"),
		PaidBy:      alice.ID,
		GroupID:     group.ID,
		Shares: map[string]decimal.Decimal{
			alice.ID: mustDecimal(t, "40.00"),
			bob.ID:   mustDecimal(t, "40.00"),
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create expense: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	t.Run("user summary counts pending shares", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/balances/user/"+bob.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var summary calculator.UserSummary
		decodeBody(t, rec, &summary)
		if !summary.TotalOwed.Equal(mustDecimal(t, "40.00")) {
			t.Errorf("TotalOwed: expected 40.00, got %s", summary.TotalOwed)
		}
		if !summary.NetBalance.Equal(mustDecimal(t, "-40.00")) {
			t.Errorf("NetBalance: expected -40.00, got %s", summary.NetBalance)
		}
	})

	t.Run("group balances simplify to one debt edge", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/balances/group/"+group.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var body handlers.GroupBalancesResponse
		decodeBody(t, rec, &body)
		if len(body.Debts) != 1 {
			t.Fatalf("debts: expected 1 edge, got %d", len(body.Debts))
		}
		if body.Debts[0].From != bob.ID || body.Debts[0].To != alice.ID {
			t.Errorf("expected bob -> alice, got %s -> %s", body.Debts[0].From, body.Debts[0].To)
		}
		if !body.Debts[0].Amount.Equal(mustDecimal(t, "40.00")) {
			t.Errorf("debt amount: expected 40.00, got %s", body.Debts[0].Amount)
		}
	})

	t.Run("settling clears the balances", func(t *testing.T) {
		var expenses []models.Expense
		rec := doRequest(t, router, http.MethodGet, "/api/expenses/group/"+group.ID, nil)
		decodeBody(t, rec, &expenses)
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}

		rec = doRequest(t, router, http.MethodPost, "/api/expenses/"+expenses[0].ID+"/settle", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("settle: expected 200, got %d", rec.Code)
		}

		rec = doRequest(t, router, http.MethodGet, "/api/balances/user/"+bob.ID, nil)
		var summary calculator.UserSummary
		decodeBody(t, rec, &summary)
		if !summary.TotalOwed.IsZero() {
			t.Errorf("TotalOwed after settle: expected 0, got %s", summary.TotalOwed)
		}
	})
}

func TestFriendshipFlow(t *testing.T) {
	router := newTestRouter(t)

	alice := createUserViaAPI(t, router, "alice")
	bob := createUserViaAPI(t, router, "bob")

	rec := doRequest(t, router, http.MethodPost, "/api/friends/request", handlers.FriendRequestPayload{
		RequesterID: alice.ID,
		RecipientID: bob.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("send request: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var friendship models.Friendship
	decodeBody(t, rec, &friendship)
	if friendship.Status != models.FriendshipPending {
		t.Errorf("status: expected PENDING, got %s", friendship.Status)
	}

	t.Run("self request is rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/friends/request", handlers.FriendRequestPayload{
			RequesterID: alice.ID,
			RecipientID: alice.ID,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate request is rejected either direction", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/friends/request", handlers.FriendRequestPayload{
			RequesterID: bob.ID,
			RecipientID: alice.ID,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("recipient sees the pending request", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/friends/user/"+bob.ID+"/pending", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var pending []models.Friendship
		decodeBody(t, rec, &pending)
		if len(pending) != 1 || pending[0].RequesterID != alice.ID {
			t.Errorf("expected alice's request pending for bob, got %d", len(pending))
		}
	})

	t.Run("accepting links both users", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost,
			"/api/friends/"+friendship.ID+"/respond", handlers.RespondPayload{Accept: true})
		if rec.Code != http.StatusOK {
			t.Fatalf("respond: expected 200, got %d: %s", rec.Code, rec.Body)
		}

		for _, tc := range []struct{ userID, friendID string }{
			{alice.ID, bob.ID},
			{bob.ID, alice.ID},
		} {
			rec := doRequest(t, router, http.MethodGet, "/api/friends/user/"+tc.userID, nil)
			var friends []models.User
			decodeBody(t, rec, &friends)
			if len(friends) != 1 || friends[0].ID != tc.friendID {
				t.Errorf("expected %s in friend list of %s", tc.friendID, tc.userID)
			}
		}
	})

	t.Run("responding twice is rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost,
			"/api/friends/"+friendship.ID+"/respond", handlers.RespondPayload{Accept: false})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %q", rec.Body.String())
	}
}
