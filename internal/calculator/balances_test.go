package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCalculateUserSummary(t *testing.T) {
	owed := []ShareLine{
		{DebtorID: "alice", PayerID: "bob", Amount: dec(t, "30.00")},
		{DebtorID: "alice", PayerID: "carol", Amount: dec(t, "12.50")},
		// Alice's share of an expense she paid herself nets out.
		{DebtorID: "alice", PayerID: "alice", Amount: dec(t, "10.00")},
	}
	paid := []ShareLine{
		{DebtorID: "bob", PayerID: "alice", Amount: dec(t, "20.00")},
		{DebtorID: "carol", PayerID: "alice", Amount: dec(t, "5.25")},
		{DebtorID: "alice", PayerID: "alice", Amount: dec(t, "10.00")},
	}

	summary := CalculateUserSummary("alice", owed, paid)

	if !summary.TotalOwed.Equal(dec(t, "42.50")) {
		t.Errorf("TotalOwed: expected 42.50, got %s", summary.TotalOwed)
	}
	if !summary.TotalOwedToYou.Equal(dec(t, "25.25")) {
		t.Errorf("TotalOwedToYou: expected 25.25, got %s", summary.TotalOwedToYou)
	}
	if !summary.NetBalance.Equal(dec(t, "-17.25")) {
		t.Errorf("NetBalance: expected -17.25, got %s", summary.NetBalance)
	}
}

func TestCalculateUserSummaryEmpty(t *testing.T) {
	summary := CalculateUserSummary("alice", nil, nil)

	if !summary.TotalOwed.IsZero() || !summary.TotalOwedToYou.IsZero() || !summary.NetBalance.IsZero() {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
}

func TestCalculateGroupBalances(t *testing.T) {
	// Alice paid 90 split three ways; her own share nets out.
	lines := []ShareLine{
		{DebtorID: "alice", PayerID: "alice", Amount: dec(t, "30.00")},
		{DebtorID: "bob", PayerID: "alice", Amount: dec(t, "30.00")},
		{DebtorID: "carol", PayerID: "alice", Amount: dec(t, "30.00")},
	}

	members, edges := CalculateGroupBalances(lines)

	if len(members) != 3 {
		t.Fatalf("expected 3 member balances, got %d", len(members))
	}

	byID := make(map[string]MemberBalance)
	for _, m := range members {
		byID[m.UserID] = m
	}
	if !byID["alice"].NetBalance.Equal(dec(t, "60.00")) {
		t.Errorf("alice net: expected 60.00, got %s", byID["alice"].NetBalance)
	}
	if !byID["bob"].NetBalance.Equal(dec(t, "-30.00")) {
		t.Errorf("bob net: expected -30.00, got %s", byID["bob"].NetBalance)
	}
	if !byID["carol"].NetBalance.Equal(dec(t, "-30.00")) {
		t.Errorf("carol net: expected -30.00, got %s", byID["carol"].NetBalance)
	}

	if len(edges) != 2 {
		t.Fatalf("expected 2 debt edges, got %d", len(edges))
	}
	for _, edge := range edges {
		if edge.To != "alice" {
			t.Errorf("edge creditor: expected alice, got %s", edge.To)
		}
		if !edge.Amount.Equal(dec(t, "30.00")) {
			t.Errorf("edge amount: expected 30.00, got %s", edge.Amount)
		}
	}
}

func TestCalculateGroupBalancesSimplifiesChains(t *testing.T) {
	// bob owes alice 10, carol owes bob 10: simplification should leave a
	// single carol -> alice edge.
	lines := []ShareLine{
		{DebtorID: "bob", PayerID: "alice", Amount: dec(t, "10.00")},
		{DebtorID: "carol", PayerID: "bob", Amount: dec(t, "10.00")},
	}

	_, edges := CalculateGroupBalances(lines)

	if len(edges) != 1 {
		t.Fatalf("expected 1 simplified edge, got %d", len(edges))
	}
	if edges[0].From != "carol" || edges[0].To != "alice" {
		t.Errorf("expected carol -> alice, got %s -> %s", edges[0].From, edges[0].To)
	}
	if !edges[0].Amount.Equal(dec(t, "10.00")) {
		t.Errorf("edge amount: expected 10.00, got %s", edges[0].Amount)
	}
}

func TestCalculateGroupBalancesNoShares(t *testing.T) {
	members, edges := CalculateGroupBalances(nil)
	if len(members) != 0 {
		t.Errorf("expected no member balances, got %d", len(members))
	}
	if len(edges) != 0 {
		t.Errorf("expected no edges, got %d", len(edges))
	}
}
