// Package calculator computes balance summaries over pending expense shares.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ShareLine is one pending share flattened for aggregation: who owes, who
// paid the underlying expense, and how much.
type ShareLine struct {
	DebtorID string
	PayerID  string
	Amount   decimal.Decimal
}

// UserSummary is a single user's position across all pending shares.
type UserSummary struct {
	// TotalOwed is what the user owes others (their pending shares on
	// expenses paid by someone else).
	TotalOwed decimal.Decimal `json:"totalOwed"`

	// TotalOwedToYou is what others owe the user (pending shares held by
	// other users on expenses the user paid).
	TotalOwedToYou decimal.Decimal `json:"totalOwedToYou"`

	// NetBalance is TotalOwedToYou - TotalOwed.
	NetBalance decimal.Decimal `json:"netBalance"`
}

// MemberBalance is one group member's net position.
type MemberBalance struct {
	UserID string `json:"userId"`

	// TotalPaid is what pending shares credit to this member as payer.
	TotalPaid decimal.Decimal `json:"totalPaid"`

	// TotalOwed is what this member owes across pending shares.
	TotalOwed decimal.Decimal `json:"totalOwed"`

	// NetBalance is TotalPaid - TotalOwed. Positive = owed money.
	NetBalance decimal.Decimal `json:"netBalance"`
}

// DebtEdge is a simplified debt from one member to another.
type DebtEdge struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculateUserSummary aggregates a user's pending shares into a balance
// summary.
//
// owed are the user's own pending shares (debtor = user); a share on an
// expense the user also paid nets out and is skipped. paid are pending
// shares on expenses the user paid; the user's own share of those is
// likewise skipped.
func CalculateUserSummary(userID string, owed, paid []ShareLine) UserSummary {
	summary := UserSummary{
		TotalOwed:      decimal.Zero,
		TotalOwedToYou: decimal.Zero,
	}

	for _, line := range owed {
		if line.PayerID == userID {
			continue
		}
		summary.TotalOwed = summary.TotalOwed.Add(line.Amount)
	}
	for _, line := range paid {
		if line.DebtorID == userID {
			continue
		}
		summary.TotalOwedToYou = summary.TotalOwedToYou.Add(line.Amount)
	}

	summary.NetBalance = summary.TotalOwedToYou.Sub(summary.TotalOwed)
	return summary
}

// CalculateGroupBalances computes per-member net positions over a group's
// pending shares and a simplified set of debt edges.
//
// Algorithm:
//   - each share credits its payer and debits its debtor (self-shares net
//     out and are skipped)
//   - net_balance = total_paid - total_owed
//   - debt edges are produced by greedily matching debtors against
//     creditors, smallest remaining amount first
func CalculateGroupBalances(lines []ShareLine) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)

	member := func(userID string) *MemberBalance {
		if bal, ok := balances[userID]; ok {
			return bal
		}
		bal := &MemberBalance{
			UserID:    userID,
			TotalPaid: decimal.Zero,
			TotalOwed: decimal.Zero,
		}
		balances[userID] = bal
		return bal
	}

	for _, line := range lines {
		if line.DebtorID == line.PayerID {
			continue
		}
		member(line.PayerID).TotalPaid = member(line.PayerID).TotalPaid.Add(line.Amount)
		member(line.DebtorID).TotalOwed = member(line.DebtorID).TotalOwed.Add(line.Amount)
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.NetBalance = bal.TotalPaid.Sub(bal.TotalOwed)
		memberBalances = append(memberBalances, *bal)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].UserID < memberBalances[j].UserID
	})

	return memberBalances, simplifyDebts(memberBalances)
}

// simplifyDebts greedily matches debtors with creditors to minimize the
// number of transactions needed to zero every net balance.
func simplifyDebts(memberBalances []MemberBalance) []DebtEdge {
	var debtors, creditors []MemberBalance
	for _, bal := range memberBalances {
		switch bal.NetBalance.Sign() {
		case -1:
			debtors = append(debtors, bal)
		case 1:
			creditors = append(creditors, bal)
		}
	}

	remaining := make(map[string]decimal.Decimal, len(debtors)+len(creditors))
	for _, d := range debtors {
		remaining[d.UserID] = d.NetBalance.Neg()
	}
	for _, c := range creditors {
		remaining[c.UserID] = c.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].UserID
		creditor := creditors[j].UserID

		amount := remaining[debtor]
		if remaining[creditor].LessThan(amount) {
			amount = remaining[creditor]
		}

		if amount.Sign() > 0 {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		remaining[debtor] = remaining[debtor].Sub(amount)
		remaining[creditor] = remaining[creditor].Sub(amount)

		if remaining[debtor].Sign() <= 0 {
			i++
		}
		if remaining[creditor].Sign() <= 0 {
			j++
		}
	}

	return edges
}
