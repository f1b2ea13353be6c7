package calculator

import "fmt"

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PayerID string
	Cost    int64
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID string
	Paid     int64 // Total amount paid across all expenses
	Owed     int64 // Total share of all expenses
	Net      int64 // Positive = owed money, Negative = owes money
}

// DebtEdge represents a debt from one member to another.
type DebtEdge struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount int64
}

// CalculateGroupBalances computes balances for a group whose expenses are shared
// evenly by all members.
//
// Algorithm:
//   - For each expense: payer contributed +cost, each member owes their even share
//   - Aggregate: net = paid - owed
//   - Debt edges: greedy matching of debtors to creditors in member order
//
// Balances are returned in member order; payers outside the member list follow.
func CalculateGroupBalances(expenses []ExpenseForBalance, members []string) ([]MemberBalance, []DebtEdge, error) {
	if len(members) == 0 {
		return nil, nil, fmt.Errorf("group must have at least one member")
	}

	balances := make(map[string]*MemberBalance)
	var order []string
	track := func(id string) *MemberBalance {
		if b, ok := balances[id]; ok {
			return b
		}
		b := &MemberBalance{MemberID: id}
		balances[id] = b
		order = append(order, id)
		return b
	}
	for _, m := range members {
		track(m)
	}

	for _, e := range expenses {
		shares, err := SplitEvenly(e.Cost, members)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to split expense: %w", err)
		}
		track(e.PayerID).Paid += e.Cost
		for m, share := range shares {
			balances[m].Owed += share
		}
	}

	result := make([]MemberBalance, len(order))
	for i, id := range order {
		b := balances[id]
		b.Net = b.Paid - b.Owed
		result[i] = *b
	}

	return result, simplifyDebts(result), nil
}

// simplifyDebts matches debtors with creditors to minimise the number of transfers.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	type entry struct {
		id     string
		amount int64
	}
	var creditors, debtors []entry
	for _, b := range balances {
		switch {
		case b.Net > 0:
			creditors = append(creditors, entry{b.MemberID, b.Net})
		case b.Net < 0:
			debtors = append(debtors, entry{b.MemberID, -b.Net})
		}
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		edges = append(edges, DebtEdge{
			From:   debtors[i].id,
			To:     creditors[j].id,
			Amount: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return edges
}
