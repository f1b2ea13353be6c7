package calculator

import (
	"testing"
)

func TestCalculateGroupBalances(t *testing.T) {
	tests := []struct {
		name      string
		expenses  []ExpenseForBalance
		members   []string
		wantNet   map[string]int64
		wantDebts []DebtEdge
		wantErr   bool
	}{
		{
			name:    "no expenses",
			members: []string{"1", "2"},
			wantNet: map[string]int64{"1": 0, "2": 0},
		},
		{
			name:      "one payer two members",
			expenses:  []ExpenseForBalance{{PayerID: "1", Cost: 20}},
			members:   []string{"1", "2"},
			wantNet:   map[string]int64{"1": 10, "2": -10},
			wantDebts: []DebtEdge{{From: "2", To: "1", Amount: 10}},
		},
		{
			name: "expenses cancel out",
			expenses: []ExpenseForBalance{
				{PayerID: "1", Cost: 30},
				{PayerID: "2", Cost: 30},
			},
			members: []string{"1", "2"},
			wantNet: map[string]int64{"1": 0, "2": 0},
		},
		{
			name:     "three members with remainder",
			expenses: []ExpenseForBalance{{PayerID: "3", Cost: 100}},
			members:  []string{"1", "2", "3"},
			// shares 34, 33, 33
			wantNet: map[string]int64{"1": -34, "2": -33, "3": 67},
			wantDebts: []DebtEdge{
				{From: "1", To: "3", Amount: 34},
				{From: "2", To: "3", Amount: 33},
			},
		},
		{
			name:     "payer outside the group",
			expenses: []ExpenseForBalance{{PayerID: "9", Cost: 10}},
			members:  []string{"1", "2"},
			wantNet:  map[string]int64{"1": -5, "2": -5, "9": 10},
			wantDebts: []DebtEdge{
				{From: "1", To: "9", Amount: 5},
				{From: "2", To: "9", Amount: 5},
			},
		},
		{
			name:    "empty group should error",
			members: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, debts, err := CalculateGroupBalances(tt.expenses, tt.members)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CalculateGroupBalances() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(balances) != len(tt.wantNet) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.wantNet))
			}
			var total int64
			for _, b := range balances {
				if b.Net != tt.wantNet[b.MemberID] {
					t.Errorf("net[%s] = %d, want %d", b.MemberID, b.Net, tt.wantNet[b.MemberID])
				}
				if b.Net != b.Paid-b.Owed {
					t.Errorf("net[%s] = %d, not paid-owed %d", b.MemberID, b.Net, b.Paid-b.Owed)
				}
				total += b.Net
			}
			if total != 0 {
				t.Errorf("net balances sum to %d, want 0", total)
			}

			if len(debts) != len(tt.wantDebts) {
				t.Fatalf("got debts %v, want %v", debts, tt.wantDebts)
			}
			for i, d := range debts {
				if d != tt.wantDebts[i] {
					t.Errorf("debt[%d] = %+v, want %+v", i, d, tt.wantDebts[i])
				}
			}
		})
	}
}

func TestCalculateGroupBalances_MemberOrder(t *testing.T) {
	balances, _, err := CalculateGroupBalances(nil, []string{"b", "a", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"b", "a", "c"} {
		if balances[i].MemberID != want {
			t.Errorf("balances[%d] = %s, want %s", i, balances[i].MemberID, want)
		}
	}
}
