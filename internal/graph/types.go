package graph

import (
	"context"
	"sync"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
)

type MemberResolver struct {
	root   *Resolver
	member *models.Member
}

func (r *MemberResolver) ID() string   { return r.member.ID }
func (r *MemberResolver) Name() string { return r.member.Name }

// Email is only shown to the member it belongs to.
func (r *MemberResolver) Email(ctx context.Context) *string {
	if middleware.GetMemberID(ctx) != r.member.ID {
		return nil
	}
	return &r.member.Email
}

func (r *MemberResolver) Expenses(ctx context.Context) (*[]*ExpenseResolver, error) {
	expenses, err := r.root.svcs.Members.Expenses(ctx, r.member.ID)
	if err != nil {
		return nil, wrapErr("Member.expenses", err)
	}
	return r.root.expenseList(expenses), nil
}

func (r *MemberResolver) Groups(ctx context.Context) (*[]*GroupResolver, error) {
	groups, err := r.root.svcs.Members.Groups(ctx, r.member.ID)
	if err != nil {
		return nil, wrapErr("Member.groups", err)
	}
	return r.root.groupList(groups), nil
}

type GroupResolver struct {
	root  *Resolver
	group *models.Group

	// balances and debts share one calculation per resolved group.
	ledgerOnce sync.Once
	balances   []calculator.MemberBalance
	debts      []calculator.DebtEdge
	ledgerErr  error
}

func (r *GroupResolver) ledger(ctx context.Context) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	r.ledgerOnce.Do(func() {
		r.balances, r.debts, r.ledgerErr = r.root.svcs.Groups.Balances(ctx, r.group)
	})
	return r.balances, r.debts, r.ledgerErr
}

func (r *GroupResolver) ID() string   { return r.group.ID }
func (r *GroupResolver) Name() string { return r.group.Name }

func (r *GroupResolver) Owner(ctx context.Context) (*MemberResolver, error) {
	owner, err := r.root.svcs.Groups.Owner(ctx, r.group)
	if err != nil {
		return nil, wrapErr("Group.owner", err)
	}
	return &MemberResolver{root: r.root, member: owner}, nil
}

func (r *GroupResolver) Expenses(ctx context.Context) (*[]*ExpenseResolver, error) {
	expenses, err := r.root.svcs.Groups.Expenses(ctx, r.group)
	if err != nil {
		return nil, wrapErr("Group.expenses", err)
	}
	return r.root.expenseList(expenses), nil
}

func (r *GroupResolver) Members(ctx context.Context) (*[]*MemberResolver, error) {
	members, err := r.root.svcs.Groups.Members(ctx, r.group)
	if err != nil {
		return nil, wrapErr("Group.members", err)
	}
	return r.root.memberList(members), nil
}

func (r *GroupResolver) Balances(ctx context.Context) ([]*BalanceResolver, error) {
	balances, _, err := r.ledger(ctx)
	if err != nil {
		return nil, wrapErr("Group.balances", err)
	}
	out := make([]*BalanceResolver, len(balances))
	for i, b := range balances {
		out[i] = &BalanceResolver{root: r.root, balance: b}
	}
	return out, nil
}

func (r *GroupResolver) Debts(ctx context.Context) ([]*DebtResolver, error) {
	_, debts, err := r.ledger(ctx)
	if err != nil {
		return nil, wrapErr("Group.debts", err)
	}
	out := make([]*DebtResolver, len(debts))
	for i, d := range debts {
		out[i] = &DebtResolver{root: r.root, debt: d}
	}
	return out, nil
}

type ExpenseResolver struct {
	root    *Resolver
	expense *models.Expense
}

func (r *ExpenseResolver) ID() string           { return r.expense.ID }
func (r *ExpenseResolver) Date() Date           { return Date{r.expense.Date} }
func (r *ExpenseResolver) Description() *string { return r.expense.Description }
func (r *ExpenseResolver) Type() string         { return string(r.expense.Type) }

func (r *ExpenseResolver) Cost() (int32, error) {
	return intValue("Expense.cost", r.expense.Cost)
}

func (r *ExpenseResolver) Member(ctx context.Context) (*MemberResolver, error) {
	payer, err := r.root.svcs.Expenses.Payer(ctx, r.expense)
	if err != nil {
		return nil, wrapErr("Expense.member", err)
	}
	return &MemberResolver{root: r.root, member: payer}, nil
}

func (r *ExpenseResolver) Group(ctx context.Context) (*GroupResolver, error) {
	group, err := r.root.svcs.Expenses.Group(ctx, r.expense)
	if err != nil {
		return nil, wrapErr("Expense.group", err)
	}
	return &GroupResolver{root: r.root, group: group}, nil
}

type BalanceResolver struct {
	root    *Resolver
	balance calculator.MemberBalance
}

func (r *BalanceResolver) Member(ctx context.Context) (*MemberResolver, error) {
	return r.root.referencedMember(ctx, "Balance.member", r.balance.MemberID)
}

func (r *BalanceResolver) Paid() (int32, error) { return intValue("Balance.paid", r.balance.Paid) }
func (r *BalanceResolver) Owed() (int32, error) { return intValue("Balance.owed", r.balance.Owed) }
func (r *BalanceResolver) Net() (int32, error)  { return intValue("Balance.net", r.balance.Net) }

type DebtResolver struct {
	root *Resolver
	debt calculator.DebtEdge
}

func (r *DebtResolver) From(ctx context.Context) (*MemberResolver, error) {
	return r.root.referencedMember(ctx, "Debt.from", r.debt.From)
}

func (r *DebtResolver) To(ctx context.Context) (*MemberResolver, error) {
	return r.root.referencedMember(ctx, "Debt.to", r.debt.To)
}

func (r *DebtResolver) Amount() (int32, error) { return intValue("Debt.amount", r.debt.Amount) }
