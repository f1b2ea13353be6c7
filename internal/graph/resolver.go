package graph

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
)

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	svcs Services
}

func (r *Resolver) Expenses(ctx context.Context, args struct {
	Member *string
	Group  *string
}) (*[]*ExpenseResolver, error) {
	expenses, err := r.svcs.Expenses.Expenses(ctx, args.Member, args.Group)
	if err != nil {
		return nil, wrapErr("expenses", err)
	}
	return r.expenseList(expenses), nil
}

func (r *Resolver) Expense(ctx context.Context, args struct{ ID string }) (*ExpenseResolver, error) {
	expense, err := r.svcs.Expenses.Expense(ctx, args.ID)
	if err != nil {
		return nil, wrapErr("expense", err)
	}
	if expense == nil {
		return nil, nil
	}
	return &ExpenseResolver{root: r, expense: expense}, nil
}

func (r *Resolver) Member(ctx context.Context, args struct{ ID string }) (*MemberResolver, error) {
	member, err := r.svcs.Members.Member(ctx, args.ID)
	if err != nil {
		return nil, wrapErr("member", err)
	}
	if member == nil {
		return nil, nil
	}
	return &MemberResolver{root: r, member: member}, nil
}

func (r *Resolver) Group(ctx context.Context, args struct{ ID string }) (*GroupResolver, error) {
	group, err := r.svcs.Groups.Group(ctx, args.ID)
	if err != nil {
		return nil, wrapErr("group", err)
	}
	if group == nil {
		return nil, nil
	}
	return &GroupResolver{root: r, group: group}, nil
}

func (r *Resolver) Groups(ctx context.Context) (*[]*GroupResolver, error) {
	groups, err := r.svcs.Groups.Groups(ctx)
	if err != nil {
		return nil, wrapErr("groups", err)
	}
	return r.groupList(groups), nil
}

func (r *Resolver) Me(ctx context.Context) *MemberResolver {
	member := r.svcs.Members.Me(ctx)
	if member == nil {
		return nil
	}
	return &MemberResolver{root: r, member: member}
}

func (r *Resolver) AddExpense(ctx context.Context, args struct {
	Date        Date
	Description *string
	Type        string
	Group       string
	Cost        int32
}) (*ExpenseResolver, error) {
	expense, err := r.svcs.Expenses.AddExpense(ctx, service.AddExpenseInput{
		Date:        args.Date.Time,
		Description: args.Description,
		Type:        models.ExpenseType(args.Type),
		GroupID:     args.Group,
		Cost:        int64(args.Cost),
	})
	if err != nil {
		return nil, wrapErr("addExpense", err)
	}
	return &ExpenseResolver{root: r, expense: expense}, nil
}

func (r *Resolver) AddGroup(ctx context.Context, args struct{ Name string }) (*GroupResolver, error) {
	group, err := r.svcs.Groups.AddGroup(ctx, service.AddGroupInput{Name: args.Name})
	if err != nil {
		return nil, wrapErr("addGroup", err)
	}
	return &GroupResolver{root: r, group: group}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*string, error) {
	_, token, err := r.svcs.Accounts.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, wrapErr("login", err)
	}
	return &token, nil
}

func (r *Resolver) Register(ctx context.Context, args struct {
	Name     string
	Email    string
	Password string
}) (*string, error) {
	_, token, err := r.svcs.Accounts.Register(ctx, service.RegisterInput{
		Name:     args.Name,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		return nil, wrapErr("register", err)
	}
	return &token, nil
}

func (r *Resolver) expenseList(expenses []*models.Expense) *[]*ExpenseResolver {
	out := make([]*ExpenseResolver, len(expenses))
	for i, e := range expenses {
		out[i] = &ExpenseResolver{root: r, expense: e}
	}
	return &out
}

func (r *Resolver) groupList(groups []*models.Group) *[]*GroupResolver {
	out := make([]*GroupResolver, len(groups))
	for i, g := range groups {
		out[i] = &GroupResolver{root: r, group: g}
	}
	return &out
}

func (r *Resolver) memberList(members []*models.Member) *[]*MemberResolver {
	out := make([]*MemberResolver, len(members))
	for i, m := range members {
		out[i] = &MemberResolver{root: r, member: m}
	}
	return &out
}

// referencedMember resolves a non-null Member field from a stored ID.
func (r *Resolver) referencedMember(ctx context.Context, field, id string) (*MemberResolver, error) {
	member, err := r.svcs.Members.Referenced(ctx, id)
	if err != nil {
		return nil, wrapErr(field, err)
	}
	return &MemberResolver{root: r, member: member}, nil
}
