package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GroupService handles group queries, group creation and group relationships.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// AddGroupInput holds the arguments of AddGroup.
type AddGroupInput struct {
	Name string `validate:"required,max=100"`
}

// Group looks up a group by ID. A missing group is nil, not an error.
func (s *GroupService) Group(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// Groups returns the groups the calling member belongs to.
func (s *GroupService) Groups(ctx context.Context) ([]*models.Group, error) {
	member := middleware.GetMember(ctx)
	if member == nil {
		return nil, ErrAuthorization
	}

	groups, err := s.store.ListGroupsByMember(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// AddGroup creates a group owned by the calling member, who is its only member.
func (s *GroupService) AddGroup(ctx context.Context, in AddGroupInput) (*models.Group, error) {
	member := middleware.GetMember(ctx)
	if member == nil {
		return nil, ErrAuthorization
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	group := &models.Group{
		OwnerID:   member.ID,
		Name:      in.Name,
		MemberIDs: []string{member.ID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("AddGroup failed", "member_id", member.ID, "error", err)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", member.ID)
	return group, nil
}

// Owner resolves the member who owns group.
func (s *GroupService) Owner(ctx context.Context, group *models.Group) (*models.Member, error) {
	owner, err := s.store.GetMemberByID(ctx, group.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group owner: %w", err)
	}
	if owner == nil {
		slog.Error("Group owner missing", "group_id", group.ID, "owner_id", group.OwnerID)
		return nil, danglingError("group %s references unknown owner %s", group.ID, group.OwnerID)
	}
	return owner, nil
}

// Members resolves the group's members in membership order.
// A member ID with no stored member fails the whole call.
func (s *GroupService) Members(ctx context.Context, group *models.Group) ([]*models.Member, error) {
	found, err := s.store.GetMembersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}

	members := make([]*models.Member, 0, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		member, ok := found[id]
		if !ok {
			slog.Error("Group member missing", "group_id", group.ID, "member_id", id)
			return nil, danglingError("group %s references unknown member %s", group.ID, id)
		}
		members = append(members, member)
	}
	return members, nil
}

// Expenses returns every expense recorded in group.
func (s *GroupService) Expenses(ctx context.Context, group *models.Group) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group expenses: %w", err)
	}
	return expenses, nil
}

// Balances computes each member's net position and the transfers that settle the group,
// splitting every expense evenly across the group's members.
func (s *GroupService) Balances(ctx context.Context, group *models.Group) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	expenses, err := s.Expenses(ctx, group)
	if err != nil {
		return nil, nil, err
	}

	forBalance := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		forBalance[i] = calculator.ExpenseForBalance{PayerID: e.MemberID, Cost: e.Cost}
	}

	balances, debts, err := calculator.CalculateGroupBalances(forBalance, group.MemberIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to calculate balances for group %s: %w", group.ID, err)
	}

	slog.Debug("Balances calculated",
		"group_id", group.ID,
		"expenses_count", len(expenses),
		"debts_count", len(debts),
	)
	return balances, debts, nil
}
