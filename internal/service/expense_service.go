package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ExpenseService handles expense queries, expense creation and expense relationships.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpenseInput holds the arguments of AddExpense. The payer is always the caller.
type AddExpenseInput struct {
	Date        time.Time
	Description *string
	Type        models.ExpenseType `validate:"required"`
	GroupID     string             `validate:"required"`
	Cost        int64
}

// Expenses lists expenses paid by memberFilter or, failing that, recorded in groupFilter.
// When both filters are set only the member filter applies.
func (s *ExpenseService) Expenses(ctx context.Context, memberFilter, groupFilter *string) ([]*models.Expense, error) {
	var (
		expenses []*models.Expense
		err      error
	)
	switch {
	case memberFilter != nil:
		expenses, err = s.store.ListExpensesByMember(ctx, *memberFilter)
	case groupFilter != nil:
		expenses, err = s.store.ListExpensesByGroup(ctx, *groupFilter)
	default:
		return nil, validationError("specify member or group")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Expense looks up an expense by ID. A missing expense is nil, not an error.
func (s *ExpenseService) Expense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// AddExpense records an expense paid by the calling member in one of their groups.
func (s *ExpenseService) AddExpense(ctx context.Context, in AddExpenseInput) (*models.Expense, error) {
	member := middleware.GetMember(ctx)
	if member == nil {
		return nil, ErrAuthorization
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}
	expenseType, err := models.ParseExpenseType(string(in.Type))
	if err != nil {
		return nil, validationError("%s", err)
	}
	if in.Date.IsZero() {
		return nil, validationError("date is required")
	}

	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, validationError("group %s not found", in.GroupID)
	}
	if !group.HasMember(member.ID) {
		return nil, &Error{Kind: ErrForbidden, Message: fmt.Sprintf("member %s is not in group %s", member.ID, group.ID)}
	}

	expense := &models.Expense{
		Date:        in.Date.Truncate(time.Millisecond),
		Description: in.Description,
		Type:        expenseType,
		MemberID:    member.ID,
		GroupID:     group.ID,
		Cost:        in.Cost,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "member_id", member.ID, "group_id", group.ID, "error", err)
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"member_id", member.ID,
		"cost", expense.Cost,
	)
	return expense, nil
}

// Payer resolves the member who paid expense.
func (s *ExpenseService) Payer(ctx context.Context, expense *models.Expense) (*models.Member, error) {
	member, err := s.store.GetMemberByID(ctx, expense.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense payer: %w", err)
	}
	if member == nil {
		slog.Error("Expense payer missing", "expense_id", expense.ID, "member_id", expense.MemberID)
		return nil, danglingError("expense %s references unknown member %s", expense.ID, expense.MemberID)
	}
	return member, nil
}

// Group resolves the group expense belongs to.
func (s *ExpenseService) Group(ctx context.Context, expense *models.Expense) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense group: %w", err)
	}
	if group == nil {
		slog.Error("Expense group missing", "expense_id", expense.ID, "group_id", expense.GroupID)
		return nil, danglingError("expense %s references unknown group %s", expense.ID, expense.GroupID)
	}
	return group, nil
}
