package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// MemberService answers member lookups and the member side of relationships.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Member looks up a member by ID. A missing member is nil, not an error.
func (s *MemberService) Member(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.store.GetMemberByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// Referenced looks up a member that another record points at.
// Absence is a dangling reference rather than a null result.
func (s *MemberService) Referenced(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.Member(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		slog.Error("Referenced member missing", "member_id", id)
		return nil, danglingError("unknown member %s", id)
	}
	return member, nil
}

// Me returns the calling member, or nil when the request is anonymous.
func (s *MemberService) Me(ctx context.Context) *models.Member {
	return middleware.GetMember(ctx)
}

// Expenses returns every expense memberID paid for.
func (s *MemberService) Expenses(ctx context.Context, memberID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member expenses: %w", err)
	}
	return expenses, nil
}

// Groups returns every group memberID belongs to.
func (s *MemberService) Groups(ctx context.Context, memberID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}
	return groups, nil
}
