// Package memory provides an in-process implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps members, groups and expenses in maps keyed by ID,
// with a parallel slice per collection to preserve insertion order.
//
// A single RWMutex guards all three collections: at most one writer at a time,
// any number of concurrent readers.
type MemoryStore struct {
	mu sync.RWMutex

	members     map[string]*models.Member
	memberOrder []string

	groups     map[string]*models.Group
	groupOrder []string

	expenses     map[string]*models.Expense
	expenseOrder []string
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		members:  make(map[string]*models.Member),
		groups:   make(map[string]*models.Group),
		expenses: make(map[string]*models.Expense),
	}
}

// Close is a no-op; the store lives for the process lifetime.
func (s *MemoryStore) Close() error {
	return nil
}

// CreateMember appends a new member.
func (s *MemoryStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[member.ID]; exists {
		return fmt.Errorf("failed to create member: duplicate id %s", member.ID)
	}
	for _, m := range s.members {
		if m.Email == member.Email {
			return fmt.Errorf("failed to create member %s: %w", member.Email, storage.ErrDuplicateEmail)
		}
	}
	m := *member
	s.members[m.ID] = &m
	s.memberOrder = append(s.memberOrder, m.ID)
	return nil
}

// GetMemberByID retrieves a member by ID.
func (s *MemoryStore) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

// GetMemberByEmail returns the earliest member registered with email.
func (s *MemoryStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.memberOrder {
		if m := s.members[id]; m.Email == email {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

// GetMembersByIDs retrieves multiple members by their IDs.
func (s *MemoryStore) GetMembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make(map[string]*models.Member, len(ids))
	for _, id := range ids {
		if m, ok := s.members[id]; ok {
			c := *m
			members[id] = &c
		}
	}
	return members, nil
}

// CreateGroup appends a new group.
func (s *MemoryStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("failed to create group: duplicate id %s", group.ID)
	}
	s.groups[group.ID] = group.Clone()
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

// GetGroup retrieves a group by ID.
func (s *MemoryStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	return g.Clone(), nil
}

// ListGroupsByMember scans all groups for memberID.
func (s *MemoryStore) ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []*models.Group
	for _, id := range s.groupOrder {
		if g := s.groups[id]; g.HasMember(memberID) {
			groups = append(groups, g.Clone())
		}
	}
	return groups, nil
}

// CreateExpense appends a new expense.
func (s *MemoryStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[expense.ID]; exists {
		return fmt.Errorf("failed to create expense: duplicate id %s", expense.ID)
	}
	s.expenses[expense.ID] = expense.Clone()
	s.expenseOrder = append(s.expenseOrder, expense.ID)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *MemoryStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

// ListExpensesByMember returns the expenses paid by memberID.
func (s *MemoryStore) ListExpensesByMember(ctx context.Context, memberID string) ([]*models.Expense, error) {
	return s.filterExpenses(func(e *models.Expense) bool { return e.MemberID == memberID }), nil
}

// ListExpensesByGroup returns the expenses recorded in groupID.
func (s *MemoryStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.filterExpenses(func(e *models.Expense) bool { return e.GroupID == groupID }), nil
}

func (s *MemoryStore) filterExpenses(match func(*models.Expense) bool) []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []*models.Expense
	for _, id := range s.expenseOrder {
		if e := s.expenses[id]; match(e) {
			expenses = append(expenses, e.Clone())
		}
	}
	return expenses
}
