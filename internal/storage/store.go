// Package storage provides abstractions for member, group and expense storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrDuplicateEmail is returned by CreateMember when another member already uses the email.
var ErrDuplicateEmail = errors.New("duplicate member email")

// Store defines the interface for the expense data store.
// Records are insert-only: nothing is ever updated in place or deleted.
// Lookups return nil and no error when the record does not exist.
type Store interface {
	// CreateMember persists a new member.
	// The member.ID and member.CreatedAt fields are populated by the store if unset.
	// Emails are unique: a taken email fails with ErrDuplicateEmail.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMemberByID retrieves a member by ID.
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)

	// GetMemberByEmail retrieves the member registered with the given email.
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)

	// GetMembersByIDs retrieves several members at once, keyed by ID.
	// IDs without a matching member are omitted from the result.
	GetMembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error)

	// CreateGroup persists a new group.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsByMember returns the groups memberID belongs to, oldest first.
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)

	// CreateExpense persists a new expense.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByMember returns the expenses paid by memberID, oldest first.
	ListExpensesByMember(ctx context.Context, memberID string) ([]*models.Expense, error)

	// ListExpensesByGroup returns the expenses recorded in groupID, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
