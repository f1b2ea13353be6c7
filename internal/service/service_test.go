package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/fixtures"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

// newSeededStore returns an in-memory store holding the fixture data set.
func newSeededStore(t *testing.T) *memory.MemoryStore {
	t.Helper()
	store := memory.New()
	require.NoError(t, fixtures.Seed(context.Background(), store, bcrypt.MinCost))
	t.Cleanup(func() { store.Close() })
	return store
}

// asMember returns a context whose caller is the stored member with the given ID.
func asMember(t *testing.T, store *memory.MemoryStore, id string) context.Context {
	t.Helper()
	member, err := store.GetMemberByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, member, "member %s not seeded", id)
	return middleware.WithMember(context.Background(), member)
}

func groupIDs(groups []*models.Group) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}

func expenseIDs(expenses []*models.Expense) []string {
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	return ids
}

func strPtr(s string) *string { return &s }
