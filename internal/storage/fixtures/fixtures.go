// Package fixtures seeds a store with the sample members, groups and expenses
// the API starts with.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// SeedMember is a fixture member together with its plaintext password.
type SeedMember struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// Members are the seeded accounts. Passwords are hashed when seeding.
var Members = []SeedMember{
	{ID: "1", Name: "Joey", Email: "joey@gmail.com", Password: "joey123"},
	{ID: "2", Name: "Chandler", Email: "chandler@gmail.com", Password: "chandler123"},
	{ID: "3", Name: "Monica", Email: "monica@gmail.com", Password: "monica123"},
	{ID: "4", Name: "Rachel", Email: "rachel@gmail.com", Password: "rachel123"},
	{ID: "5", Name: "Ross", Email: "ross@gmail.com", Password: "ross123"},
	{ID: "6", Name: "Phoebe", Email: "phoebe@gmail.com", Password: "phoebe123"},
}

// Groups are the seeded groups.
var Groups = []models.Group{
	{ID: "1", OwnerID: "1", Name: "Apartment 19", MemberIDs: []string{"1", "2"}},
	{ID: "2", OwnerID: "3", Name: "Apartment 20", MemberIDs: []string{"3", "4"}},
	{ID: "3", OwnerID: "6", Name: "Central Perk", MemberIDs: []string{"6", "1", "2", "3", "4", "5"}},
	{ID: "4", OwnerID: "5", Name: "Museum", MemberIDs: []string{"5"}},
}

// Expenses are the seeded expenses.
var Expenses = []models.Expense{
	{
		ID:          "1",
		Date:        time.UnixMilli(1546351200000),
		Description: strPtr("Pizza night"),
		Type:        models.ExpenseTypeFood,
		MemberID:    "1",
		GroupID:     "1",
		Cost:        24,
	},
	{
		ID:          "2",
		Date:        time.UnixMilli(1546437600000),
		Description: strPtr("Electricity"),
		Type:        models.ExpenseTypeBills,
		MemberID:    "3",
		GroupID:     "2",
		Cost:        120,
	},
}

// Seed inserts the fixture records into store, hashing passwords at the given
// bcrypt cost. It does nothing when member "1" already exists, so a persistent
// store is only seeded once.
func Seed(ctx context.Context, store storage.Store, bcryptCost int) error {
	existing, err := store.GetMemberByID(ctx, Members[0].ID)
	if err != nil {
		return fmt.Errorf("failed to check fixtures: %w", err)
	}
	if existing != nil {
		slog.Debug("Fixtures already present, skipping seed")
		return nil
	}

	for _, m := range Members {
		hash, err := auth.HashPassword(m.Password, bcryptCost)
		if err != nil {
			return err
		}
		member := &models.Member{ID: m.ID, Name: m.Name, Email: m.Email, PasswordHash: hash}
		if err := store.CreateMember(ctx, member); err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.ID, err)
		}
	}

	for i := range Groups {
		if err := store.CreateGroup(ctx, Groups[i].Clone()); err != nil {
			return fmt.Errorf("failed to seed group %s: %w", Groups[i].ID, err)
		}
	}

	for i := range Expenses {
		if err := store.CreateExpense(ctx, Expenses[i].Clone()); err != nil {
			return fmt.Errorf("failed to seed expense %s: %w", Expenses[i].ID, err)
		}
	}

	slog.Info("Fixtures seeded",
		"members", len(Members),
		"groups", len(Groups),
		"expenses", len(Expenses),
	)
	return nil
}

func strPtr(s string) *string { return &s }
