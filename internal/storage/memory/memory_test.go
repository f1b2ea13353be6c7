package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	store := New()
	defer store.Close()
	ctx := context.Background()

	alice := &models.Member{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	bob := &models.Member{ID: "bob", Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}

	t.Run("CreateMember generates ID and CreatedAt", func(t *testing.T) {
		if err := store.CreateMember(ctx, alice); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		if alice.ID == "" {
			t.Error("Expected member ID to be generated")
		}
		if alice.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if err := store.CreateMember(ctx, bob); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		if bob.ID != "bob" {
			t.Errorf("Caller-assigned ID overwritten: got %s", bob.ID)
		}
	})

	t.Run("CreateMember rejects duplicate ID", func(t *testing.T) {
		err := store.CreateMember(ctx, &models.Member{ID: "bob", Email: "other@example.com"})
		if err == nil {
			t.Error("Expected error for duplicate ID, got nil")
		}
	})

	t.Run("GetMemberByID returns nil for unknown ID", func(t *testing.T) {
		m, err := store.GetMemberByID(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetMemberByID failed: %v", err)
		}
		if m != nil {
			t.Errorf("Expected nil member, got %+v", m)
		}
	})

	t.Run("CreateMember rejects duplicate email", func(t *testing.T) {
		dup := &models.Member{Name: "Alice Again", Email: "alice@example.com"}
		err := store.CreateMember(ctx, dup)
		if !errors.Is(err, storage.ErrDuplicateEmail) {
			t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
		}
		m, err := store.GetMemberByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetMemberByEmail failed: %v", err)
		}
		if m == nil || m.ID != alice.ID {
			t.Errorf("Expected original member %s, got %+v", alice.ID, m)
		}
	})

	t.Run("returned records are copies", func(t *testing.T) {
		m, _ := store.GetMemberByID(ctx, alice.ID)
		m.Name = "Mallory"
		again, _ := store.GetMemberByID(ctx, alice.ID)
		if again.Name != "Alice" {
			t.Errorf("Stored member mutated through returned copy: %s", again.Name)
		}
	})

	t.Run("GetMembersByIDs omits unknown IDs", func(t *testing.T) {
		members, err := store.GetMembersByIDs(ctx, []string{alice.ID, "ghost", bob.ID})
		if err != nil {
			t.Fatalf("GetMembersByIDs failed: %v", err)
		}
		if len(members) != 2 {
			t.Errorf("Expected 2 members, got %d", len(members))
		}
		if _, ok := members["ghost"]; ok {
			t.Error("Unknown ID present in result")
		}
	})

	var home, work *models.Group

	t.Run("ListGroupsByMember follows membership", func(t *testing.T) {
		home = &models.Group{Name: "Home", OwnerID: alice.ID, MemberIDs: []string{alice.ID, bob.ID}}
		work = &models.Group{Name: "Work", OwnerID: bob.ID, MemberIDs: []string{bob.ID}}
		for _, g := range []*models.Group{home, work} {
			if err := store.CreateGroup(ctx, g); err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}
		}

		groups, err := store.ListGroupsByMember(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != home.ID {
			t.Errorf("Expected only %s for alice, got %v", home.ID, groups)
		}

		groups, _ = store.ListGroupsByMember(ctx, bob.ID)
		if len(groups) != 2 || groups[0].ID != home.ID || groups[1].ID != work.ID {
			t.Errorf("Expected [home work] in insertion order for bob, got %v", groups)
		}
	})

	t.Run("group members slice is not shared", func(t *testing.T) {
		home.MemberIDs[0] = "intruder"
		g, _ := store.GetGroup(ctx, home.ID)
		if g.MemberIDs[0] != alice.ID {
			t.Errorf("Stored group mutated through caller slice: %v", g.MemberIDs)
		}
	})

	t.Run("expenses filter by member and group", func(t *testing.T) {
		desc := "Groceries"
		expenses := []*models.Expense{
			{Date: time.UnixMilli(1000), Description: &desc, Type: models.ExpenseTypeFood, MemberID: alice.ID, GroupID: home.ID, Cost: 30},
			{Date: time.UnixMilli(2000), Type: models.ExpenseTypeBills, MemberID: bob.ID, GroupID: home.ID, Cost: 90},
			{Date: time.UnixMilli(3000), Type: models.ExpenseTypeOther, MemberID: bob.ID, GroupID: work.ID, Cost: -5},
		}
		for _, e := range expenses {
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		byBob, _ := store.ListExpensesByMember(ctx, bob.ID)
		if len(byBob) != 2 {
			t.Errorf("Expected 2 expenses for bob, got %d", len(byBob))
		}
		inHome, _ := store.ListExpensesByGroup(ctx, home.ID)
		if len(inHome) != 2 || inHome[0].ID != expenses[0].ID {
			t.Errorf("Expected 2 home expenses oldest first, got %v", inHome)
		}

		got, _ := store.GetExpense(ctx, expenses[0].ID)
		if got == nil || *got.Description != desc || got.Cost != 30 {
			t.Errorf("GetExpense mismatch: %+v", got)
		}
		missing, err := store.GetExpense(ctx, "nope")
		if err != nil || missing != nil {
			t.Errorf("Expected nil, nil for missing expense, got %v, %v", missing, err)
		}
	})
}

func TestMemoryStore_ConcurrentWrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := &models.Expense{Type: models.ExpenseTypeFood, MemberID: "m", GroupID: "g", Cost: int64(i)}
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Errorf("CreateExpense %d failed: %v", i, err)
			}
			if _, err := store.ListExpensesByGroup(ctx, "g"); err != nil {
				t.Errorf("ListExpensesByGroup failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	expenses, _ := store.ListExpensesByGroup(ctx, "g")
	if len(expenses) != writers {
		t.Errorf("Expected %d expenses, got %d", writers, len(expenses))
	}
	seen := make(map[string]bool)
	for _, e := range expenses {
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestMemoryStore_ConcurrentDuplicateEmail(t *testing.T) {
	store := New()
	ctx := context.Background()

	const writers = 20
	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := &models.Member{Name: fmt.Sprintf("Dup %d", i), Email: "dup@gmail.com"}
			err := store.CreateMember(ctx, m)
			switch {
			case err == nil:
				created.Add(1)
			case !errors.Is(err, storage.ErrDuplicateEmail):
				t.Errorf("CreateMember %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := created.Load(); got != 1 {
		t.Errorf("Expected exactly 1 member created, got %d", got)
	}
}
