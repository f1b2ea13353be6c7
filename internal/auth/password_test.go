package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	a := NewPasswordAuthenticator(store, bcrypt.MinCost)

	member, err := a.Register(ctx, "Joey", "joey@gmail.com", "joey123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("password is stored hashed", func(t *testing.T) {
		stored, _ := store.GetMemberByID(ctx, member.ID)
		if stored.PasswordHash == "joey123" || !strings.HasPrefix(stored.PasswordHash, "$2") {
			t.Errorf("expected bcrypt hash, got %q", stored.PasswordHash)
		}
	})

	t.Run("authenticate with correct password", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "joey@gmail.com", "joey123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != member.ID {
			t.Errorf("ID = %s, want %s", got.ID, member.ID)
		}
	})

	t.Run("authenticate failures", func(t *testing.T) {
		tests := []struct {
			name     string
			email    string
			password string
		}{
			{"wrong password", "joey@gmail.com", "joey124"},
			{"unknown email", "ross@gmail.com", "joey123"},
			{"email case differs", "JOEY@gmail.com", "joey123"},
			{"empty password", "joey@gmail.com", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := a.Authenticate(ctx, tt.email, tt.password)
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("expected ErrInvalidCredentials, got %v", err)
				}
				if got != nil {
					t.Errorf("expected no member, got %+v", got)
				}
			})
		}
	})

	t.Run("register rejects duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "Joey Two", "joey@gmail.com", "another1")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("register rejects weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "Ross", "ross@gmail.com", "abc")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})
}

func TestNewPasswordAuthenticator_DefaultCost(t *testing.T) {
	a := NewPasswordAuthenticator(memory.New(), 0)
	if a.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", a.cost, bcrypt.DefaultCost)
	}
}

func TestPasswordAuthenticator_ConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	a := NewPasswordAuthenticator(store, bcrypt.MinCost)

	const attempts = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Register(ctx, "Dup", "dup@gmail.com", "secret123")
			if err != nil && !errors.Is(err, ErrEmailExists) {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("expected exactly 1 registration for the email, got %d", created)
	}
}
