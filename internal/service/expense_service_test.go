package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func TestExpenseService_Expenses(t *testing.T) {
	store := newSeededStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		member  *string
		group   *string
		want    []string
		wantErr error
	}{
		{name: "no filter", wantErr: ErrValidation},
		{name: "member only", member: strPtr("1"), want: []string{"1"}},
		{name: "group only", group: strPtr("2"), want: []string{"2"}},
		{name: "member wins over group", member: strPtr("3"), group: strPtr("1"), want: []string{"2"}},
		{name: "unknown member", member: strPtr("404"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Expenses(ctx, tt.member, tt.group)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, expenseIDs(got))
		})
	}
}

func TestExpenseService_AddExpense(t *testing.T) {
	store := newSeededStore(t)
	svc := NewExpenseService(store)
	date := mustDate(t, "2024-05-04")

	valid := AddExpenseInput{
		Date:        date,
		Description: strPtr("Foosball table"),
		Type:        models.ExpenseTypeEntertainment,
		GroupID:     "1",
		Cost:        300,
	}

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.AddExpense(context.Background(), valid)
		assert.ErrorIs(t, err, ErrAuthorization)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		ctx := asMember(t, store, "1")
		cases := map[string]func(in *AddExpenseInput){
			"unknown type":  func(in *AddExpenseInput) { in.Type = "RENT" },
			"missing type":  func(in *AddExpenseInput) { in.Type = "" },
			"missing group": func(in *AddExpenseInput) { in.GroupID = "" },
			"unknown group": func(in *AddExpenseInput) { in.GroupID = "404" },
			"missing date":  func(in *AddExpenseInput) { in.Date = time.Time{} },
		}
		for name, mutate := range cases {
			in := valid
			mutate(&in)
			_, err := svc.AddExpense(ctx, in)
			assert.ErrorIs(t, err, ErrValidation, name)
		}
	})

	t.Run("unknown type names the type", func(t *testing.T) {
		in := valid
		in.Type = "RENT"
		_, err := svc.AddExpense(asMember(t, store, "1"), in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, `"RENT"`)
	})

	t.Run("caller outside group", func(t *testing.T) {
		_, err := svc.AddExpense(asMember(t, store, "5"), valid)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("round trip", func(t *testing.T) {
		ctx := asMember(t, store, "2")
		created, err := svc.AddExpense(ctx, valid)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "2", created.MemberID)

		got, err := svc.Expense(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created, got)
		assert.True(t, got.Date.Equal(date))
		assert.Equal(t, "Foosball table", *got.Description)

		listed, err := svc.Expenses(ctx, nil, strPtr("1"))
		require.NoError(t, err)
		assert.Equal(t, []string{"1", created.ID}, expenseIDs(listed))
	})

	t.Run("negative cost accepted", func(t *testing.T) {
		in := valid
		in.Cost = -5
		in.Description = nil
		created, err := svc.AddExpense(asMember(t, store, "1"), in)
		require.NoError(t, err)
		assert.Equal(t, int64(-5), created.Cost)
		assert.Nil(t, created.Description)
	})
}

func TestExpenseService_Relationships(t *testing.T) {
	store := newSeededStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()

	expense, err := svc.Expense(ctx, "2")
	require.NoError(t, err)

	payer, err := svc.Payer(ctx, expense)
	require.NoError(t, err)
	assert.Equal(t, "Monica", payer.Name)

	group, err := svc.Group(ctx, expense)
	require.NoError(t, err)
	assert.Equal(t, "Apartment 20", group.Name)

	missing, err := svc.Expense(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExpenseService_DanglingReferences(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	expense := &models.Expense{
		ID:       "e1",
		Date:     time.UnixMilli(0),
		Type:     models.ExpenseTypeOther,
		MemberID: "ghost",
		GroupID:  "nowhere",
		Cost:     1,
	}
	require.NoError(t, store.CreateExpense(ctx, expense))

	svc := NewExpenseService(store)
	_, err := svc.Payer(ctx, expense)
	assert.ErrorIs(t, err, ErrDanglingReference)

	_, err = svc.Group(ctx, expense)
	assert.ErrorIs(t, err, ErrDanglingReference)
}
