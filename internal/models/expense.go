package models

import (
	"fmt"
	"time"
)

// ExpenseType classifies what an expense was spent on.
type ExpenseType string

const (
	ExpenseTypeFood          ExpenseType = "FOOD"
	ExpenseTypeBills         ExpenseType = "BILLS"
	ExpenseTypeEntertainment ExpenseType = "ENTERTAINMENT"
	ExpenseTypeOther         ExpenseType = "OTHER"
)

// ParseExpenseType converts s to an ExpenseType.
func ParseExpenseType(s string) (ExpenseType, error) {
	switch t := ExpenseType(s); t {
	case ExpenseTypeFood, ExpenseTypeBills, ExpenseTypeEntertainment, ExpenseTypeOther:
		return t, nil
	}
	return "", fmt.Errorf("unknown expense type %q", s)
}

// Expense represents a single cost paid by a member for a group.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string

	// Date is when the expense happened.
	// It travels as epoch milliseconds, so precision below a millisecond is dropped.
	Date time.Time

	// Description is optional free text (e.g., "Pizza").
	Description *string

	// Type is the expense category.
	Type ExpenseType

	// MemberID is the member who paid.
	MemberID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Cost is the amount paid in whole currency units.
	// No sign check is applied.
	Cost int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Clone returns a deep copy of the expense.
func (e *Expense) Clone() *Expense {
	c := *e
	if e.Description != nil {
		d := *e.Description
		c.Description = &d
	}
	return &c
}
