package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

const expenseColumns = `id, date_ms, description, type, member_id, group_id, cost, created_at`

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	var description any
	if expense.Description != nil {
		description = *expense.Description
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Date.UnixMilli(), description, string(expense.Type),
		expense.MemberID, expense.GroupID, expense.Cost, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`,
		id,
	)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpensesByMember retrieves the expenses paid by memberID, oldest first.
func (s *SQLiteStore) ListExpensesByMember(ctx context.Context, memberID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "member_id", memberID)
}

// ListExpensesByGroup retrieves the expenses recorded in groupID, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "group_id", groupID)
}

// listExpenses filters on column, which must be a trusted column name.
func (s *SQLiteStore) listExpenses(ctx context.Context, column, value string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE `+column+` = ? ORDER BY rowid`,
		value,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by %s: %w", column, err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		dateMs      int64
		description sql.NullString
		expenseType string
	)
	err := row.Scan(&expense.ID, &dateMs, &description, &expenseType,
		&expense.MemberID, &expense.GroupID, &expense.Cost, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}

	expense.Date = time.UnixMilli(dateMs).UTC()
	expense.Type = models.ExpenseType(expenseType)
	if description.Valid {
		expense.Description = &description.String
	}
	return expense, nil
}
