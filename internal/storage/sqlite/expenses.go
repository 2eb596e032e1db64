package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpense persists a new expense with its split lists.
// The trip must exist.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if _, err := s.GetTrip(ctx, expense.TripID); err != nil {
		return err
	}
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Description == "" {
		expense.Description = generateDescription(expense.SplitWith, expense.CreatedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, category, amount, paid_by, paid_by_user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, expense.Category,
		expense.Amount.String(), expense.PaidBy, expense.PaidByUserID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its split lists.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, description, category, amount, paid_by, paid_by_user_id, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.TripID, &expense.Description, &expense.Category,
		&expense.Amount, &expense.PaidBy, &expense.PaidByUserID, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	names, err := s.querySplits(ctx,
		"SELECT expense_id, name FROM expense_split_names WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	users, err := s.querySplits(ctx,
		"SELECT expense_id, user_id FROM expense_split_users WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	expense.SplitWith = names[expenseID]
	expense.SplitWithUserIDs = users[expenseID]

	return expense, nil
}

// ListExpensesByTrip retrieves a trip's expenses, oldest first.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, description, category, amount, paid_by, paid_by_user_id, created_at
		 FROM expenses WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by trip: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.TripID, &e.Description, &e.Category,
			&e.Amount, &e.PaidBy, &e.PaidByUserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	names, err := s.querySplits(ctx,
		`SELECT s.expense_id, s.name FROM expense_split_names s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ? ORDER BY s.expense_id, s.position`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	users, err := s.querySplits(ctx,
		`SELECT s.expense_id, s.user_id FROM expense_split_users s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ? ORDER BY s.expense_id, s.position`,
		tripID,
	)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		expenses[i].SplitWith = names[expenses[i].ID]
		expenses[i].SplitWithUserIDs = users[expenses[i].ID]
	}
	return expenses, nil
}

// UpdateExpense replaces an expense's fields and split lists.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, category = ?, amount = ?, paid_by = ?, paid_by_user_id = ?
		 WHERE id = ?`,
		expense.Description, expense.Category, expense.Amount.String(),
		expense.PaidBy, expense.PaidByUserID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := requireAffected(result, "expense", expense.ID); err != nil {
		return err
	}

	for _, table := range []string{"expense_split_names", "expense_split_users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(result, "expense", expenseID)
}

// insertSplits writes both split lists, keeping their order.
func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i, name := range expense.SplitWith {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_split_names (expense_id, position, name) VALUES (?, ?, ?)",
			expense.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split name: %w", err)
		}
	}
	for i, userID := range expense.SplitWithUserIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_split_users (expense_id, position, user_id) VALUES (?, ?, ?)",
			expense.ID, i, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split user: %w", err)
		}
	}
	return nil
}

// querySplits runs a two-column (expense_id, value) query and groups values by expense.
func (s *SQLiteStore) querySplits(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]string)
	for rows.Next() {
		var expenseID, value string
		if err := rows.Scan(&expenseID, &value); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits[expenseID] = append(splits[expenseID], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// generateDescription creates an auto-generated description from the people splitting.
func generateDescription(splitWith []string, createdAt int64) string {
	if len(splitWith) == 0 {
		return fmt.Sprintf("Expense - %s", time.Unix(createdAt, 0).Format("Jan 2, 2006"))
	}
	if len(splitWith) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(splitWith, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(splitWith[:2], ", "),
		len(splitWith)-2,
	)
}
