package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, employee_id, category, amount, note, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, nullString(expense.EmployeeID), expense.Category,
		expense.Amount, nullString(expense.Note), expense.Date.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	s.notify("expenses")
	return nil
}

// ListExpenses retrieves expenses dated in [from, to), newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, category, amount, note, date
		 FROM expenses WHERE date >= ? AND date < ? ORDER BY date DESC`,
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var employeeID, note sql.NullString
		var date int64
		if err := rows.Scan(&expense.ID, &employeeID, &expense.Category,
			&expense.Amount, &note, &date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.EmployeeID = employeeID.String
		expense.Note = note.String
		expense.Date = time.Unix(date, 0)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// CreateFeedback persists a customer review linked to a ticket.
func (s *SQLiteStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, transaction_id, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		feedback.ID, feedback.TicketID, feedback.Rating,
		nullString(feedback.Comment), feedback.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	s.notify("feedback")
	return nil
}

// DeleteFeedbackByTicket removes all feedback rows for a ticket.
func (s *SQLiteStore) DeleteFeedbackByTicket(ctx context.Context, ticketID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM feedback WHERE transaction_id = ?", ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	s.notify("feedback")
	return nil
}
