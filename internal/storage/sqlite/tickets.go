package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
)

// CreateTicket persists a new ticket with its extras.
func (s *SQLiteStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	if ticket.Date.IsZero() {
		ticket.Date = ticket.CreatedAt
	}
	// Columns hold Unix seconds; truncate so the returned ticket matches
	// what a later read will see.
	ticket.CreatedAt = ticket.CreatedAt.Truncate(time.Second)
	ticket.Date = ticket.Date.Truncate(time.Second)
	if ticket.Status == "" {
		ticket.Status = models.StatusWaiting
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions
		 (id, customer_id, vehicle_id, service_id, employee_id, status, price,
		  commission_amount, tip, payment_method, date, created_at, started_at,
		  finished_at, cancelled_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID, nullString(ticket.CustomerID), nullString(ticket.VehicleID),
		nullString(ticket.ServiceID), nullString(ticket.EmployeeID), ticket.Status,
		ticket.Price, ticket.CommissionAmount, ticket.Tip,
		nullString(ticket.PaymentMethod), ticket.Date.Unix(), ticket.CreatedAt.Unix(),
		nullTime(ticket.StartedAt), nullTime(ticket.FinishedAt),
		nullString(ticket.CancelledBy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	if err := insertExtras(ctx, tx, ticket.ID, ticket.Extras); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify("transactions")
	return nil
}

// GetTicket retrieves a ticket by ID with extras and assignments hydrated.
func (s *SQLiteStore) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, vehicle_id, service_id, employee_id, status,
		        price, commission_amount, tip, payment_method, date, created_at,
		        started_at, finished_at, cancelled_by
		 FROM transactions WHERE id = ?`,
		ticketID,
	)

	ticket, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrTicketNotFound, ticketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	if err := s.hydrateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket replaces the ticket's mutable fields and its extras.
func (s *SQLiteStore) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET
		   customer_id = ?, vehicle_id = ?, service_id = ?, employee_id = ?,
		   status = ?, price = ?, commission_amount = ?, tip = ?,
		   payment_method = ?, date = ?, started_at = ?, finished_at = ?,
		   cancelled_by = ?
		 WHERE id = ?`,
		nullString(ticket.CustomerID), nullString(ticket.VehicleID),
		nullString(ticket.ServiceID), nullString(ticket.EmployeeID),
		ticket.Status, ticket.Price, ticket.CommissionAmount, ticket.Tip,
		nullString(ticket.PaymentMethod), ticket.Date.Unix(),
		nullTime(ticket.StartedAt), nullTime(ticket.FinishedAt),
		nullString(ticket.CancelledBy), ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrTicketNotFound, ticket.ID)
	}

	// Extras are replaced wholesale; the ticket owns them.
	if _, err := tx.ExecContext(ctx, "DELETE FROM extras WHERE transaction_id = ?", ticket.ID); err != nil {
		return fmt.Errorf("failed to clear extras: %w", err)
	}
	if err := insertExtras(ctx, tx, ticket.ID, ticket.Extras); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify("transactions")
	return nil
}

// ListTickets returns tickets whose service date falls in [from, to), newest
// first, with extras and assignments hydrated.
func (s *SQLiteStore) ListTickets(ctx context.Context, from, to time.Time) ([]models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_id, vehicle_id, service_id, employee_id, status,
		        price, commission_amount, tip, payment_method, date, created_at,
		        started_at, finished_at, cancelled_by
		 FROM transactions
		 WHERE date >= ? AND date < ?
		 ORDER BY date DESC`,
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	for i := range tickets {
		if err := s.hydrateTicket(ctx, &tickets[i]); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

// AddAssignments creates one assignment row per employee for the ticket.
func (s *SQLiteStore) AddAssignments(ctx context.Context, ticketID string, employeeIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, employeeID := range employeeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO assignments (transaction_id, employee_id) VALUES (?, ?)`,
			ticketID, employeeID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify("assignments")
	return nil
}

// DeleteAssignments removes every assignment row for the ticket.
func (s *SQLiteStore) DeleteAssignments(ctx context.Context, ticketID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE transaction_id = ?", ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	s.notify("assignments")
	return nil
}

// CountAssignments returns the lifetime assignment count for an employee.
func (s *SQLiteStore) CountAssignments(ctx context.Context, employeeID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignments WHERE employee_id = ?", employeeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

// hydrateTicket loads extras and assignment rows, folding the legacy
// single-employee field into Assignments so readers never have to fall back.
func (s *SQLiteStore) hydrateTicket(ctx context.Context, ticket *models.Ticket) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, price, commission, assigned_to
		 FROM extras WHERE transaction_id = ?`,
		ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get extras: %w", err)
	}
	defer rows.Close()

	ticket.Extras = []models.Extra{}
	for rows.Next() {
		var extra models.Extra
		var assignedTo sql.NullString
		if err := rows.Scan(&extra.ID, &extra.Description, &extra.Price, &extra.Commission, &assignedTo); err != nil {
			return fmt.Errorf("failed to scan extra: %w", err)
		}
		extra.AssignedTo = assignedTo.String
		ticket.Extras = append(ticket.Extras, extra)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate extras: %w", err)
	}

	assignRows, err := s.db.QueryContext(ctx,
		`SELECT employee_id FROM assignments WHERE transaction_id = ? ORDER BY employee_id`,
		ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get assignments: %w", err)
	}
	defer assignRows.Close()

	ticket.Assignments = []models.Assignment{}
	for assignRows.Next() {
		var employeeID string
		if err := assignRows.Scan(&employeeID); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		ticket.Assignments = append(ticket.Assignments, models.Assignment{
			TicketID:   ticket.ID,
			EmployeeID: employeeID,
		})
	}
	if err := assignRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate assignments: %w", err)
	}

	if len(ticket.Assignments) == 0 && ticket.EmployeeID != "" {
		ticket.Assignments = append(ticket.Assignments, models.Assignment{
			TicketID:   ticket.ID,
			EmployeeID: ticket.EmployeeID,
		})
	}
	return nil
}

func insertExtras(ctx context.Context, tx *sql.Tx, ticketID string, extras []models.Extra) error {
	for i := range extras {
		extra := &extras[i]
		if extra.ID == "" {
			extra.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO extras (id, transaction_id, description, price, commission, assigned_to)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			extra.ID, ticketID, extra.Description, extra.Price, extra.Commission,
			nullString(extra.AssignedTo),
		)
		if err != nil {
			return fmt.Errorf("failed to insert extra: %w", err)
		}
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(row scanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	var customerID, vehicleID, serviceID, employeeID, paymentMethod, cancelledBy sql.NullString
	var date, createdAt int64
	var startedAt, finishedAt sql.NullInt64

	err := row.Scan(
		&ticket.ID, &customerID, &vehicleID, &serviceID, &employeeID,
		&ticket.Status, &ticket.Price, &ticket.CommissionAmount, &ticket.Tip,
		&paymentMethod, &date, &createdAt, &startedAt, &finishedAt, &cancelledBy,
	)
	if err != nil {
		return nil, err
	}

	ticket.CustomerID = customerID.String
	ticket.VehicleID = vehicleID.String
	ticket.ServiceID = serviceID.String
	ticket.EmployeeID = employeeID.String
	ticket.PaymentMethod = paymentMethod.String
	ticket.CancelledBy = cancelledBy.String
	ticket.Date = time.Unix(date, 0)
	ticket.CreatedAt = time.Unix(createdAt, 0)
	ticket.StartedAt = timePtr(startedAt)
	ticket.FinishedAt = timePtr(finishedAt)
	return ticket, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}
