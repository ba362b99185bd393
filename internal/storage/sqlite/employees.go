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

// CreateEmployee inserts a new employee into the database.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, role, phone, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		employee.ID, employee.Name, employee.Role, nullString(employee.Phone),
		employee.PasswordHash, employee.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	s.notify("employees")
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.getEmployee(ctx, "id = ?", id)
}

// GetEmployeeByName retrieves an employee by their unique name.
func (s *SQLiteStore) GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error) {
	return s.getEmployee(ctx, "name = ?", name)
}

func (s *SQLiteStore) getEmployee(ctx context.Context, where string, arg any) (*models.Employee, error) {
	employee := &models.Employee{}
	var phone sql.NullString
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, phone, password_hash, created_at
		 FROM employees WHERE `+where,
		arg,
	).Scan(&employee.ID, &employee.Name, &employee.Role, &phone,
		&employee.PasswordHash, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", storage.ErrEmployeeNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	employee.Phone = phone.String
	employee.CreatedAt = time.Unix(createdAt, 0)
	return employee, nil
}

// ListEmployees retrieves all employees ordered by name.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, phone, password_hash, created_at
		 FROM employees ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		var phone sql.NullString
		var createdAt int64
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Role, &phone,
			&employee.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employee.Phone = phone.String
		employee.CreatedAt = time.Unix(createdAt, 0)
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
