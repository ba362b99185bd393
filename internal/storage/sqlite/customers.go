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

// CreateCustomer inserts a new customer into the database.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, phone, loyalty_points, membership_uses, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		customer.ID, customer.Name, nullString(customer.Phone),
		customer.LoyaltyPoints, customer.MembershipUses, customer.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	s.notify("customers")
	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *SQLiteStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer := &models.Customer{}
	var phone sql.NullString
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, loyalty_points, membership_uses, created_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer.ID, &customer.Name, &phone, &customer.LoyaltyPoints,
		&customer.MembershipUses, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrCustomerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Phone = phone.String
	customer.CreatedAt = time.Unix(createdAt, 0)
	return customer, nil
}

// AddLoyaltyPoints adjusts a customer's loyalty balance by delta. The balance
// never drops below zero.
func (s *SQLiteStore) AddLoyaltyPoints(ctx context.Context, customerID string, delta int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers SET loyalty_points = MAX(0, loyalty_points + ?) WHERE id = ?`,
		delta, customerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loyalty points: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check loyalty update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrCustomerNotFound, customerID)
	}

	s.notify("customers")
	return nil
}

// UseMembership burns one membership use. Returns ErrNoMembershipUses when
// the counter is already zero.
func (s *SQLiteStore) UseMembership(ctx context.Context, customerID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers SET membership_uses = membership_uses - 1
		 WHERE id = ? AND membership_uses > 0`,
		customerID,
	)
	if err != nil {
		return fmt.Errorf("failed to use membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check membership update: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing customer from an exhausted membership.
		if _, err := s.GetCustomer(ctx, customerID); err != nil {
			return err
		}
		return storage.ErrNoMembershipUses
	}

	s.notify("customers")
	return nil
}

// CreateVehicle inserts a new vehicle into the database.
func (s *SQLiteStore) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, customer_id, plate, make, model, color)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		vehicle.ID, vehicle.CustomerID, vehicle.Plate,
		nullString(vehicle.Make), nullString(vehicle.Model), nullString(vehicle.Color),
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.notify("vehicles")
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *SQLiteStore) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	var make, model, color sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, plate, make, model, color FROM vehicles WHERE id = ?`,
		id,
	).Scan(&vehicle.ID, &vehicle.CustomerID, &vehicle.Plate, &make, &model, &color)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrVehicleNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	vehicle.Make = make.String
	vehicle.Model = model.String
	vehicle.Color = color.String
	return vehicle, nil
}
