package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
)

// CreateService inserts a catalog service into the database.
func (s *SQLiteStore) CreateService(ctx context.Context, service *models.Service) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO services (id, name, price, commission) VALUES (?, ?, ?, ?)`,
		service.ID, service.Name, service.Price, service.Commission,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	s.notify("services")
	return nil
}

// GetService retrieves a catalog service by ID.
func (s *SQLiteStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	service := &models.Service{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, price, commission FROM services WHERE id = ?`,
		id,
	).Scan(&service.ID, &service.Name, &service.Price, &service.Commission)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

// ListServices retrieves the full service catalog ordered by name.
func (s *SQLiteStore) ListServices(ctx context.Context) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, commission FROM services ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(&service.ID, &service.Name, &service.Price, &service.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}

	return services, nil
}
