// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// Sentinel errors returned by Store implementations.
var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrNoMembershipUses = errors.New("no membership uses remaining")
)

// Store defines the interface for record storage operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the lifecycle or reporting layers.
type Store interface {
	// CreateTicket persists a new ticket with its extras. The ticket.ID
	// and CreatedAt fields are populated by the store when empty.
	CreateTicket(ctx context.Context, ticket *models.Ticket) error

	// GetTicket retrieves a ticket by ID with its extras and assignment
	// rows hydrated. The legacy single-employee field is folded into
	// Assignments at load time.
	GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error)

	// UpdateTicket replaces a ticket's mutable fields and its extras.
	UpdateTicket(ctx context.Context, ticket *models.Ticket) error

	// ListTickets returns tickets whose service date falls in [from, to),
	// hydrated like GetTicket, newest first.
	ListTickets(ctx context.Context, from, to time.Time) ([]models.Ticket, error)

	// AddAssignments creates one assignment row per employee for the
	// ticket. Existing (ticket, employee) pairs are kept untouched.
	AddAssignments(ctx context.Context, ticketID string, employeeIDs []string) error

	// DeleteAssignments removes every assignment row for the ticket.
	DeleteAssignments(ctx context.Context, ticketID string) error

	// CountAssignments returns the lifetime number of assignment rows for
	// an employee (the gamification XP figure).
	CountAssignments(ctx context.Context, employeeID string) (int, error)

	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)

	// AddLoyaltyPoints adjusts a customer's loyalty balance by delta,
	// which may be negative for redemptions.
	AddLoyaltyPoints(ctx context.Context, customerID string, delta int) error

	// UseMembership burns one membership use. Returns ErrNoMembershipUses
	// when the counter is already zero.
	UseMembership(ctx context.Context, customerID string) error

	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error)

	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	DeleteFeedbackByTicket(ctx context.Context, ticketID string) error

	// GetSettings returns the singleton settings record, zero-valued when
	// never written. UpsertSettings replaces it.
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpsertSettings(ctx context.Context, settings *models.Settings) error

	// Subscribe registers a callback fired after every mutation with the
	// name of the changed collection. Terminals use it to trigger a
	// re-list; duplicate refreshes are idempotent for the caller.
	Subscribe(fn func(collection string))

	// Close releases any resources held by the store.
	Close() error
}
