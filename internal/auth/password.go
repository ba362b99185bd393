package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrNameExists         = errors.New("employee name already registered")
	ErrInvalidRole        = errors.New("invalid employee role")
)

// EmployeeStorage defines the interface for employee persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type EmployeeStorage interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployeeByName(ctx context.Context, name string) (*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage EmployeeStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage EmployeeStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new employee account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, role, credential string) (*models.Employee, error) {
	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	// Check if name is already taken
	existing, err := a.storage.GetEmployeeByName(ctx, name)
	if err == nil && existing != nil {
		return nil, ErrNameExists
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		Name:         name,
		Role:         role,
		PasswordHash: string(hashedPassword),
	}

	if err := a.storage.CreateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// Authenticate verifies the name and password, returning the employee if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, name, credential string) (*models.Employee, error) {
	employee, err := a.storage.GetEmployeeByName(ctx, name)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}
