package auth

import (
	"context"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, PIN, OAuth, etc.)
// without changing the handler layer code.
type Authenticator interface {
	// Register creates a new employee account with the given name and credential.
	// The credential format depends on the implementation (e.g., password, OAuth token, etc.)
	// Returns the created employee or an error if registration fails.
	Register(ctx context.Context, name, role, credential string) (*models.Employee, error)

	// Authenticate verifies the employee's credentials and returns the employee if successful.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, name, credential string) (*models.Employee, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
