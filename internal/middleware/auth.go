package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gluislopez/carwash-v2-sub000/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// EmployeeIDKey is the context key for storing the authenticated employee ID.
	EmployeeIDKey contextKey = "employee_id"
	// NameKey is the context key for storing the authenticated employee's name.
	NameKey contextKey = "name"
	// RoleKey is the context key for storing the authenticated employee's role.
	RoleKey contextKey = "role"
)

// GetEmployeeID extracts the employee ID from the context.
// Returns empty string if not found.
func GetEmployeeID(ctx context.Context) string {
	employeeID, _ := ctx.Value(EmployeeIDKey).(string)
	return employeeID
}

// GetName extracts the employee name from the context.
// Returns empty string if not found.
func GetName(ctx context.Context) string {
	name, _ := ctx.Value(NameKey).(string)
	return name
}

// GetRole extracts the employee role from the context.
// Returns empty string if not found.
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// RequireAuth returns a middleware that validates JWT tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and adds the employee ID, name, and role to the request
// context. Requests matched by public pass through without a token; a valid
// token on a public request still populates the context.
func RequireAuth(jwtManager *auth.JWTManager, public func(r *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			optional := public != nil && public(r)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, auth.ErrMissingToken)
				return
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, auth.ErrInvalidToken)
				return
			}

			// Add employee info to context
			ctx := context.WithValue(r.Context(), EmployeeIDKey, claims.EmployeeID)
			ctx = context.WithValue(ctx, NameKey, claims.Name)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + err.Error() + `"}}`))
}
