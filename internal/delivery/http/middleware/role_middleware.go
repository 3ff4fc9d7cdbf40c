package middleware

import (
	"context"
	"errors"
	"net/http"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/pkg/response"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient role")
)

// Authorize checks the identity placed in ctx by Authenticate. It returns
// ErrUnauthenticated when there is none and ErrForbidden when the role is not
// in allowed.
func Authorize(ctx context.Context, allowed ...entity.Role) error {
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return ErrForbidden
}

// RequireRole creates a middleware that checks if the account has any of the required roles
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := Authorize(r.Context(), allowed...); {
			case errors.Is(err, ErrUnauthenticated):
				response.Unauthorized(w, "Role information not found")
				return
			case errors.Is(err, ErrForbidden):
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
