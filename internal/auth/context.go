package auth

import (
	"context"
	"net/http"

	"github.com/stackmart/catalog/internal/domain"
)

type contextKey string

const roleKey contextKey = "actorRole"

// roleHeader is set by the upstream gateway after authentication;
// authentication itself is outside this service.
const roleHeader = "X-Actor-Role"

// ContextWithRole returns a new context carrying the actor role.
func ContextWithRole(ctx context.Context, role domain.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromContext retrieves the actor role, defaulting to customer.
func RoleFromContext(ctx context.Context) domain.Role {
	if ctx == nil {
		return domain.RoleCustomer
	}
	if role, ok := ctx.Value(roleKey).(domain.Role); ok {
		return role
	}
	return domain.RoleCustomer
}

// RoleMiddleware propagates the gateway-asserted role into the context.
func RoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.RoleCustomer
		if r.Header.Get(roleHeader) == string(domain.RoleAdmin) {
			role = domain.RoleAdmin
		}
		next.ServeHTTP(w, r.WithContext(ContextWithRole(r.Context(), role)))
	})
}

// RequireAdmin rejects requests whose context does not carry the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != domain.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
