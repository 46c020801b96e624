package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole allows only the listed roles. Super admins always pass.
func RequireRole(denied error, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, denied)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, denied)
				return
			}

			if role != jwt.RoleSuperAdmin && !slices.Contains(roles, role) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager requires a manager, admin or owner role
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(auth.ErrManagerAccessRequired, jwt.RoleOwner, jwt.RoleAdmin, jwt.RoleManager)(next)
}

// RequireOwner requires owner or admin role
func RequireOwner(next http.Handler) http.Handler {
	return RequireRole(auth.ErrOwnerAccessRequired, jwt.RoleOwner, jwt.RoleAdmin)(next)
}
