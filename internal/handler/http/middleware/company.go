package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireBusiness rejects tokens without a company_id claim.
func RequireBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		businessID, ok := claims["company_id"].(string)
		if !ok || businessID == "" {
			response.HandleError(w, auth.ErrBusinessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
