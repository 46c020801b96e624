package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

func claimString(r *http.Request, key string) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	s, _ := claims[key].(string)
	return s
}

// getUserIDFromContext returns the user_id claim of the verified JWT.
func getUserIDFromContext(r *http.Request) string {
	return claimString(r, "user_id")
}

// getBusinessIDFromContext returns the company_id claim, which names the
// business the caller operates.
func getBusinessIDFromContext(r *http.Request) string {
	return claimString(r, "company_id")
}
