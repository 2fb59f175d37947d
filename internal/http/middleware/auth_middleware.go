package middleware

import (
	"net/http"

	"github.com/sandeepkv93/catalog-api/internal/http/response"
	"github.com/sandeepkv93/catalog-api/internal/observability"
)

const msgInvalidToken = "Invalid token"

// TokenValidator is satisfied by *security.TokenValidator.
type TokenValidator interface {
	Validate(authorizationHeader string) bool
}

// RequireAPIToken rejects requests whose Authorization header does not carry
// the shared bearer token. Nothing downstream runs for a rejected request.
func RequireAPIToken(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !v.Validate(header) {
				outcome := "invalid"
				if header == "" {
					outcome = "missing"
				}
				observability.RecordTokenValidation(r.Context(), outcome)
				response.Error(w, r, http.StatusUnauthorized, msgInvalidToken, nil)
				return
			}
			observability.RecordTokenValidation(r.Context(), "valid")
			next.ServeHTTP(w, r)
		})
	}
}
