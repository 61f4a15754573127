package middleware

import (
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/pkg/logger"
)

// SessionContext tags request-scoped log fields with the caller identity once authentication has run.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := internal.SessionFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "account_id", s.AccountID, "role", string(s.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
