package auth

import (
	"log/slog"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

// RBACAuthorization guards route groups by session role.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RBACAuthorization) RequireRole(roles ...internal.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := ra.Session(r)
			if err := sess.Require(roles...); err != nil {
				ra.Logger.WarnContext(r.Context(), "access denied",
					"path", r.URL.Path,
					"required_roles", roles,
					"role", roleOf(sess))
				ra.HandleServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(internal.RoleAdmin)
}

func (ra *RBACAuthorization) RequireCompany() func(http.Handler) http.Handler {
	return ra.RequireRole(internal.RoleCompany)
}

func (ra *RBACAuthorization) RequireStudent() func(http.Handler) http.Handler {
	return ra.RequireRole(internal.RoleStudent)
}

func roleOf(sess *internal.Session) string {
	if sess == nil {
		return "anonymous"
	}
	return string(sess.Role)
}
