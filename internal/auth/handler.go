package auth

import (
	"context"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentIdentity(ctx context.Context, token string) (*internal.Session, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Login issues a new session token. Any token the client already held is simply replaced.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.HandleServiceError(w, internal.ErrUnauthenticated)
		return
	}

	if err := h.Service.Logout(r.Context(), token); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware places the caller's session in the request context. Requests without a token
// pass through anonymously; role gates downstream reject them.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := h.Service.CurrentIdentity(r.Context(), token)
		if err != nil {
			h.Logger.WarnContext(r.Context(), "token validation failed", "error", err)
			h.HandleServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithSession(r.Context(), sess)))
	})
}
