package admin

import (
	"context"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	Dashboard(ctx context.Context, sess *internal.Session, query string) (*DashboardResponse, error)
	Me(ctx context.Context, sess *internal.Session) (*Admin, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Dashboard serves GET /admin/dashboard?search=.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.Dashboard(r.Context(), h.Session(r), r.URL.Query().Get("search"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Me(r.Context(), h.Session(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}
