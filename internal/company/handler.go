package company

import (
	"context"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterCompanyDTO) (*Company, error)
	Get(ctx context.Context, sess *internal.Session, id int64) (*DetailResponse, error)
	Approve(ctx context.Context, sess *internal.Session, id int64) (*Company, error)
	Reject(ctx context.Context, sess *internal.Session, id int64) (*Company, error)
	Blacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error)
	Unblacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error)
	ToggleBlacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error)
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

// Register handles POST /companies.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterCompanyDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	c, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c.ToResponse())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	detail, err := h.Service.Get(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Reject)
}

func (h *Handler) Blacklist(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Blacklist)
}

func (h *Handler) Unblacklist(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Unblacklist)
}

func (h *Handler) ToggleBlacklist(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.ToggleBlacklist)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, *internal.Session, int64) (*Company, error)) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	c, err := op(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c.ToResponse())
}
