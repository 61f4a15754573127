package drive

import (
	"context"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, sess *internal.Session, dto DriveDTO) (*Drive, error)
	Get(ctx context.Context, sess *internal.Session, id int64) (*Drive, error)
	Update(ctx context.Context, sess *internal.Session, id int64, dto DriveDTO) (*Drive, error)
	Approve(ctx context.Context, sess *internal.Session, id int64) (*Drive, error)
	Reject(ctx context.Context, sess *internal.Session, id int64) (*Drive, error)
	Close(ctx context.Context, sess *internal.Session, id int64) (*Drive, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto DriveDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	d, err := h.Service.Create(r.Context(), h.Session(r), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d.ToResponse())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Get)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto DriveDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	d, err := h.Service.Update(r.Context(), h.Session(r), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d.ToResponse())
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Reject)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Close)
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request, op func(context.Context, *internal.Session, int64) (*Drive, error)) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	d, err := op(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d.ToResponse())
}
