package student

import (
	"context"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterStudentDTO) (*Student, error)
	Get(ctx context.Context, sess *internal.Session, id int64) (*Student, error)
	Blacklist(ctx context.Context, sess *internal.Session, id int64) (*Student, error)
	ToggleBlacklist(ctx context.Context, sess *internal.Session, id int64) (*Student, error)
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

// Register handles POST /students.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterStudentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Get)
}

// Profile handles GET /student/profile for the logged-in student.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := h.Session(r)
	if err := sess.Require(internal.RoleStudent); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.Get(r.Context(), sess, sess.AccountID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) Blacklist(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.Blacklist)
}

func (h *Handler) ToggleBlacklist(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, h.Service.ToggleBlacklist)
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request, op func(context.Context, *internal.Session, int64) (*Student, error)) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := op(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}
