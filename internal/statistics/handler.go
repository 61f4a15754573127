package statistics

import (
	"context"
	"net/http"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
)

type ServiceAPI interface {
	CompanyDashboard(ctx context.Context, sess *internal.Session, today time.Time) (*CompanyDashboard, error)
	StudentDashboard(ctx context.Context, sess *internal.Session) (*StudentDashboard, error)
	Snapshot(ctx context.Context, sess *internal.Session, dto SnapshotDTO) (*Snapshot, error)
	ListSnapshots(ctx context.Context, sess *internal.Session) ([]*Snapshot, error)
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

func (h *Handler) CompanyDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.CompanyDashboard(r.Context(), h.Session(r), time.Now())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Service.StudentDashboard(r.Context(), h.Session(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var dto SnapshotDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	snap, err := h.Service.Snapshot(r.Context(), h.Session(r), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, snap)
}

func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Service.ListSnapshots(r.Context(), h.Session(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SnapshotListResponse{Snapshots: snaps})
}
