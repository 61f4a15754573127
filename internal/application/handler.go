package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/Dhrumivyas20/placement-portal/pkg/storage"
)

type ServiceAPI interface {
	UpdateStatus(ctx context.Context, sess *internal.Session, id int64, status string, remarks *string) (*Application, error)
	ListByDrive(ctx context.Context, sess *internal.Session, driveID int64) ([]View, error)
	ListByStudent(ctx context.Context, sess *internal.Session, studentID int64) ([]View, error)
	ViewResume(ctx context.Context, sess *internal.Session, id int64) (string, error)
}

// ResumeStore resolves résumé tokens to file contents.
type ResumeStore interface {
	Open(token string) (*os.File, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Resumes ResumeStore
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, resumes ResumeStore) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Resumes:     resumes,
	}
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	app, err := h.Service.UpdateStatus(r.Context(), h.Session(r), id, dto.Status, dto.Remarks)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) ListByDrive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListByDrive)
}

func (h *Handler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Service.ListByStudent)
}

// Mine lists the calling student's own applications.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	sess := h.Session(r)
	if sess == nil {
		h.HandleServiceError(w, internal.ErrUnauthenticated)
		return
	}

	views, err := h.Service.ListByStudent(r.Context(), sess, sess.AccountID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Applications: views})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, op func(context.Context, *internal.Session, int64) ([]View, error)) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	views, err := op(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Applications: views})
}

// DownloadResume streams the applicant's résumé file.
func (h *Handler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	token, err := h.Service.ViewResume(r.Context(), h.Session(r), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	file, err := h.Resumes.Open(token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidToken) {
			h.HandleServiceError(w, ErrResumeNotFound.WithCause(err))
			return
		}
		h.HandleServiceError(w, fmt.Errorf("open resume: %w", err))
		return
	}
	defer file.Close() //nolint:errcheck

	w.Header().Set("Content-Type", contentType(token))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(token)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, file); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to stream resume", "error", err, "application_id", id)
	}
}

func contentType(token string) string {
	switch filepath.Ext(token) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
