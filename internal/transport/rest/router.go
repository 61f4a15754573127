package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/admin"
	"github.com/Dhrumivyas20/placement-portal/internal/application"
	"github.com/Dhrumivyas20/placement-portal/internal/auth"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/metrics"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	"github.com/Dhrumivyas20/placement-portal/internal/transport/middleware"
	"github.com/Dhrumivyas20/placement-portal/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups every domain handler the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Admin       *admin.Handler
	Student     *student.Handler
	Company     *company.Handler
	Drive       *drive.Handler
	Application *application.Handler
	Statistics  *statistics.Handler
}

type Options struct {
	AllowedOrigins string
	MetricsPath    string
	OpenAPIPath    string
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, m *metrics.Metrics, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(logger)

	if opts.OpenAPIPath == "" {
		opts.OpenAPIPath = "./api/openapi.yml"
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(m.Middleware)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, opts.OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())
	if m != nil && opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, m.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.SessionContext)

			pr.Route("/auth", func(ar chi.Router) {
				ar.Post("/login", h.Auth.Login)
				ar.Post("/logout", h.Auth.Logout)
			})

			pr.Post("/students", h.Student.Register)
			pr.Post("/companies", h.Company.Register)

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())

				ar.Get("/me", h.Admin.Me)
				ar.Get("/dashboard", h.Admin.Dashboard)

				ar.Get("/companies/{id}", h.Company.Get)
				ar.Patch("/companies/{id}/approve", h.Company.Approve)
				ar.Patch("/companies/{id}/reject", h.Company.Reject)
				ar.Patch("/companies/{id}/blacklist", h.Company.Blacklist)
				ar.Patch("/companies/{id}/unblacklist", h.Company.Unblacklist)
				ar.Patch("/companies/{id}/toggle-blacklist", h.Company.ToggleBlacklist)

				ar.Get("/students/{id}", h.Student.Get)
				ar.Patch("/students/{id}/blacklist", h.Student.Blacklist)
				ar.Patch("/students/{id}/toggle-blacklist", h.Student.ToggleBlacklist)
				ar.Get("/students/{id}/applications", h.Application.ListByStudent)

				ar.Get("/drives/{id}", h.Drive.Get)
				ar.Patch("/drives/{id}/approve", h.Drive.Approve)
				ar.Patch("/drives/{id}/reject", h.Drive.Reject)
				ar.Patch("/drives/{id}/close", h.Drive.Close)
				ar.Get("/drives/{id}/applications", h.Application.ListByDrive)

				ar.Get("/applications/{id}/resume", h.Application.DownloadResume)

				ar.Get("/statistics", h.Statistics.ListSnapshots)
				ar.Post("/statistics", h.Statistics.CreateSnapshot)
			})

			pr.Route("/company", func(cr chi.Router) {
				cr.Use(rbac.RequireCompany())

				cr.Get("/dashboard", h.Statistics.CompanyDashboard)
				cr.Post("/drives", h.Drive.Create)
				cr.Get("/drives/{id}", h.Drive.Get)
				cr.Put("/drives/{id}", h.Drive.Update)
				cr.Patch("/drives/{id}/close", h.Drive.Close)
				cr.Get("/drives/{id}/applications", h.Application.ListByDrive)
				cr.Patch("/applications/{id}/status", h.Application.UpdateStatus)
				cr.Get("/applications/{id}/resume", h.Application.DownloadResume)
			})

			pr.Route("/student", func(sr chi.Router) {
				sr.Use(rbac.RequireRole(internal.RoleStudent))

				sr.Get("/dashboard", h.Statistics.StudentDashboard)
				sr.Get("/profile", h.Student.Profile)
				sr.Get("/applications", h.Application.Mine)
			})
		})
	})
}
