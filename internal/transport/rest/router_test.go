package rest_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dhrumivyas20/placement-portal/internal/admin"
	adminPostgres "github.com/Dhrumivyas20/placement-portal/internal/admin/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/application"
	applicationPostgres "github.com/Dhrumivyas20/placement-portal/internal/application/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/auth"
	authPostgres "github.com/Dhrumivyas20/placement-portal/internal/auth/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	companyPostgres "github.com/Dhrumivyas20/placement-portal/internal/company/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	directoryPostgres "github.com/Dhrumivyas20/placement-portal/internal/directory/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	drivePostgres "github.com/Dhrumivyas20/placement-portal/internal/drive/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/metrics"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
	statisticsPostgres "github.com/Dhrumivyas20/placement-portal/internal/statistics/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	studentPostgres "github.com/Dhrumivyas20/placement-portal/internal/student/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/Dhrumivyas20/placement-portal/internal/transport/rest"
	"github.com/Dhrumivyas20/placement-portal/pkg/storage"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const openAPIPath = "../../../api/openapi.yml"

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func buildHandlers(db *gorm.DB, resumeDir string, logger *slog.Logger) (rest.Handlers, *admin.Service) {
	sqlxDB, err := testutil.SQLX(db)
	Expect(err).NotTo(HaveOccurred())

	resumes, err := storage.NewLocalStorage(resumeDir)
	Expect(err).NotTo(HaveOccurred())

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	base := transport.NewBaseHandler(logger)
	bus := events.NewEventBus(logger)

	driveService := drive.NewService(drivePostgres.NewDriveRepository(db), bus, logger)
	statsService := statistics.NewService(statisticsPostgres.NewStatisticsRepository(sqlxDB), driveService, logger)
	dirService := directory.NewService(directoryPostgres.NewDirectoryRepository(db), logger)
	adminService := admin.NewService(adminPostgres.NewAdminRepository(db), hasher, statsService, dirService, logger)
	authService := auth.NewService(
		authPostgres.NewAccountRepository(db),
		auth.NewJWTTokenGenerator("router-signing-secret-0123456789abcdef", time.Hour),
		authPostgres.NewSessionRepository(db),
		logger,
	)

	return rest.Handlers{
		Auth:        auth.NewHandler(base, authService),
		Admin:       admin.NewHandler(base, adminService),
		Student:     student.NewHandler(base, student.NewService(studentPostgres.NewStudentRepository(db), hasher, bus, logger)),
		Company:     company.NewHandler(base, company.NewService(companyPostgres.NewCompanyRepository(db), hasher, bus, logger)),
		Drive:       drive.NewHandler(base, driveService),
		Application: application.NewHandler(base, application.NewService(applicationPostgres.NewApplicationRepository(db), bus, logger), resumes),
		Statistics:  statistics.NewHandler(base, statsService),
	}, adminService
}

var _ = Describe("Router", func() {
	var (
		db       *gorm.DB
		healthDB *sql.DB
		mock     sqlmock.Sqlmock
		router   *chi.Mux
		adminSvc *admin.Service
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())

		healthDB, mock, err = sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		var handlers rest.Handlers
		handlers, adminSvc = buildHandlers(db, GinkgoT().TempDir(), logger)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, healthDB, handlers, metrics.New(), rest.Options{
			MetricsPath: "/metrics",
			OpenAPIPath: openAPIPath,
		}, logger)
	})

	AfterEach(func() {
		mock.ExpectClose()
		Expect(healthDB.Close()).To(Succeed())
		Expect(testutil.Close(db)).To(Succeed())
	})

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("OpenAPI document", func() {
		var doc *openapi3.T

		BeforeEach(func() {
			var err error
			doc, err = openapi3.NewLoader().LoadFromFile(openAPIPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Validate(context.Background())).To(Succeed())
		})

		registered := func() map[string]bool {
			routes := map[string]bool{}
			err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				routes[method+" "+route] = true
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			return routes
		}

		It("is served by a registered route for every documented operation", func() {
			routes := registered()
			for path, item := range doc.Paths.Map() {
				for method := range item.Operations() {
					Expect(routes).To(HaveKey(method+" "+path), "documented route %s %s is not registered", method, path)
				}
			}
		})

		It("documents every API route", func() {
			for route := range registered() {
				parts := strings.SplitN(route, " ", 2)
				if !strings.HasPrefix(parts[1], "/api/v1/") {
					continue
				}
				item := doc.Paths.Find(parts[1])
				Expect(item).NotTo(BeNil(), "missing path %s", parts[1])
				Expect(item.GetOperation(parts[0])).NotTo(BeNil(), "missing operation %s", route)
			}
		})

		It("serves the document itself", func() {
			w := do(http.MethodGet, "/openapi.yml", "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Placement Portal API"))
		})
	})

	Describe("health", func() {
		It("answers 200 when the database pings", func() {
			mock.ExpectPing()

			w := do(http.MethodGet, "/api/v1/health", "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"healthy"`))
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})

		It("answers 503 without leaking the driver error", func() {
			mock.ExpectPing().WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))

			w := do(http.MethodGet, "/api/v1/health", "", nil)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).To(ContainSubstring("database unreachable"))
			Expect(w.Body.String()).NotTo(ContainSubstring("10.0.0.5"))
		})

		It("answers ping without touching the database", func() {
			w := do(http.MethodGet, "/api/v1/ping", "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})
	})

	Describe("authentication flow", func() {
		BeforeEach(func() {
			created, err := adminSvc.EnsureDefault(context.Background(), admin.DefaultAdmin{
				Username: "admin",
				Email:    "admin@college.edu",
				Password: "admin-secret",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
		})

		login := func(email, password string) string {
			w := do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
			Expect(w.Code).To(Equal(http.StatusOK))
			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			return resp.Token
		}

		It("rejects anonymous access to a role area", func() {
			Expect(do(http.MethodGet, "/api/v1/admin/me", "", nil).Code).To(Equal(http.StatusUnauthorized))
		})

		It("lets the default admin in and out", func() {
			token := login("admin@college.edu", "admin-secret")

			w := do(http.MethodGet, "/api/v1/admin/me", token, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("admin@college.edu"))

			Expect(do(http.MethodGet, "/api/v1/student/dashboard", token, nil).Code).To(Equal(http.StatusForbidden))

			Expect(do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodGet, "/api/v1/admin/me", token, nil).Code).To(Equal(http.StatusUnauthorized))
		})

		It("walks a company from registration to an approved drive", func() {
			w := do(http.MethodPost, "/api/v1/companies", "", map[string]string{
				"name":             "Acme Analytics",
				"email":            "hr@acme.example",
				"password":         "acme-secret",
				"hr_contact_name":  "Priya",
				"hr_contact_email": "priya@acme.example",
				"industry":         "Software",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			var created company.CompanyResponse
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			w = do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "hr@acme.example", "password": "acme-secret"})
			Expect(w.Code).To(Equal(http.StatusForbidden))

			adminToken := login("admin@college.edu", "admin-secret")
			w = do(http.MethodPatch, "/api/v1/admin/companies/"+itoa(created.ID)+"/approve", adminToken, nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			companyToken := login("hr@acme.example", "acme-secret")
			w = do(http.MethodPost, "/api/v1/company/drives", companyToken, map[string]interface{}{
				"job_title":            "Backend Engineer",
				"job_description":      "Services in Go",
				"job_location":         "Pune",
				"job_type":             "Full-time",
				"positions":            2,
				"application_deadline": "2099-06-30",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			var posted drive.DriveResponse
			Expect(json.NewDecoder(w.Body).Decode(&posted)).To(Succeed())

			w = do(http.MethodPatch, "/api/v1/admin/drives/"+itoa(posted.ID)+"/approve", adminToken, nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = do(http.MethodGet, "/api/v1/company/dashboard", companyToken, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Backend Engineer"))
		})

		It("cuts off a company session when the company is blacklisted", func() {
			w := do(http.MethodPost, "/api/v1/companies", "", map[string]string{
				"name":             "Globex",
				"email":            "hr@globex.example",
				"password":         "globex-secret",
				"hr_contact_name":  "Hank",
				"hr_contact_email": "hank@globex.example",
				"industry":         "Energy",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			var created company.CompanyResponse
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			adminToken := login("admin@college.edu", "admin-secret")
			Expect(do(http.MethodPatch, "/api/v1/admin/companies/"+itoa(created.ID)+"/approve", adminToken, nil).Code).To(Equal(http.StatusOK))

			companyToken := login("hr@globex.example", "globex-secret")
			Expect(do(http.MethodGet, "/api/v1/company/dashboard", companyToken, nil).Code).To(Equal(http.StatusOK))

			Expect(do(http.MethodPatch, "/api/v1/admin/companies/"+itoa(created.ID)+"/blacklist", adminToken, nil).Code).To(Equal(http.StatusOK))

			w = do(http.MethodPost, "/api/v1/company/drives", companyToken, map[string]interface{}{
				"job_title":            "Plant Operator",
				"job_description":      "Shift work",
				"job_location":         "Springfield",
				"job_type":             "Full-time",
				"positions":            1,
				"application_deadline": "2099-06-30",
			})
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("COMPANY_BLACKLISTED"))
		})
	})

	It("exposes request metrics", func() {
		do(http.MethodGet, "/api/v1/ping", "", nil)

		w := do(http.MethodGet, "/metrics", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`route="/api/v1/ping"`))
	})
})
