package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/auth"
	authPostgres "github.com/Dhrumivyas20/placement-portal/internal/auth/postgres"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(
			authPostgres.NewAccountRepository(db),
			auth.NewJWTTokenGenerator(secret, time.Hour),
			authPostgres.NewSessionRepository(db),
			slogger,
		)
		handler := auth.NewHandler(transport.NewBaseHandler(slogger), service)
		rbac := auth.NewRBACAuthorization(slogger)

		router = chi.NewRouter()
		router.Use(handler.AuthMiddleware)
		router.Post("/auth/login", handler.Login)
		router.Post("/auth/logout", handler.Logout)
		router.With(rbac.RequireStudent()).Get("/student/whoami", func(w http.ResponseWriter, r *http.Request) {
			sess, _ := internal.SessionFromContext(r.Context())
			_ = json.NewEncoder(w).Encode(sess)
		})
		router.With(rbac.RequireAdmin()).Get("/admin/only", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		row := &studentDatamodel.Student{Name: "S", Email: "s@x.test", PasswordHash: mustHash("pw"), Department: "CSE", JoiningYear: 2022, GraduationYear: 2026, IsActive: true}
		Expect(db.Create(row).Error).To(Succeed())
	})

	AfterEach(func() {
		Expect(testutil.Close(db)).To(Succeed())
	})

	send := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
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

	loginToken := func() string {
		w := send(http.MethodPost, "/auth/login", "", map[string]string{"email": "s@x.test", "password": "pw"})
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp auth.LoginResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Role).To(Equal(internal.RoleStudent))
		return resp.Token
	}

	It("answers 401 with a generic body for bad credentials", func() {
		w := send(http.MethodPost, "/auth/login", "", map[string]string{"email": "s@x.test", "password": "nope"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
	})

	It("answers 400 for a malformed login body", func() {
		w := send(http.MethodPost, "/auth/login", "", map[string]string{"email": "not-an-email"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("gates routes by role", func() {
		Expect(send(http.MethodGet, "/student/whoami", "", nil).Code).To(Equal(http.StatusUnauthorized))

		token := loginToken()
		w := send(http.MethodGet, "/student/whoami", token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"role":"student"`))

		Expect(send(http.MethodGet, "/admin/only", token, nil).Code).To(Equal(http.StatusForbidden))
	})

	It("invalidates the token on logout", func() {
		token := loginToken()
		Expect(send(http.MethodPost, "/auth/logout", token, nil).Code).To(Equal(http.StatusNoContent))
		Expect(send(http.MethodGet, "/student/whoami", token, nil).Code).To(Equal(http.StatusUnauthorized))
	})

	It("requires a token to log out", func() {
		Expect(send(http.MethodPost, "/auth/logout", "", nil).Code).To(Equal(http.StatusUnauthorized))
	})
})
