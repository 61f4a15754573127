package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	companyPostgres "github.com/Dhrumivyas20/placement-portal/internal/company/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Company Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *company.Handler
		router  *chi.Mux
	)

	withSession := func(sess *internal.Session) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithSession(r.Context(), sess)))
			})
		}
	}

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := company.NewService(companyPostgres.NewCompanyRepository(db), fakeHasher{}, nil, slogger)
		handler = company.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Post("/companies", handler.Register)
		router.Group(func(r chi.Router) {
			r.Use(withSession(admin))
			r.Get("/admin/companies/{id}", handler.Get)
			r.Patch("/admin/companies/{id}/approve", handler.Approve)
			r.Patch("/admin/companies/{id}/blacklist", handler.Blacklist)
		})
	})

	AfterEach(func() {
		Expect(testutil.Close(db)).To(Succeed())
	})

	register := func() company.CompanyResponse {
		body, _ := json.Marshal(map[string]string{
			"name":             "Initech",
			"email":            "jobs@initech.test",
			"password":         "tpsreports",
			"hr_contact_name":  "Bill",
			"hr_contact_email": "bill@initech.test",
			"industry":         "Software",
		})
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp company.CompanyResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	It("registers a pending company and hides the password", func() {
		resp := register()
		Expect(resp.Status).To(Equal(company.StatusPending))
		Expect(resp.Approved).To(BeFalse())
	})

	It("answers a duplicate registration with 409", func() {
		register()
		body, _ := json.Marshal(map[string]string{
			"name": "Other", "email": "jobs@initech.test", "password": "tpsreports",
			"hr_contact_name": "X", "hr_contact_email": "x@initech.test", "industry": "Software",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body)))
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeEmailTaken)))
	})

	It("refuses to approve a blacklisted company with 409 and keeps it blacklisted", func() {
		id := register().ID
		path := func(action string) string {
			return "/admin/companies/" + strconv.FormatInt(id, 10) + "/" + action
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path("blacklist"), nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path("approve"), nil))
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrorTypeInvalidTransition)))

		detail, err := company.NewService(companyPostgres.NewCompanyRepository(db), fakeHasher{}, nil, slog.Default()).
			Get(context.Background(), admin, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(detail.Company.Blacklisted).To(BeTrue())
	})

	It("rejects a malformed id with 400", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/companies/abc", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for an unknown company", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/companies/99", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
