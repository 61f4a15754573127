package application_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/application"
	applicationPostgres "github.com/Dhrumivyas20/placement-portal/internal/application/postgres"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/Dhrumivyas20/placement-portal/pkg/storage"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Application Handler Integration", func() {
	var (
		db        *gorm.DB
		store     *storage.LocalStorage
		repo      *applicationPostgres.ApplicationRepository
		caller    *internal.Session
		router    *chi.Mux
		companyID int64
		driveID   int64
		studentID int64
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())
		store, err = storage.NewLocalStorage(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = applicationPostgres.NewApplicationRepository(db)
		handler := application.NewHandler(transport.NewBaseHandler(slogger), application.NewService(repo, nil, slogger), store)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithSession(r.Context(), caller)))
			})
		})
		router.Patch("/company/applications/{id}/status", handler.UpdateStatus)
		router.Get("/company/drives/{id}/applications", handler.ListByDrive)
		router.Get("/company/applications/{id}/resume", handler.DownloadResume)

		c := &companyDatamodel.Company{Name: "Acme", Email: "hr@acme.test", PasswordHash: "x", HRContactName: "Ravi", HRContactEmail: "ravi@acme.test", Industry: "IT", ApprovalStatus: "approved"}
		Expect(db.Create(c).Error).To(Succeed())
		companyID = c.ID

		d := &driveDatamodel.PlacementDrive{
			CompanyID: companyID, JobTitle: "SDE", JobDescription: "Build", JobLocation: "Pune", JobType: "Full-time",
			Positions: 1, ApplicationDeadline: time.Now().AddDate(0, 0, 7), DatePosted: time.Now(), Status: "open",
		}
		Expect(db.Create(d).Error).To(Succeed())
		driveID = d.ID

		s := &studentDatamodel.Student{Name: "Asha", Email: "asha@college.test", PasswordHash: "x", Department: "CSE", CGPA: 8.5, JoiningYear: 2022, GraduationYear: 2026, IsActive: true}
		Expect(db.Create(s).Error).To(Succeed())
		studentID = s.ID

		caller = &internal.Session{AccountID: companyID, Role: internal.RoleCompany}
	})

	AfterEach(func() {
		Expect(testutil.Close(db)).To(Succeed())
	})

	apply := func() string {
		row := application.ToDataModel(application.NewApplication(studentID, driveID))
		Expect(repo.Create(context.Background(), row)).To(Succeed())
		return strconv.FormatInt(row.ID, 10)
	}

	send := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, &buf))
		return w
	}

	It("updates the status and lists the applicant", func() {
		id := apply()

		w := send(http.MethodPatch, "/company/applications/"+id+"/status", map[string]string{"status": "Selected", "remarks": "strong"})
		Expect(w.Code).To(Equal(http.StatusOK))

		w = send(http.MethodGet, "/company/drives/"+strconv.FormatInt(driveID, 10)+"/applications", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var list application.ListResponse
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list.Applications).To(HaveLen(1))
		Expect(list.Applications[0].Status).To(Equal(application.StatusSelected))
		Expect(*list.Applications[0].Remarks).To(Equal("strong"))
	})

	It("answers 400 for a status outside the decision set", func() {
		id := apply()
		w := send(http.MethodPatch, "/company/applications/"+id+"/status", map[string]string{"status": "Hired"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers 409 when the decision is already final", func() {
		id := apply()
		w := send(http.MethodPatch, "/company/applications/"+id+"/status", map[string]string{"status": "Rejected"})
		Expect(w.Code).To(Equal(http.StatusOK))

		w = send(http.MethodPatch, "/company/applications/"+id+"/status", map[string]string{"status": "Selected"})
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("answers 403 to another company", func() {
		id := apply()
		caller = &internal.Session{AccountID: companyID + 1, Role: internal.RoleCompany}
		w := send(http.MethodPatch, "/company/applications/"+id+"/status", map[string]string{"status": "Selected"})
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	Describe("DownloadResume", func() {
		It("streams the stored file", func() {
			token, err := store.Save("cv.PDF", strings.NewReader("%PDF-1.4 resume"))
			Expect(err).NotTo(HaveOccurred())
			Expect(db.Model(&studentDatamodel.Student{}).Where("id = ?", studentID).Update("resume_filename", token).Error).To(Succeed())
			id := apply()

			w := send(http.MethodGet, "/company/applications/"+id+"/resume", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring(token))
			Expect(w.Body.String()).To(Equal("%PDF-1.4 resume"))
		})

		It("answers 404 when the student has no résumé", func() {
			id := apply()
			w := send(http.MethodGet, "/company/applications/"+id+"/resume", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("answers 404 when the file is gone from storage", func() {
			Expect(db.Model(&studentDatamodel.Student{}).Where("id = ?", studentID).Update("resume_filename", "missing.pdf").Error).To(Succeed())
			id := apply()
			w := send(http.MethodGet, "/company/applications/"+id+"/resume", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
