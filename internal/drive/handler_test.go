package drive_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	drivePostgres "github.com/Dhrumivyas20/placement-portal/internal/drive/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Drive Handler Integration", func() {
	var (
		db     *gorm.DB
		caller *internal.Session
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := drive.NewService(drivePostgres.NewDriveRepository(db), nil, slogger)
		handler := drive.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithSession(r.Context(), caller)))
			})
		})
		router.Post("/company/drives", handler.Create)
		router.Put("/company/drives/{id}", handler.Update)
		router.Patch("/company/drives/{id}/close", handler.Close)
		router.Patch("/admin/drives/{id}/approve", handler.Approve)
		caller = owner
	})

	AfterEach(func() {
		Expect(testutil.Close(db)).To(Succeed())
	})

	send := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, &buf))
		return w
	}

	payload := map[string]interface{}{
		"job_title":            "Data Engineer",
		"job_description":      "Pipelines",
		"job_location":         "Bengaluru",
		"job_type":             "Full-time",
		"positions":            4,
		"application_deadline": "2099-01-31",
	}

	It("creates, approves and closes a drive end to end", func() {
		w := send(http.MethodPost, "/company/drives", payload)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created drive.DriveResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Status).To(Equal(drive.StatusPending))
		path := "/company/drives/" + strconv.FormatInt(created.ID, 10)

		w = send(http.MethodPatch, path+"/close", nil)
		Expect(w.Code).To(Equal(http.StatusConflict))

		caller = admin
		w = send(http.MethodPatch, "/admin/drives/"+strconv.FormatInt(created.ID, 10)+"/approve", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		caller = owner
		w = send(http.MethodPatch, path+"/close", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"closed"`))
	})

	It("rejects a malformed deadline with 400", func() {
		bad := map[string]interface{}{}
		for k, v := range payload {
			bad[k] = v
		}
		bad["application_deadline"] = "31/01/2099"

		w := send(http.MethodPost, "/company/drives", bad)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers another company's update with 403", func() {
		w := send(http.MethodPost, "/company/drives", payload)
		var created drive.DriveResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		caller = otherOwner
		w = send(http.MethodPut, "/company/drives/"+strconv.FormatInt(created.ID, 10), payload)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})
})
