package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoggingMiddleware", func() {
	var (
		logs   bytes.Buffer
		logger *slog.Logger
	)

	BeforeEach(func() {
		logs.Reset()
		logger = slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})

	It("redacts credentials and student personal data but leaves the body readable downstream", func() {
		payload := `{"email":"asha@college.edu","password":"hunter22","phone":"98450 67890","date_of_birth":"2003-04-05"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/students", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		w := httptest.NewRecorder()

		middleware.LoggingMiddleware(logger)(echo).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(Equal(payload))

		out := logs.String()
		Expect(out).To(ContainSubstring("asha@college.edu"))
		Expect(out).NotTo(ContainSubstring("hunter22"))
		Expect(out).NotTo(ContainSubstring("98450"))
		Expect(out).NotTo(ContainSubstring("2003-04-05"))
		Expect(out).NotTo(ContainSubstring("abc.def.ghi"))
		Expect(out).To(ContainSubstring(`"status_code":201`))
	})

	It("summarises non-JSON responses by content type", func() {
		pdf := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 secret resume bytes"))
		})

		w := httptest.NewRecorder()
		middleware.LoggingMiddleware(logger)(pdf).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications/1/resume", nil))

		Expect(logs.String()).To(ContainSubstring("[application/pdf]"))
		Expect(logs.String()).NotTo(ContainSubstring("secret resume bytes"))
	})

	It("keeps probe paths at debug", func() {
		w := httptest.NewRecorder()
		middleware.LoggingMiddleware(logger)(echo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(logs.String()).To(ContainSubstring(`"msg":"probe"`))
		Expect(logs.String()).NotTo(ContainSubstring("incoming request"))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into a 500 error envelope", func() {
		boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("nil drive") })
		w := httptest.NewRecorder()

		middleware.RecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(boom).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("INTERNAL_ERROR"))
		Expect(w.Body.String()).NotTo(ContainSubstring("nil drive"))
	})
})

var _ = Describe("RequestID", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	It("echoes a supplied trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.TraceHeader, "trace-123")
		w := httptest.NewRecorder()

		middleware.RequestID(ok).ServeHTTP(w, req)
		Expect(w.Header().Get(middleware.TraceHeader)).To(Equal("trace-123"))
	})

	It("generates one when absent", func() {
		w := httptest.NewRecorder()
		middleware.RequestID(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
	})
})

var _ = Describe("CORS", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	It("answers preflight for an allowed origin without reaching the handler", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		w := httptest.NewRecorder()

		middleware.CORS("http://localhost:3000, http://admin.local")(ok).ServeHTTP(w, req)
		Expect(w.Code).NotTo(Equal(http.StatusTeapot))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(Equal(http.MethodPost))
	})

	It("grants any origin with a wildcard", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		w := httptest.NewRecorder()

		middleware.CORS("*")(ok).ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusTeapot))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("does not grant unknown origins", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()

		middleware.CORS("http://localhost:3000")(ok).ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusTeapot))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
