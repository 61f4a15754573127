package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
	"github.com/Dhrumivyas20/placement-portal/internal/metrics"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.New()
	})

	It("labels requests with the route pattern", func() {
		r := chi.NewRouter()
		r.Use(m.Middleware)
		r.Get("/drives/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		for _, id := range []string{"1", "2", "3"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/drives/"+id, nil))
		}

		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		body, err := io.ReadAll(w.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`http_requests_total{method="GET",route="/drives/{id}",status="418"} 3`))
	})

	It("counts transition events", func() {
		handle := m.TransitionHandler()
		Expect(handle(context.Background(), events.NewCompanyStatusChanged(1, "approve", "pending", "approved", 9, "admin"))).To(Succeed())
		Expect(handle(context.Background(), events.NewCompanyStatusChanged(2, "approve", "rejected", "approved", 9, "admin"))).To(Succeed())
		Expect(handle(context.Background(), events.BaseEvent{Type: "other"})).To(Succeed())

		count, err := testutil.GatherAndCount(m.Registry(), "placement_workflow_transitions_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	It("answers 503 when metrics are disabled", func() {
		var disabled *metrics.Metrics
		w := httptest.NewRecorder()
		disabled.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
