package observability

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
	m.IncInflight()
	m.DecInflight()
	m.ObserveUnitOfWork("op", "success", time.Millisecond)
	m.IncUnitOfWorkConflict("op")
	m.ObserveMediatorRequest("req", "success", time.Millisecond)
	m.SetRealtimeClients(3)
	m.IncRealtimeDropped()
	m.IncDomainEvent("ProjectCreated")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("nil metrics handler: want 404 got %d", rec.Code)
	}
}

func TestMetricsCountersAndHandler(t *testing.T) {
	m := NewMetrics()
	m.IncDomainEvent("ProjectCreated")
	m.IncDomainEvent("ProjectCreated")
	m.IncUnitOfWorkConflict("project.create")
	m.ObserveHTTPRequest("POST", "/api/projects", 201, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.domainEvents.WithLabelValues("ProjectCreated")); got != 2 {
		t.Fatalf("domain events: want 2 got %v", got)
	}
	if got := testutil.ToFloat64(m.uowConflicts.WithLabelValues("project.create")); got != 1 {
		t.Fatalf("conflicts: want 1 got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics handler status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cleanarch_http_requests_total") {
		t.Fatalf("metrics output missing http counter")
	}
}

func TestSLOEvaluatorComputesBurnFromRequestCounters(t *testing.T) {
	m := NewMetrics()
	eval := NewSLOEvaluator(m, nil, SLOConfig{
		Interval:         time.Minute,
		Window:           time.Hour,
		AvailTarget:      0.9,
		LatencyTarget:    0.5,
		UnitOfWorkTarget: 0.99,
	})

	for i := 0; i < 8; i++ {
		m.ObserveHTTPRequest("GET", "/api/projects", 200, time.Millisecond)
	}
	m.ObserveHTTPRequest("GET", "/api/projects", 500, time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/projects", 200, 5*time.Second)
	m.ObserveUnitOfWork("project.create", "success", time.Millisecond)
	m.ObserveUnitOfWork("project.create", "validation", time.Millisecond)
	eval.evaluate()

	avail := testutil.ToFloat64(m.sloCompliance.WithLabelValues("api_availability", "1h"))
	if math.Abs(avail-0.9) > 1e-9 {
		t.Fatalf("availability sli: want 0.9 got %v", avail)
	}
	if burn := testutil.ToFloat64(m.sloBurn.WithLabelValues("api_availability", "1h")); burn < 0.99 || burn > 1.01 {
		t.Fatalf("availability burn: want ~1 got %v", burn)
	}
	if lat := testutil.ToFloat64(m.sloCompliance.WithLabelValues("api_latency", "1h")); math.Abs(lat-0.8) > 1e-9 {
		t.Fatalf("latency sli: want 0.8 got %v", lat)
	}
	if uow := testutil.ToFloat64(m.sloCompliance.WithLabelValues("unit_of_work_success", "1h")); uow != 1 {
		t.Fatalf("unit of work sli: want 1 got %v", uow)
	}
}
