package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scorebox/internal/platform/net/middleware"
)

func TestMetrics_RecordsAndExposes(t *testing.T) {
	m := middleware.NewMetrics("scorebox")

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/method", nil)
	rr := httptest.NewRecorder()
	m.Middleware()(h).ServeHTTP(rr, req)

	// scrape the registry and look for the counter with our labels
	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(scrape.Body)
	out := string(body)
	if !strings.Contains(out, "scorebox_http_requests_total") {
		t.Fatalf("missing requests counter:\n%s", out)
	}
	if !strings.Contains(out, `path="/method"`) || !strings.Contains(out, `status="200"`) {
		t.Fatalf("missing labels:\n%s", out)
	}
	if !strings.Contains(out, "scorebox_http_request_duration_seconds") {
		t.Fatalf("missing duration histogram:\n%s", out)
	}
}

func TestMetrics_CountsErrorStatuses(t *testing.T) {
	m := middleware.NewMetrics("scorebox")

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	rr := httptest.NewRecorder()
	m.Middleware()(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/method", nil))

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(scrape.Body)
	if !strings.Contains(string(body), `status="403"`) {
		t.Fatalf("missing 403 label:\n%s", body)
	}
}
