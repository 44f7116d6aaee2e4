package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travelguide/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they show up in the output
	observability.ObserveHTTP("/api/destinations", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("memory", "destination", "create")
	observability.ObserveUpload("disk", errors.New("disk full"))

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"travelguide_http_requests_total",
		"travelguide_store_operations_total",
		`travelguide_uploads_total{result="error",sink="disk"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	l := observability.NewLogger("prod", "warn")
	if l.GetLevel().String() != "warn" {
		t.Fatalf("want warn level, got %s", l.GetLevel())
	}
	if observability.NewLogger("dev", "bogus").GetLevel().String() != "info" {
		t.Fatalf("unknown level should fall back to info")
	}
}
