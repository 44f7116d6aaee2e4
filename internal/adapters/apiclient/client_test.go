package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"travelguide/internal/adapters/apiclient"
	"travelguide/internal/domain"
)

func TestClient_CreateDestination_RetriesOnTooManyRequests(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/destination" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// rejected before anything was stored
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(201)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 4, "name": in["name"]})
		}
	}))
	defer ts.Close()

	cl, err := apiclient.New(ts.URL, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	name := "Rome"
	got, err := cl.CreateDestination(ctx, domain.Destination{ID: 99, Name: &name})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != 4 || got.Name == nil || *got.Name != "Rome" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_GetDestination_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := apiclient.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.GetDestination(context.Background(), 1)
	if !errors.Is(err, apiclient.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ListDestinations_QueryEscaped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "new york" {
			t.Errorf("name query = %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":2,"name":"New York"}]`))
	}))
	defer ts.Close()

	cl, _ := apiclient.New(ts.URL+"/", 100)
	ds, err := cl.ListDestinations(context.Background(), "new york")
	if err != nil || len(ds) != 1 || ds[0].ID != 2 {
		t.Fatalf("unexpected: %+v %v", ds, err)
	}
}

func TestNew_RejectsBadBase(t *testing.T) {
	if _, err := apiclient.New("localhost:3000", 1); err == nil {
		t.Fatalf("expected error for base without scheme")
	}
}

func TestClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl, err := apiclient.New(ts.URL, 100, apiclient.WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := cl.GetDestination(context.Background(), 1); err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := apiclient.New(ts.URL, 100)
	if _, err := cl.CreateUser(context.Background(), domain.User{}); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_CreateIsNotRepeatedAfterConnectionLoss(t *testing.T) {
	var creates int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&creates, 1)
		// the create is counted, then the connection drops before any reply
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	defer ts.Close()

	cl, _ := apiclient.New(ts.URL, 100)
	if _, err := cl.CreateDestination(context.Background(), domain.Destination{}); err == nil {
		t.Fatalf("expected an error for a dropped connection")
	}
	if got := atomic.LoadInt32(&creates); got != 1 {
		t.Fatalf("one CreateDestination call reached the server %d times", got)
	}
}

func TestClient_CreateIsNotRepeatedAfterServerError(t *testing.T) {
	var creates int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&creates, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cl, _ := apiclient.New(ts.URL, 100)
	if _, err := cl.CreateComment(context.Background(), domain.Comment{}); err == nil {
		t.Fatalf("expected an error for 503")
	}
	if got := atomic.LoadInt32(&creates); got != 1 {
		t.Fatalf("want a single attempt, got %d", got)
	}
}
