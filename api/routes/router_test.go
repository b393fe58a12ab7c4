package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	usersvc "github.com/userdesk/userdesk-backend/internal/users"
	"github.com/userdesk/userdesk-backend/pkg/config"
	"github.com/userdesk/userdesk-backend/pkg/pagination"
	"github.com/userdesk/userdesk-backend/pkg/types"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubService struct{}

func (stubService) List(context.Context, usersvc.ListFilter) (*usersvc.ListResult, error) {
	return &usersvc.ListResult{
		Users:      []usersvc.UserDTO{},
		Pagination: pagination.NewPageInfo(1, 10, 0),
	}, nil
}

func (stubService) GetByID(context.Context, uint, bool) (*usersvc.UserDTO, error) {
	return sampleDTO(), nil
}

func (stubService) Create(context.Context, usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
	return sampleDTO(), nil
}

func (stubService) Update(context.Context, uint, usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	return sampleDTO(), nil
}

func (stubService) SoftDelete(context.Context, uint) (*usersvc.UserDTO, error) {
	return sampleDTO(), nil
}

func (stubService) Restore(context.Context, uint) (*usersvc.UserDTO, error) {
	return sampleDTO(), nil
}

func sampleDTO() *usersvc.UserDTO {
	return &usersvc.UserDTO{ID: 1, FullName: "John Doe", Email: "john@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		RateLimit: config.RateLimitConfig{
			MutationWindow:  time.Minute,
			MutationIPLimit: 60,
		},
	}
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	if deps.UserService == nil {
		deps.UserService = stubService{}
	}
	return NewRouter(testConfig(), nil, deps)
}

func TestRouterServesUserEndpoints(t *testing.T) {
	router := newTestRouter(t, Deps{DBPinger: stubPinger{}})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/users", http.StatusOK},
		{"GET", "/api/users/1", http.StatusOK},
		{"DELETE", "/api/users/1", http.StatusOK},
		{"POST", "/api/users/1/restore", http.StatusOK},
		{"GET", "/health/live", http.StatusOK},
		{"GET", "/health/ready", http.StatusOK},
		{"GET", "/nope", http.StatusNotFound},
	}
	for _, tc := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, w.Code)
		}
	}
}

func TestRouterAttachesRequestID(t *testing.T) {
	router := newTestRouter(t, Deps{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/users", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header on responses")
	}
}

func TestRouterExposesMetricsWhenRegistryPresent(t *testing.T) {
	router := newTestRouter(t, Deps{Registry: prometheus.NewRegistry()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/users", nil))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint, got %d", w.Code)
	}
}

func TestRouterHidesMetricsWithoutRegistry(t *testing.T) {
	router := newTestRouter(t, Deps{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a registry, got %d", w.Code)
	}
}

func TestRouterReadinessReportsDependencyFailure(t *testing.T) {
	router := newTestRouter(t, Deps{DBPinger: stubPinger{err: context.DeadlineExceeded}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the database is down, got %d", w.Code)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Success {
		t.Fatal("success flag must be false")
	}
}
