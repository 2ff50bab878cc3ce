package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gatherly/gatherly-backend/internal/accounts"
	"github.com/gatherly/gatherly-backend/internal/roster"
	pkgAuth "github.com/gatherly/gatherly-backend/pkg/auth"
	"github.com/gatherly/gatherly-backend/pkg/config"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubRoster struct {
	calls int
}

func (s *stubRoster) List(ctx context.Context, caller string, req roster.Request) (*roster.Result, error) {
	s.calls++
	return &roster.Result{Rows: []roster.Row{}, TotalPages: 0, Page: req.Page, PageSize: 10}, nil
}

type stubLifecycle struct{}

func (stubLifecycle) Apply(ctx context.Context, req accounts.ActionRequest) (*accounts.ActionResult, error) {
	return &accounts.ActionResult{ActionID: uuid.New(), UserID: req.UserID, Action: req.Action, Outcome: enums.AccountActionOutcomeAcknowledged}, nil
}

func (stubLifecycle) History(context.Context, uuid.UUID, int) ([]models.AccountAction, error) {
	return nil, nil
}

type memoryLimiter struct {
	counts map[string]int64
}

func (m *memoryLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryLimiter) RateLimitKey(scope string) string {
	return "test:" + scope
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "dev"},
		JWT:       config.JWTConfig{Secret: "secret", Issuer: "gatherly", AccessTTL: time.Hour},
		RateLimit: config.RateLimitConfig{ActionWindow: time.Minute, ActionLimit: 2},
	}
}

func bearer(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New(), Role: role})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func newTestRouter(t *testing.T, deps Deps) (http.Handler, *config.Config) {
	t.Helper()
	cfg := testConfig()
	return NewRouter(cfg, logger.Nop(), deps), cfg
}

func TestHealthRoutes(t *testing.T) {
	router, _ := newTestRouter(t, Deps{DB: stubPinger{}, Redis: stubPinger{err: errors.New("down")}})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready: expected 503 got %d", resp.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewRosterMetrics(reg)
	m.AddRows(3)

	router, _ := newTestRouter(t, Deps{Gatherer: reg})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "roster_rows_resolved_total") {
		t.Fatalf("expected roster metrics in exposition, got %s", resp.Body.String())
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	svc := &stubRoster{}
	router, cfg := newTestRouter(t, Deps{Roster: svc})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	req.Header.Set("Authorization", bearer(t, cfg, enums.UserRoleHost))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("host token: expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?page=1", nil)
	req.Header.Set("Authorization", bearer(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin token: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("expected roster to be called once, got %d", svc.calls)
	}
}

func TestAccountActionRouteIsRateLimited(t *testing.T) {
	limiter := &memoryLimiter{counts: map[string]int64{}}
	router, cfg := newTestRouter(t, Deps{Accounts: stubLifecycle{}, RateLimiter: limiter})
	token := bearer(t, cfg, enums.UserRoleAdmin)
	path := "/api/admin/v1/users/" + uuid.NewString() + "/actions"

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"action":"flag"}`))
		req.Header.Set("Authorization", token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)

		if i == 0 {
			var envelope struct {
				Data accounts.ActionResult `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if envelope.Data.Outcome != enums.AccountActionOutcomeAcknowledged {
				t.Fatalf("unexpected outcome %q", envelope.Data.Outcome)
			}
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("history should not be throttled, got %d", resp.Code)
	}
}
