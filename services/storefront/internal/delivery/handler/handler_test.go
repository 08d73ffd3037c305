package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"storefront/libs/go/auth"
	"storefront/services/storefront/internal/application/command"
	"storefront/services/storefront/internal/application/query"
	"storefront/services/storefront/internal/application/services"
	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/infrastructure"
)

const testSecret = "test-secret"

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) ConversionFunnel(ctx context.Context, q query.FunnelQuery) (*query.FunnelResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.FunnelResult), args.Error(1)
}

func (m *mockAnalytics) RevenueMetrics(ctx context.Context, q query.RevenueQuery) (*query.RevenueResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.RevenueResult), args.Error(1)
}

func (m *mockAnalytics) AttributionReport(ctx context.Context, q query.AttributionQuery) (*query.AttributionResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.AttributionResult), args.Error(1)
}

func (m *mockAnalytics) CustomerCohorts(ctx context.Context) (*query.CohortResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.CohortResult), args.Error(1)
}

func (m *mockAnalytics) CategoryPerformance(ctx context.Context) (*query.CategoryResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.CategoryResult), args.Error(1)
}

func (m *mockAnalytics) DashboardKPIs(ctx context.Context) (*query.DashboardResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.DashboardResult), args.Error(1)
}

type mockTracking struct {
	mock.Mock
}

func (m *mockTracking) TrackEvent(ctx context.Context, cmd command.TrackEventCommand, rc command.RequestContext) (*command.TrackEventCommandResult, error) {
	args := m.Called(ctx, cmd, rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*command.TrackEventCommandResult), args.Error(1)
}

func (m *mockTracking) TrackBatch(ctx context.Context, cmd command.TrackBatchCommand, rc command.RequestContext) (*command.TrackBatchCommandResult, error) {
	args := m.Called(ctx, cmd, rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*command.TrackBatchCommandResult), args.Error(1)
}

type testServer struct {
	analytics *mockAnalytics
	tracking  *mockTracking
	handler   *Handler
	router    http.Handler
	jwt       *auth.JWTService
}

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg RouterConfig, health HealthCheck) *testServer {
	t.Helper()
	ts := &testServer{
		analytics: &mockAnalytics{},
		tracking:  &mockTracking{},
		jwt:       auth.NewJWTService(testSecret, 0),
	}
	ts.handler = NewHandler(ts.analytics, ts.tracking, ts.jwt, health, 90*24*time.Hour, zap.NewNop())
	ts.handler.now = func() time.Time { return fixedNow }
	ts.router = NewRouter(ts.handler, cfg)
	t.Cleanup(func() {
		ts.analytics.AssertExpectations(t)
		ts.tracking.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAnalyticsRequiresAdmin(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"customer token", ts.token(t, "u1", auth.RoleCustomer), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := ts.do(req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "error", decodeResponse(t, rec).Status)
		})
	}
}

func TestFunnel(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})
	admin := ts.token(t, "admin-1", auth.RoleAdmin)

	wantRange := entities.DateRange{
		Start: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 7, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}
	ts.analytics.On("ConversionFunnel", mock.Anything, query.FunnelQuery{Range: wantRange, Channel: entities.ChannelEmail}).
		Return(&query.FunnelResult{OverallConversionRate: 4.5}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/funnel?startDate=2026-07-01&endDate=2026-07-31&channel=email", nil)
	req.Header.Set("Authorization", admin)
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 4.5, data["overallConversionRate"])
}

func TestFunnel_BadInput(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})
	admin := ts.token(t, "admin-1", auth.RoleAdmin)

	for _, target := range []string{
		"/api/analytics/funnel?channel=carrier_pigeon",
		"/api/analytics/funnel?startDate=yesterday",
		"/api/analytics/funnel?startDate=2026-08-01&endDate=2026-07-01",
	} {
		t.Run(target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			req.Header.Set("Authorization", admin)
			rec := ts.do(req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRevenue_DefaultsRangeAndGranularity(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})

	ts.analytics.On("RevenueMetrics", mock.Anything, query.RevenueQuery{
		Range:       entities.DateRange{Start: fixedNow.Add(-90 * 24 * time.Hour), End: fixedNow.Add(time.Minute - time.Millisecond)},
		Granularity: "day",
	}).Return(&query.RevenueResult{TimeSeries: []query.RevenuePoint{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/revenue?granularity=fortnight", nil)
	req.Header.Set("Authorization", ts.token(t, "admin-1", auth.RoleAdmin))
	rec := ts.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportsHonorNoCache(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})
	admin := ts.token(t, "admin-1", auth.RoleAdmin)

	ts.analytics.On("CustomerCohorts", mock.MatchedBy(services.CacheBypassed)).
		Return(&query.CohortResult{Cohorts: []query.Cohort{}}, nil).Once()
	ts.analytics.On("CategoryPerformance", mock.MatchedBy(func(ctx context.Context) bool { return !services.CacheBypassed(ctx) })).
		Return(&query.CategoryResult{Categories: []query.CategoryPerformance{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/cohorts", nil)
	req.Header.Set("Authorization", admin)
	req.Header.Set("Cache-Control", "max-age=0, no-cache")
	assert.Equal(t, http.StatusOK, ts.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/categories", nil)
	req.Header.Set("Authorization", admin)
	assert.Equal(t, http.StatusOK, ts.do(req).Code)
}

func TestAnalyticsErrors(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})
	admin := ts.token(t, "admin-1", auth.RoleAdmin)

	ts.analytics.On("AttributionReport", mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo exploded")).Once()
	ts.analytics.On("DashboardKPIs", mock.Anything).
		Return(nil, context.DeadlineExceeded).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/attribution", nil)
	req.Header.Set("Authorization", admin)
	rec := ts.do(req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeResponse(t, rec).Message)

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	req.Header.Set("Authorization", admin)
	assert.Equal(t, http.StatusGatewayTimeout, ts.do(req).Code)
}

func TestTrackEvent(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})
	userID := primitive.NewObjectID()

	ts.tracking.On("TrackEvent", mock.Anything,
		command.TrackEventCommand{EventType: "product_view", ProductID: "p1"},
		command.RequestContext{UserID: &userID, SessionHeader: "s-1", AttributionHint: "social", DeviceHint: "mobile"},
	).Return(&command.TrackEventCommandResult{ID: "e1", EventType: entities.EventProductView}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"product_view","productId":"p1"}`))
	req.Header.Set("Authorization", ts.token(t, userID.Hex(), auth.RoleCustomer))
	req.Header.Set("X-Session-ID", "s-1")
	req.Header.Set("X-Attribution", "social")
	req.Header.Set("X-Device-Type", "mobile")
	rec := ts.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "e1", data["id"])
	assert.Equal(t, "product_view", data["eventType"])
}

func TestTrackEvent_Anonymous(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})

	ts.tracking.On("TrackEvent", mock.Anything, mock.Anything, command.RequestContext{}).
		Return(&command.TrackEventCommandResult{ID: "e2", EventType: entities.EventPageView}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"page_view"}`))
	assert.Equal(t, http.StatusCreated, ts.do(req).Code)
}

func TestTrackEvent_Rejections(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})

	ts.tracking.On("TrackEvent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, command.ErrInvalidEventType).Once()

	tests := []struct {
		name   string
		body   string
		header string
		want   int
	}{
		{"invalid token", `{"eventType":"page_view"}`, "Bearer forged", http.StatusUnauthorized},
		{"malformed json", `{"eventType":`, "", http.StatusBadRequest},
		{"unknown event type", `{"eventType":"teleport"}`, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ts.do(req).Code)
		})
	}
}

func TestTrackBatch(t *testing.T) {
	ts := newTestServer(t, RouterConfig{}, HealthCheck{})

	ts.tracking.On("TrackBatch", mock.Anything, mock.MatchedBy(func(cmd command.TrackBatchCommand) bool {
		return len(cmd.Events) == 2 && cmd.Events[1].Timestamp != nil
	}), mock.Anything).Return(&command.TrackBatchCommandResult{Count: 2}, nil).Once()

	body := `{"events":[{"eventType":"page_view"},{"eventType":"cart_view","timestamp":"2026-10-17T10:00:00Z"}]}`
	rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/track/batch", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.EqualValues(t, 2, data["count"])
}

func TestTrackingRateLimits(t *testing.T) {
	t.Run("global", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{GlobalLimiter: rate.NewLimiter(0, 1)}, HealthCheck{})
		ts.tracking.On("TrackEvent", mock.Anything, mock.Anything, mock.Anything).
			Return(&command.TrackEventCommandResult{ID: "e"}, nil).Once()

		first := ts.do(httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"page_view"}`)))
		second := ts.do(httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"page_view"}`)))

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("per session", func(t *testing.T) {
		limiter := infrastructure.NewRateLimiter(time.Minute, 1)
		t.Cleanup(limiter.Stop)
		ts := newTestServer(t, RouterConfig{SessionLimiter: limiter}, HealthCheck{})
		ts.tracking.On("TrackEvent", mock.Anything, mock.Anything, mock.Anything).
			Return(&command.TrackEventCommandResult{ID: "e"}, nil).Twice()

		send := func(session string) int {
			req := httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"page_view"}`))
			req.Header.Set("X-Session-ID", session)
			return ts.do(req).Code
		}

		assert.Equal(t, http.StatusCreated, send("a"))
		assert.Equal(t, http.StatusTooManyRequests, send("a"))
		assert.Equal(t, http.StatusCreated, send("b"))
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{}, HealthCheck{
			Mongo:        func(context.Context) error { return nil },
			CacheEnabled: true,
		})

		rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "up", body.Mongo)
		assert.Equal(t, "enabled", body.Cache)
		assert.Equal(t, fixedNow, body.Timestamp)
		assert.EqualValues(t, 1, body.Metrics.TotalRequests)
	})

	t.Run("mongo down", func(t *testing.T) {
		ts := newTestServer(t, RouterConfig{}, HealthCheck{
			Mongo: func(context.Context) error { return errors.New("no reachable servers") },
		})

		rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"mongo":"down"`)
		assert.Contains(t, rec.Body.String(), `"cache":"disabled"`)
	})
}

func TestMiddleware(t *testing.T) {
	ts := newTestServer(t, RouterConfig{HandlerTimeout: time.Second}, HealthCheck{})

	t.Run("request id is echoed or generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Request-ID", "req-42")
		assert.Equal(t, "req-42", ts.do(req).Header().Get("X-Request-ID"))

		generated := ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil)).Header().Get("X-Request-ID")
		assert.Len(t, generated, 36)
	})

	t.Run("panics become 500", func(t *testing.T) {
		ts.tracking.On("TrackEvent", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { panic("boom") }).
			Return(nil, nil).Once()

		rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/track/event", strings.NewReader(`{"eventType":"page_view"}`)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("handlers see a deadline", func(t *testing.T) {
		ts.analytics.On("CustomerCohorts", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})).Return(&query.CohortResult{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/cohorts", nil)
		req.Header.Set("Authorization", ts.token(t, "admin-1", auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, ts.do(req).Code)
	})

	t.Run("unknown routes", func(t *testing.T) {
		tests := []struct {
			method string
			path   string
			want   int
		}{
			{http.MethodGet, "/api/nope", http.StatusNotFound},
			{http.MethodGet, "/api/analytics/nope", http.StatusNotFound},
			{http.MethodDelete, "/api/health", http.StatusMethodNotAllowed},
			{http.MethodPost, "/api/analytics/funnel", http.StatusMethodNotAllowed},
			{http.MethodDelete, "/api/analytics/dashboard", http.StatusMethodNotAllowed},
			{http.MethodGet, "/api/track/event", http.StatusMethodNotAllowed},
		}
		for _, tt := range tests {
			rec := ts.do(httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, "error", decodeResponse(t, rec).Status, "%s %s", tt.method, tt.path)
		}
	})
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.begin()
	m.end(http.StatusOK, 20*time.Millisecond)
	m.begin()
	m.end(http.StatusBadRequest, time.Millisecond)
	m.begin()

	snap := m.Snapshot()
	assert.EqualValues(t, 3, snap.TotalRequests)
	assert.EqualValues(t, 1, snap.SuccessfulRequests)
	assert.EqualValues(t, 1, snap.FailedRequests)
	assert.EqualValues(t, 1, snap.ActiveRequests)
	assert.EqualValues(t, 20, snap.AvgLatencyMs)
}
