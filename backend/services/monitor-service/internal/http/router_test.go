package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	}
}

func testRoutes() Routes {
	return Routes{
		ReadingsCreate: named("create"),
		ReadingsList:   named("list"),
		ReadingsLatest: named("latest"),
		PricingGet:     named("slabs"),
		PricingUpdate:  named("update"),
		CostCalculate:  named("calculate"),
		CostRealtime:   named("realtime"),
		Summary:        named("summary"),
		DeviceSocket:   named("socket"),
		Metrics:        named("metrics"),
		Health:         named("health"),
	}
}

func TestRouterDispatch(t *testing.T) {
	router := NewRouter(testRoutes())

	cases := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/api/readings", "create"},
		{http.MethodPost, "/api/readings/update", "create"},
		{http.MethodGet, "/api/readings?limit=5", "list"},
		{http.MethodGet, "/api/readings/latest", "latest"},
		{http.MethodGet, "/api/pricing-slabs", "slabs"},
		{http.MethodGet, "/api/pricing/pricing-slabs", "slabs"},
		{http.MethodPost, "/api/pricing/update", "update"},
		{http.MethodPost, "/api/cost/calculate", "calculate"},
		{http.MethodGet, "/api/cost/realtime", "realtime"},
		{http.MethodGet, "/api/summary", "summary"},
		{http.MethodGet, "/ws/readings?device_id=m1", "socket"},
		{http.MethodGet, "/metrics", "metrics"},
		{http.MethodGet, "/health", "health"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter(testRoutes())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/readings", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cost/calculate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestRouterSkipsNilHandlers(t *testing.T) {
	router := NewRouter(Routes{Health: named("health")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInstrumentSetsRequestID(t *testing.T) {
	handler := Instrument(named("ok"), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestInstrumentRecoversPanics(t *testing.T) {
	handler := Instrument(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), zap.NewNop())

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestInstrumentRecordsStatus(t *testing.T) {
	handler := Instrument(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "readings", routeLabel("/api/readings/update"))
	assert.Equal(t, "pricing_slabs", routeLabel("/api/pricing/pricing-slabs"))
	assert.Equal(t, "other", routeLabel("/api/readings/123"))
}
