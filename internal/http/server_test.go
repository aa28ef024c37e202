package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardharides/internal/config"
	httptransport "wardharides/internal/http"
	"wardharides/internal/http/middleware"
	"wardharides/internal/maps"
	"wardharides/internal/modules/admin"
	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/prefs"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
	"wardharides/internal/modules/viewers"
)

const adminPassword = "letmein"

type fakeRoutes struct {
	km  int
	err error
}

func (f fakeRoutes) DistanceKm(context.Context, string, string) (int, time.Duration, error) {
	return f.km, 3*time.Hour + 10*time.Minute, f.err
}

type testEnv struct {
	router *gin.Engine
	prefs  *prefs.Service
}

func newTestEnv(t *testing.T, routes *fakeRoutes) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pricingSvc, err := pricing.NewService(pricing.DefaultRates())
	require.NoError(t, err)
	prefsSvc := prefs.NewService(prefs.NewMemoryStore())
	gate, err := admin.NewGate("", adminPassword)
	require.NoError(t, err)
	ledgerSvc := ledger.NewService(nil)
	adminSvc := admin.NewService(prefsSvc, ledgerSvc, nil, "2024.1")
	sessionSvc := session.NewService(session.NewMemoryStore(time.Hour), pricingSvc, prefsSvc, adminSvc)
	handoffSvc := handoff.NewService(handoff.Config{WhatsAppNumber: "919999999999"}, prefsSvc, nil)

	deps := httptransport.ServerDeps{
		Pricing:  pricingSvc,
		Sessions: sessionSvc,
		Handoff:  handoffSvc,
		Ledger:   ledgerSvc,
		Admin:    adminSvc,
		Gate:     gate,
		Viewers:  viewers.NewCounter(config.ViewersConfig{Tick: time.Second, Start: 12, Min: 8, Max: 20}),
	}
	if routes != nil {
		deps.Routes = *routes
	}
	return testEnv{router: httptransport.NewServer(deps).Routes(), prefs: prefsSvc}
}

func (e testEnv) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	Session session.Session `json:"session"`
	Quote   pricing.Quote   `json:"quote"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndRates(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = env.do(t, http.MethodGet, "/api/rates", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rates := decode[pricing.RateTable](t, w)
	assert.Equal(t, "2024.1", rates.Version)

	w = env.do(t, http.MethodGet, "/api/pickups", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hostel")
}

func TestStatelessQuote(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantFinal  int64
		wantPromo  string
	}{
		{
			name:       "outstation minimum billing",
			body:       map[string]any{"trip_type": "outstation", "days": 2, "distance_km": "100"},
			wantStatus: http.StatusOK,
			wantFinal:  7800,
		},
		{
			name:       "unknown promo is reported, not applied",
			body:       map[string]any{"promo_code": "ABC"},
			wantStatus: http.StatusOK,
			wantFinal:  3500,
			wantPromo:  pricing.ErrInvalidPromo.Error(),
		},
		{
			name:       "flat promo",
			body:       map[string]any{"trip_type": "hangout", "promo_code": "dmims100"},
			wantStatus: http.StatusOK,
			wantFinal:  1100,
		},
		{
			name:       "distance beyond the supported range",
			body:       map[string]any{"trip_type": "outstation", "distance_km": "922337203685477580"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown mode",
			body:       map[string]any{"mode": "bike"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/quotes", tt.body, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[struct {
				Quote      pricing.Quote `json:"quote"`
				PromoError string        `json:"promo_error"`
			}](t, w)
			assert.Equal(t, tt.wantFinal, resp.Quote.FinalPrice)
			assert.Equal(t, tt.wantPromo, resp.PromoError)
		})
	}
}

func TestQuoteFollowsSurgeSwitch(t *testing.T) {
	env := newTestEnv(t, nil)
	auth := map[string]string{middleware.AdminPasswordHeader: adminPassword}

	w := env.do(t, http.MethodPut, "/api/admin/surge", map[string]any{"active": true}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/quotes", map[string]any{}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	q := decode[struct {
		Quote pricing.Quote `json:"quote"`
	}](t, w).Quote
	assert.Equal(t, int64(875), q.SurgeAmount)
	assert.Equal(t, int64(4375), q.FinalPrice)
}

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[sessionBody](t, w)
	assert.Equal(t, "Hostel", created.Session.Pickup)
	assert.Equal(t, int64(3500), created.Quote.FinalPrice)
	base := "/api/sessions/" + created.Session.ID.String()

	w = env.do(t, http.MethodPost, base+"/promo", map[string]any{"code": "EXAMREADY"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(3325), decode[sessionBody](t, w).Quote.FinalPrice)

	w = env.do(t, http.MethodPost, base+"/promo", map[string]any{"code": "NOPE"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The discount stays at the amount frozen when the code was accepted.
	w = env.do(t, http.MethodPut, base+"/trip", map[string]any{"trip_type": "hangout", "pickup": "Girls Hostel (Sawangi)"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[sessionBody](t, w)
	assert.Equal(t, int64(1200-175), updated.Quote.FinalPrice)
	assert.Equal(t, "Girls Hostel (Sawangi)", updated.Session.Pickup)

	w = env.do(t, http.MethodPut, base+"/trip", map[string]any{"mode": "bike"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, base+"/quote", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1025), decode[sessionBody](t, w).Quote.FinalPrice)

	w = env.do(t, http.MethodPost, base+"/handoff", map[string]any{"channel": "whatsapp"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[handoff.Result](t, w)
	assert.Equal(t, handoff.ChannelWhatsApp, res.Channel)
	assert.Contains(t, res.URL, "https://wa.me/919999999999?text=")
	assert.Equal(t, "EXAMREADY", res.Payload.PromoCode)
	assert.Equal(t, int64(1025), res.Payload.FinalPrice)

	w = env.do(t, http.MethodPost, base+"/handoff", map[string]any{"channel": "pigeon"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, base+"/receipt.pdf", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = env.do(t, http.MethodDelete, base+"/promo", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1200), decode[sessionBody](t, w).Quote.FinalPrice)
}

func TestSessionErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/sessions/not-a-uuid/quote", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/sessions/6f1c2a9e-3d4b-4c5a-8e7f-0a1b2c3d4e5f/quote", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, w.Body.String())
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)
	auth := map[string]string{middleware.AdminPasswordHeader: adminPassword}

	w := env.do(t, http.MethodPost, "/api/admin/login", map[string]any{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/api/admin/login", map[string]any{"password": adminPassword}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/overview", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/surge", map[string]any{}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/overview", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	ov := decode[admin.Overview](t, w)
	assert.Equal(t, int64(prefs.DefaultRevenue), ov.Revenue)
	assert.Nil(t, ov.Ledger)

	w = env.do(t, http.MethodPost, "/api/admin/ledger/simulate", map[string]any{"preset": "nagpur"}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sim := decode[ledger.Simulation](t, w)
	assert.Equal(t, int64(2497), sim.Profit)
	assert.Equal(t, int64(71), sim.MarginPct)

	w = env.do(t, http.MethodPost, "/api/admin/ledger/simulate", map[string]any{"preset": "moon"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No database configured.
	w = env.do(t, http.MethodPost, "/api/admin/ledger", map[string]any{"preset": "airport"}, auth)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = env.do(t, http.MethodGet, "/api/admin/ledger", nil, auth)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDistance(t *testing.T) {
	w := newTestEnv(t, nil).do(t, http.MethodGet, "/api/distance?destination=Pune", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := newTestEnv(t, &fakeRoutes{km: 712})
	w = env.do(t, http.MethodGet, "/api/distance", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/distance?destination=Pune", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"destination":"Pune","distance_km":712,"duration_minutes":190}`, w.Body.String())

	env = newTestEnv(t, &fakeRoutes{err: maps.ErrNoRoute})
	w = env.do(t, http.MethodGet, "/api/distance?destination=Atlantis", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewers(t *testing.T) {
	w := newTestEnv(t, nil).do(t, http.MethodGet, "/api/viewers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewers":12}`, w.Body.String())
}
