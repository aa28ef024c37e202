package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t       *testing.T
	http    *http.Client
	baseURL string
}

type quote struct {
	BasePrice  int64 `json:"base_price"`
	Discount   int64 `json:"discount"`
	FinalPrice int64 `json:"final_price"`
}

type sessionResp struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
	Quote quote `json:"quote"`
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	loadDotEnv(t)
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("WR_API_BASE_URL")), "/")
	if baseURL == "" {
		t.Skip("WR_API_BASE_URL not set")
	}
	c := &apiClient{t: t, http: &http.Client{Timeout: 10 * time.Second}, baseURL: baseURL}
	c.waitReady()
	return c
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, rdr)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err, "%s %s", method, path)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.Unmarshal(data, out), string(data))
	}
	return resp.StatusCode
}

func (c *apiClient) waitReady() {
	c.t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := c.http.Get(c.baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	c.t.Fatalf("api not ready: GET %s/health did not return 200 in time", c.baseURL)
}

func TestOutstationQuote(t *testing.T) {
	c := newAPIClient(t)

	var resp struct {
		Quote quote `json:"quote"`
	}
	status := c.do(http.MethodPost, "/api/quotes", map[string]any{
		"mode": "with_driver", "trip_type": "outstation", "days": 2, "distance_km": "100",
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(7800), resp.Quote.BasePrice)
}

func TestPromoRejectedOnQuote(t *testing.T) {
	c := newAPIClient(t)

	var resp struct {
		Quote      quote  `json:"quote"`
		PromoError string `json:"promo_error"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/quotes", map[string]any{"promo_code": "ABC"}, &resp))
	assert.NotEmpty(t, resp.PromoError)
	assert.Zero(t, resp.Quote.Discount)
}

func TestSessionPromoSticksAndHandoffIsLogged(t *testing.T) {
	c := newAPIClient(t)

	var created sessionResp
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/sessions", nil, &created))
	base := "/api/sessions/" + created.Session.ID

	var s sessionResp
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/trip", map[string]any{"trip_type": "nagpur"}, &s))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/promo", map[string]any{"code": "EXAMREADY"}, &s))
	assert.Equal(t, int64(175), s.Quote.Discount)

	require.Equal(t, http.StatusOK, c.do(http.MethodPut, base+"/trip", map[string]any{"trip_type": "hangout"}, &s))
	assert.Equal(t, int64(175), s.Quote.Discount)

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, base+"/promo", map[string]any{"code": "NOPE"}, nil))

	var res struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, base+"/handoff", map[string]any{"channel": "whatsapp"}, &res))
	assert.True(t, strings.HasPrefix(res.URL, "https://wa.me/"), res.URL)

	dsn := strings.TrimSpace(os.Getenv("WR_TEST_DSN"))
	if dsn == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	// The handoff row is written after the response.
	assert.Eventually(t, func() bool {
		var n int
		err := db.QueryRow(ctx, `SELECT count(*) FROM handoffs WHERE id = $1`, res.ID).Scan(&n)
		return err == nil && n == 1
	}, 5*time.Second, 200*time.Millisecond)
}

func loadDotEnv(t *testing.T) {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			// Load never overrides variables already set.
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
