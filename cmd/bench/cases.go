// README: Bench cases for the fare API; includes HTTP, DB, Redis, and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

type quoteBody struct {
	BasePrice   int64 `json:"base_price"`
	SurgeAmount int64 `json:"surge_amount"`
	Discount    int64 `json:"discount"`
	FinalPrice  int64 `json:"final_price"`
}

type sessionBody struct {
	Session struct {
		ID    string `json:"id"`
		Promo *struct {
			Code   string `json:"code"`
			Amount int64  `json:"amount"`
		} `json:"promo"`
	} `json:"session"`
	Quote quoteBody `json:"quote"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		start := time.Now()
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		if res.Latency == 0 && res.Status != statusSkip {
			res.Latency = time.Since(start).Round(time.Millisecond)
		}
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Env: Postgres connect", Run: pingPostgres},
		{Name: "Env: Redis connect", Run: pingRedis},
		{Name: "Migration: apply (optional)", Run: applyMigration},
		{Name: "Migration: tables exist", Run: tablesExist},
		{Name: "API: health", Run: health},
		{Name: "API: rate table", Run: rateTable},
		{Name: "Quote: outstation minimum billing is 7800", Run: outstationQuote},
		{Name: "Quote: unknown promo is rejected", Run: promoRejected},
		{Name: "Session: promo amount sticks across trip changes", Run: promoSticky},
		{Name: "Session: invalid promo returns 422", Run: sessionBadPromo},
		{Name: "Admin: surge switch reaches quotes", Run: surgeSwitch},
		{Name: "Perf: stateless quote throughput", Run: quoteThroughput},
	}
}

func pingPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func pingRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func applyMigration(ctx context.Context, r *Runner) Result {
	if !r.cfg.ApplyMigration {
		return Result{Status: statusSkip, Note: "apply-migration=false"}
	}
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	sql, err := os.ReadFile(r.cfg.MigrationPath)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, s := range splitSQL(string(sql)) {
		if _, err := r.db.Exec(ctx, s); err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
	}
	return Result{Status: statusPass}
}

func tablesExist(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	tables, err := extractTables(r.cfg.MigrationPath)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, t := range tables {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+t).Scan(&exists); err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return Result{Status: statusFail, Note: "missing table " + t}
		}
	}
	return Result{Status: statusPass, Note: strings.Join(tables, ",")}
}

func health(ctx context.Context, r *Runner) Result {
	status, body, err := r.call(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK || strings.TrimSpace(string(body)) != "OK" {
		return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
	}
	return Result{Status: statusPass}
}

func rateTable(ctx context.Context, r *Runner) Result {
	var rates struct {
		Version string `json:"version"`
	}
	status, err := r.callJSON(ctx, http.MethodGet, "/api/rates", nil, nil, &rates)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK || rates.Version == "" {
		return Result{Status: statusFail, Note: fmt.Sprintf("status=%d version=%q", status, rates.Version)}
	}
	return Result{Status: statusPass, Note: "version=" + rates.Version}
}

// Base price is checked so the case holds while surge is on.
func outstationQuote(ctx context.Context, r *Runner) Result {
	var resp struct {
		Quote quoteBody `json:"quote"`
	}
	trip := map[string]any{"mode": "with_driver", "trip_type": "outstation", "days": 2, "distance_km": 100}
	status, err := r.callJSON(ctx, http.MethodPost, "/api/quotes", trip, nil, &resp)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK || resp.Quote.BasePrice != 7800 {
		return Result{Status: statusFail, Note: fmt.Sprintf("status=%d base=%d", status, resp.Quote.BasePrice)}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("final=%d", resp.Quote.FinalPrice)}
}

func promoRejected(ctx context.Context, r *Runner) Result {
	var resp struct {
		Quote      quoteBody `json:"quote"`
		PromoError string    `json:"promo_error"`
	}
	status, err := r.callJSON(ctx, http.MethodPost, "/api/quotes", map[string]any{"promo_code": "ABC"}, nil, &resp)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK || resp.PromoError == "" || resp.Quote.Discount != 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("status=%d promo_error=%q discount=%d", status, resp.PromoError, resp.Quote.Discount)}
	}
	return Result{Status: statusPass}
}

func promoSticky(ctx context.Context, r *Runner) Result {
	id, err := r.newSession(ctx)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	base := "/api/sessions/" + id

	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, base + "/trip", map[string]any{"trip_type": "nagpur", "nagpur_package": "full"}},
		{http.MethodPost, base + "/promo", map[string]any{"code": "EXAMREADY"}},
		{http.MethodPut, base + "/trip", map[string]any{"trip_type": "hangout"}},
	}
	var last sessionBody
	for _, s := range steps {
		status, err := r.callJSON(ctx, s.method, s.path, s.body, nil, &last)
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if status != http.StatusOK {
			return Result{Status: statusFail, Note: fmt.Sprintf("%s %s status=%d", s.method, s.path, status)}
		}
	}
	// 5% of the 3500 full-day base, kept after switching to the 1200 hangout.
	if last.Session.Promo == nil || last.Session.Promo.Amount != 175 || last.Quote.Discount != 175 {
		return Result{Status: statusFail, Note: fmt.Sprintf("discount=%d", last.Quote.Discount)}
	}
	return Result{Status: statusPass}
}

func sessionBadPromo(ctx context.Context, r *Runner) Result {
	id, err := r.newSession(ctx)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	status, _, err := r.call(ctx, http.MethodPost, "/api/sessions/"+id+"/promo", map[string]any{"code": "NOPE"}, nil)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusUnprocessableEntity {
		return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
	}
	return Result{Status: statusPass}
}

func surgeSwitch(ctx context.Context, r *Runner) Result {
	if r.cfg.AdminPassword == "" {
		return Result{Status: statusSkip, Note: "admin password not configured"}
	}
	auth := map[string]string{"X-Admin-Password": r.cfg.AdminPassword}

	var ov struct {
		SurgeActive bool `json:"surge_active"`
	}
	status, err := r.callJSON(ctx, http.MethodGet, "/api/admin/overview", nil, auth, &ov)
	if err != nil || status != http.StatusOK {
		return Result{Status: statusFail, Note: fmt.Sprintf("overview status=%d err=%v", status, err)}
	}
	defer func() {
		_, _, _ = r.call(context.WithoutCancel(ctx), http.MethodPut, "/api/admin/surge", map[string]any{"active": ov.SurgeActive}, auth)
	}()

	if status, _, err := r.call(ctx, http.MethodPut, "/api/admin/surge", map[string]any{"active": true}, auth); err != nil || status != http.StatusOK {
		return Result{Status: statusFail, Note: fmt.Sprintf("surge status=%d err=%v", status, err)}
	}
	var resp struct {
		Quote quoteBody `json:"quote"`
	}
	if _, err := r.callJSON(ctx, http.MethodPost, "/api/quotes", map[string]any{}, nil, &resp); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if resp.Quote.SurgeAmount <= 0 {
		return Result{Status: statusFail, Note: "quote ignored surge"}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("surge=%d", resp.Quote.SurgeAmount)}
}

func quoteThroughput(ctx context.Context, r *Runner) Result {
	b, _ := json.Marshal(map[string]any{"trip_type": "airport", "airport_mode": "pickup"})
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/quotes", bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Latency: r.cfg.Duration, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func (r *Runner) newSession(ctx context.Context) (string, error) {
	var created sessionBody
	status, err := r.callJSON(ctx, http.MethodPost, "/api/sessions", nil, nil, &created)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated || created.Session.ID == "" {
		return "", fmt.Errorf("create session: status=%d", status)
	}
	return created.Session.ID, nil
}

func (r *Runner) call(ctx context.Context, method, path string, body any, header map[string]string) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, rdr)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

func (r *Runner) callJSON(ctx context.Context, method, path string, body any, header map[string]string, out any) (int, error) {
	status, data, err := r.call(ctx, method, path, body, header)
	if err != nil {
		return status, err
	}
	if status >= 200 && status < 300 && out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return status, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return status, nil
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
