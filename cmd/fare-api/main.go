// README: Entry point; loads config, wires stores and services, starts the HTTP server and the viewer ticker.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"wardharides/internal/config"
	httptransport "wardharides/internal/http"
	"wardharides/internal/http/handlers"
	"wardharides/internal/infra"
	"wardharides/internal/maps"
	"wardharides/internal/modules/admin"
	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/prefs"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
	"wardharides/internal/modules/viewers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.HTTP.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rates, err := pricing.LoadRateTable(cfg.Pricing.RatesFile)
	if err != nil {
		log.Fatalf("rates: %v", err)
	}
	pricingSvc, err := pricing.NewService(rates)
	if err != nil {
		log.Fatalf("pricing: %v", err)
	}

	var (
		ledgerStore   ledger.Store
		handoffLog    handoff.Recorder
		handoffLister admin.HandoffLister
	)
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		sqlDB := infra.NewSQLDB(pool)
		defer sqlDB.Close()

		ledgerStore = ledger.NewSQLStore(sqlDB)
		handoffStore := handoff.NewStore(pool)
		handoffLog, handoffLister = handoffStore, handoffStore
	} else {
		log.Println("WR_DB_DSN not set; ledger and handoff log disabled")
	}

	var (
		prefsStore   prefs.Store
		sessionStore session.Store
	)
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		prefsStore = prefs.NewRedisStore(rdb, "")
		sessionStore = session.NewRedisStore(rdb, cfg.Session.TTL)
	} else {
		log.Println("WR_REDIS_ADDR not set; prefs and sessions kept in memory")
		prefsStore = prefs.NewMemoryStore()
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
	}

	prefsSvc := prefs.NewService(prefsStore)
	if err := prefsSvc.InitSurge(ctx, cfg.Pricing.SurgeDefault); err != nil {
		log.Printf("surge default not stored: %v", err)
	}

	gate, err := admin.NewGate(cfg.Admin.PasswordHash, cfg.Admin.Password)
	if err != nil {
		log.Fatalf("admin gate: %v", err)
	}
	if !gate.Enabled() {
		log.Println("no admin password configured; admin endpoints disabled")
	}

	ledgerSvc := ledger.NewService(ledgerStore)
	adminSvc := admin.NewService(prefsSvc, ledgerSvc, handoffLister, rates.Version)
	sessionSvc := session.NewService(sessionStore, pricingSvc, prefsSvc, adminSvc)
	handoffSvc := handoff.NewService(handoff.Config{
		WhatsAppNumber: cfg.Handoff.WhatsAppNumber,
		FormURL:        cfg.Handoff.FormURL,
	}, prefsSvc, handoffLog)

	var routes handlers.DistanceFinder
	if cfg.Maps.APIKey != "" {
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps: %v", err)
		}
		routes = rs
	}

	counter := viewers.NewCounter(cfg.Viewers)
	go counter.Run(ctx)

	server := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:     pricingSvc,
		Sessions:    sessionSvc,
		Handoff:     handoffSvc,
		Ledger:      ledgerSvc,
		Admin:       adminSvc,
		Gate:        gate,
		Viewers:     counter,
		Routes:      routes,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	if err := server.ListenAndServe(ctx, cfg.HTTP.Addr); err != nil {
		log.Fatal(err)
	}
}
