// README: API gateway; owns module services and runs the gin engine behind net/http.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"wardharides/internal/http/handlers"
	"wardharides/internal/logger"
	"wardharides/internal/modules/admin"
	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
	"wardharides/internal/modules/viewers"
)

const shutdownTimeout = 10 * time.Second

type ServerDeps struct {
	Pricing     *pricing.Service
	Sessions    *session.Service
	Handoff     *handoff.Service
	Ledger      *ledger.Service
	Admin       *admin.Service
	Gate        *admin.Gate
	Viewers     *viewers.Counter
	Routes      handlers.DistanceFinder
	CORSOrigins []string
}

type Server struct {
	pricing     *pricing.Service
	sessions    *session.Service
	handoff     *handoff.Service
	ledger      *ledger.Service
	admin       *admin.Service
	gate        *admin.Gate
	viewers     *viewers.Counter
	routes      handlers.DistanceFinder
	corsOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		pricing:     deps.Pricing,
		sessions:    deps.Sessions,
		handoff:     deps.Handoff,
		ledger:      deps.Ledger,
		admin:       deps.Admin,
		gate:        deps.Gate,
		viewers:     deps.Viewers,
		routes:      deps.Routes,
		corsOrigins: deps.CORSOrigins,
	}
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Event("", "http", "listen", "serving on "+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Event("", "http", "shutdown", "draining connections")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
