// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wardharides/internal/http/handlers"
	"wardharides/internal/http/middleware"
)

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS(s.corsOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	quotes := handlers.NewQuoteHandler(s.pricing, s.admin)
	sessions := handlers.NewSessionHandler(s.sessions, s.handoff)
	distance := handlers.NewDistanceHandler(s.routes)
	viewers := handlers.NewViewersHandler(s.viewers, s.corsOrigins)
	adminH := handlers.NewAdminHandler(s.gate, s.admin, s.ledger)

	api := r.Group("/api")
	{
		api.GET("/rates", quotes.Rates)
		api.POST("/quotes", quotes.Quote)
		api.GET("/pickups", handlers.Pickups)
		api.GET("/distance", distance.Get)
		api.GET("/viewers", viewers.Get)

		api.POST("/sessions", sessions.Create)
		api.GET("/sessions/:id/quote", sessions.Quote)
		api.PUT("/sessions/:id/trip", sessions.UpdateTrip)
		api.POST("/sessions/:id/promo", sessions.ApplyPromo)
		api.DELETE("/sessions/:id/promo", sessions.ClearPromo)
		api.POST("/sessions/:id/handoff", sessions.Handoff)
		api.GET("/sessions/:id/receipt.pdf", sessions.Receipt)

		api.POST("/admin/login", adminH.Login)
		secured := api.Group("/admin", middleware.AdminAuth(s.gate))
		secured.PUT("/surge", adminH.SetSurge)
		secured.GET("/overview", adminH.Overview)
		secured.POST("/ledger/simulate", adminH.Simulate)
		secured.GET("/ledger", adminH.ListEntries)
		secured.POST("/ledger", adminH.SaveEntry)
		secured.DELETE("/ledger", adminH.ClearEntries)
	}

	r.GET("/ws/viewers", viewers.Stream)
	return r
}
