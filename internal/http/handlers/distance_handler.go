// README: Driving distance suggestion for outstation trips.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type DistanceFinder interface {
	DistanceKm(ctx context.Context, origin, destination string) (int, time.Duration, error)
}

type DistanceHandler struct {
	routes DistanceFinder
}

// NewDistanceHandler accepts nil when no maps key is configured.
func NewDistanceHandler(routes DistanceFinder) *DistanceHandler {
	return &DistanceHandler{routes: routes}
}

func (h *DistanceHandler) Get(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "distance lookup not configured")
		return
	}
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		writeError(c, http.StatusBadRequest, "destination is required")
		return
	}
	km, dur, err := h.routes.DistanceKm(c.Request.Context(), c.Query("origin"), destination)
	if err != nil {
		writeDistanceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"destination":      destination,
		"distance_km":      km,
		"duration_minutes": int(dur.Round(time.Minute).Minutes()),
	})
}
