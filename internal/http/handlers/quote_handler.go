// README: Stateless quote, rate table and pickup list endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
)

type QuoteHandler struct {
	pricing *pricing.Service
	surge   session.SurgeSource
}

func NewQuoteHandler(pricingSvc *pricing.Service, surge session.SurgeSource) *QuoteHandler {
	return &QuoteHandler{pricing: pricingSvc, surge: surge}
}

type quoteResponse struct {
	Quote      pricing.Quote `json:"quote"`
	PromoError string        `json:"promo_error,omitempty"`
}

// Quote prices a trip in one shot. Omitted fields keep the widget defaults. A bad
// promo code is reported next to an undiscounted quote instead of failing the request.
func (h *QuoteHandler) Quote(c *gin.Context) {
	trip := pricing.DefaultTrip()
	if err := c.ShouldBindJSON(&trip); err != nil {
		writeError(c, http.StatusBadRequest, "invalid trip payload")
		return
	}
	ctx := c.Request.Context()
	p, err := h.pricing.Preview(ctx, trip, h.surge.SurgeActive(ctx))
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	resp := quoteResponse{Quote: p.Quote}
	if p.PromoRejected {
		resp.PromoError = pricing.ErrInvalidPromo.Error()
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *QuoteHandler) Rates(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.pricing.Rates())
}

func Pickups(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"pickups": handoff.PickupLocations})
}
