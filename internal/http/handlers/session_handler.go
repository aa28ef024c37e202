// README: Session endpoints: create, edit trip, promo, quote, handoff and PDF receipt.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
)

type SessionHandler struct {
	sessions *session.Service
	handoff  *handoff.Service
}

func NewSessionHandler(sessions *session.Service, handoffSvc *handoff.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions, handoff: handoffSvc}
}

type sessionResponse struct {
	Session session.Session `json:"session"`
	Quote   pricing.Quote   `json:"quote"`
}

type updateTripRequest struct {
	pricing.TripRequest
	Pickup string `json:"pickup"`
}

type promoRequest struct {
	Code string `json:"code"`
}

type handoffRequest struct {
	Channel string `json:"channel"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, sess)
}

func (h *SessionHandler) Quote(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, q, err := h.sessions.Quote(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sessionResponse{Session: sess, Quote: q})
}

func (h *SessionHandler) UpdateTrip(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	req := updateTripRequest{TripRequest: pricing.DefaultTrip()}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid trip payload")
		return
	}
	sess, err := h.sessions.UpdateTrip(c.Request.Context(), id, req.TripRequest, req.Pickup)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	h.respond(c, http.StatusOK, sess)
}

func (h *SessionHandler) ApplyPromo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid promo payload")
		return
	}
	sess, err := h.sessions.ApplyPromo(c.Request.Context(), id, req.Code)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	h.respond(c, http.StatusOK, sess)
}

func (h *SessionHandler) ClearPromo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.ClearPromo(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	h.respond(c, http.StatusOK, sess)
}

func (h *SessionHandler) Handoff(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req handoffRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid handoff payload")
			return
		}
	}
	channel, err := handoff.ParseChannel(req.Channel)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	ctx := c.Request.Context()
	sess, q, err := h.sessions.Quote(ctx, id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	res, err := h.handoff.Handoff(ctx, sess, q, channel)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (h *SessionHandler) Receipt(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, q, err := h.sessions.Quote(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	pdf, err := h.handoff.Receipt(sess, q)
	if err != nil {
		writeInternal(c, "handoff", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="wardha-rides-quote.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// respond recomputes the quote so every session write returns fresh numbers.
func (h *SessionHandler) respond(c *gin.Context, status int, sess session.Session) {
	_, q, err := h.sessions.Quote(c.Request.Context(), sess.ID)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, status, sessionResponse{Session: sess, Quote: q})
}
