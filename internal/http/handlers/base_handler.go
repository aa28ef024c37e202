// README: Base handler utilities (JSON helpers, session id parsing, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wardharides/internal/logger"
	"wardharides/internal/maps"
	"wardharides/internal/modules/admin"
	"wardharides/internal/modules/handoff"
	"wardharides/internal/modules/ledger"
	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrUnknownSelection), errors.Is(err, handoff.ErrUnknownChannel):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrInvalidPromo):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeInternal(c, "quote", err)
	}
}

func writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, admin.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, admin.ErrGateDisabled), errors.Is(err, ledger.ErrUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ledger.ErrInvalidSimulation):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeInternal(c, "admin", err)
	}
}

func writeDistanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		logger.Warn(logger.RequestID(c.Request.Context()), "maps", "distance", "directions lookup failed", err)
		writeError(c, http.StatusBadGateway, "distance lookup failed")
	}
}

func writeInternal(c *gin.Context, module string, err error) {
	logger.Warn(logger.RequestID(c.Request.Context()), module, c.Request.Method+" "+c.FullPath(), "unhandled error", err)
	writeError(c, http.StatusInternalServerError, "internal error")
}
