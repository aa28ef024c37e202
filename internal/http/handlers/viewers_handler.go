// README: Live viewer count over plain JSON and a websocket stream.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"wardharides/internal/logger"
	"wardharides/internal/modules/viewers"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

type ViewersHandler struct {
	counter  *viewers.Counter
	upgrader websocket.Upgrader
}

// NewViewersHandler accepts websocket upgrades from the same origins as the
// CORS allow-list. An empty list allows every origin.
func NewViewersHandler(counter *viewers.Counter, allowedOrigins []string) *ViewersHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[strings.ToLower(o)] = struct{}{}
		}
	}
	return &ViewersHandler{
		counter: counter,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
				return ok
			},
		},
	}
}

type viewersMessage struct {
	Viewers int `json:"viewers"`
}

func (h *ViewersHandler) Get(c *gin.Context) {
	writeJSON(c, http.StatusOK, viewersMessage{Viewers: h.counter.Current()})
}

// Stream pushes the current count on connect and every change after that.
func (h *ViewersHandler) Stream(c *gin.Context) {
	reqID := logger.RequestID(c.Request.Context())
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(reqID, "viewers", "upgrade", "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.counter.Subscribe()
	defer unsubscribe()

	// Reader only watches for the client going away.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	if err := writeViewers(conn, h.counter.Current()); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case n, ok := <-updates:
			if !ok {
				return
			}
			if err := writeViewers(conn, n); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func writeViewers(conn *websocket.Conn, n int) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(viewersMessage{Viewers: n})
}
