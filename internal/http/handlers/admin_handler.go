// README: Admin endpoints: login check, surge switch, overview and the profit ledger.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wardharides/internal/modules/admin"
	"wardharides/internal/modules/ledger"
)

type AdminHandler struct {
	gate   *admin.Gate
	admin  *admin.Service
	ledger *ledger.Service
}

func NewAdminHandler(gate *admin.Gate, adminSvc *admin.Service, ledgerSvc *ledger.Service) *AdminHandler {
	return &AdminHandler{gate: gate, admin: adminSvc, ledger: ledgerSvc}
}

type loginRequest struct {
	Password string `json:"password"`
}

type surgeRequest struct {
	Active *bool `json:"active"`
}

type simulateRequest struct {
	Preset string `json:"preset"`
	ledger.SimulationInput
}

// Login only tells the dashboard whether the password is right; every admin
// call still carries the password header.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid login payload")
		return
	}
	if err := h.gate.Verify(req.Password); err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) SetSurge(c *gin.Context) {
	var req surgeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		writeError(c, http.StatusBadRequest, "active flag is required")
		return
	}
	if err := h.admin.SetSurge(c.Request.Context(), *req.Active); err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"surge_active": *req.Active})
}

func (h *AdminHandler) Overview(c *gin.Context) {
	ov, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ov)
}

func (h *AdminHandler) Simulate(c *gin.Context) {
	in, ok := bindSimulation(c)
	if !ok {
		return
	}
	sim, err := h.ledger.Simulate(in)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sim)
}

func (h *AdminHandler) SaveEntry(c *gin.Context) {
	in, ok := bindSimulation(c)
	if !ok {
		return
	}
	e, err := h.ledger.Save(c.Request.Context(), in)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, e)
}

func (h *AdminHandler) ListEntries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.ledger.List(c.Request.Context(), limit)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}

func (h *AdminHandler) ClearEntries(c *gin.Context) {
	n, err := h.ledger.Clear(c.Request.Context())
	if err != nil {
		writeAdminError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": n})
}

func bindSimulation(c *gin.Context) (ledger.SimulationInput, bool) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid simulation payload")
		return ledger.SimulationInput{}, false
	}
	in := req.SimulationInput
	if req.Preset != "" {
		var err error
		if in, err = ledger.FillFromPreset(in, req.Preset); err != nil {
			writeAdminError(c, err)
			return ledger.SimulationInput{}, false
		}
	}
	return in, true
}
