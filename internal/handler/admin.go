package handler

import (
	"errors"
	"net/http"

	"pushup-club/internal/logger"
	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin   *service.AdminService
	keys    *service.KeyChain
	finnhub *service.FinnhubClient
}

func NewAdminHandler(admin *service.AdminService, keys *service.KeyChain, finnhub *service.FinnhubClient) *AdminHandler {
	return &AdminHandler{admin: admin, keys: keys, finnhub: finnhub}
}

// authorize resolves the acting member and enforces the admin gate. It writes
// the response on failure and returns 0.
func (h *AdminHandler) authorize(c *gin.Context, bodyID uint) uint {
	uid := identityID(c, bodyID)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return 0
	}
	ok, err := h.admin.IsAdmin(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return 0
	}
	if !ok {
		logger.Warn("admin.denied", "uid", uid, "path", c.FullPath())
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return 0
	}
	return uid
}

// POST /api/admin/stock
func (h *AdminHandler) CreateStock(c *gin.Context) {
	var req model.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := h.authorize(c, req.UserID)
	if uid == 0 {
		return
	}
	holding, err := h.admin.UpsertHolding(c.Request.Context(), uid, req.Symbol, req.Shares, req.AvgCost)
	if errors.Is(err, service.ErrBadHolding) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, holding)
}

// PUT /api/admin/stock/:id
func (h *AdminHandler) UpdateStock(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.authorize(c, req.UserID) == 0 {
		return
	}
	holding, err := h.admin.UpdateHolding(c.Request.Context(), id, req.Shares, req.AvgCost)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
	case errors.Is(err, service.ErrBadHolding):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, holding)
	}
}

// DELETE /api/admin/stock/:id?user_id=
func (h *AdminHandler) DeleteStock(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if h.authorize(c, 0) == 0 {
		return
	}
	err := h.admin.DeleteHolding(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// PUT /api/admin/cash
func (h *AdminHandler) SetCash(c *gin.Context) {
	var req model.CashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := h.authorize(c, req.UserID)
	if uid == 0 {
		return
	}
	err := h.admin.SetCash(c.Request.Context(), uid, req.Amount)
	if errors.Is(err, service.ErrBadAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/finnhub-key?user_id=
func (h *AdminHandler) GetKey(c *gin.Context) {
	if h.authorize(c, 0) == 0 {
		return
	}
	key, source := h.keys.Resolve()
	c.JSON(http.StatusOK, model.APIKeyResponse{
		Configured: key != "",
		MaskedKey:  service.MaskKey(key),
		Source:     source,
	})
}

// PUT /api/admin/finnhub-key
func (h *AdminHandler) SetKey(c *gin.Context) {
	var req model.APIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := h.authorize(c, req.UserID)
	if uid == 0 {
		return
	}
	if req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	if err := h.admin.SetConfig(c.Request.Context(), uid, service.FinnhubKeyConfig, req.Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/admin/finnhub-test  body: {"user_id":1,"key":"optional"}
// Probes the quote provider with the candidate key, or with the currently
// resolved key when none is supplied.
func (h *AdminHandler) TestKey(c *gin.Context) {
	var req model.APIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.authorize(c, req.UserID) == 0 {
		return
	}
	key := req.Key
	if key == "" {
		key, _ = h.keys.Resolve()
	}
	quote, err := h.finnhub.Quote(c.Request.Context(), "AAPL", key)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sample": quote})
}

// POST /api/admin/save-all
func (h *AdminHandler) SaveAll(c *gin.Context) {
	var req model.SaveAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := h.authorize(c, req.UserID)
	if uid == 0 {
		return
	}
	err := h.admin.SaveAll(c.Request.Context(), uid, req.Stocks, req.Cash)
	switch {
	case errors.Is(err, service.ErrBadHolding), errors.Is(err, service.ErrBadAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
