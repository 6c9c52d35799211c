package handler

import (
	"net/http"

	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assets *service.AssetService
	quotes *service.QuoteCache
}

func NewAssetHandler(assets *service.AssetService, quotes *service.QuoteCache) *AssetHandler {
	return &AssetHandler{assets: assets, quotes: quotes}
}

// GET /api/assets
func (h *AssetHandler) Snapshot(c *gin.Context) {
	snap, err := h.assets.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /api/stock-price/:symbol
func (h *AssetHandler) StockPrice(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}
