package handler

import (
	"net/http"
	"strconv"
	"time"

	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct{ ranking *service.RankingService }

func NewRankingHandler(ranking *service.RankingService) *RankingHandler {
	return &RankingHandler{ranking: ranking}
}

// GET /api/ranking?year=&month=
func (h *RankingHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	entries, err := h.ranking.Monthly(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
