package handler

import (
	"net/http"
	"testing"
	"time"

	"pushup-club/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingPermutation(t *testing.T) {
	api := newTestAPI(t, nil)
	api.login(t, "Alice")
	bob := api.login(t, "Bob")
	api.login(t, "Carol")

	today := time.Now().Format("2006-01-02")
	w := api.do(t, "POST", "/api/toggle", gin.H{"user_id": bob.ID, "date": today})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, "GET", "/api/ranking", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]model.RankingEntry](t, w)
	require.Len(t, entries, 3)

	seen := map[int]bool{}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		assert.False(t, seen[e.Rank])
		seen[e.Rank] = true
	}

	w = api.do(t, "GET", "/api/ranking?year=2025&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockPriceUnavailable(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, "GET", "/api/stock-price/AAPL", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAssetsEmpty(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, "GET", "/api/assets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[model.AssetsResponse](t, w)
	assert.Empty(t, snap.Holdings)
	assert.Equal(t, 1350.0, snap.ExchangeRate)
}
