package handler

import (
	"fmt"
	"net/http"
	"testing"

	"pushup-club/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGate(t *testing.T) {
	api := newTestAPI(t, []string{"boss"})
	boss := api.login(t, "boss")
	pleb := api.login(t, "pleb")

	// non-admin: 403, no state change
	w := api.do(t, "PUT", "/api/admin/cash", gin.H{"user_id": pleb.ID, "amount": 1000.0})
	assert.Equal(t, http.StatusForbidden, w.Code)
	var count int64
	api.db.Model(&model.CashBalance{}).Count(&count)
	assert.Zero(t, count)

	// no identity at all: 401
	w = api.do(t, "PUT", "/api/admin/cash", gin.H{"amount": 1000.0})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// admin: accepted
	w = api.do(t, "PUT", "/api/admin/cash", gin.H{"user_id": boss.ID, "amount": 1000.0})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdminStockLifecycle(t *testing.T) {
	api := newTestAPI(t, []string{"boss"})
	boss := api.login(t, "boss")

	w := api.do(t, "POST", "/api/admin/stock", gin.H{"user_id": boss.ID, "symbol": "aapl", "shares": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[model.StockHolding](t, w)
	assert.Equal(t, "AAPL", created.Symbol)

	w = api.do(t, "PUT", fmt.Sprintf("/api/admin/stock/%d", created.ID), gin.H{"user_id": boss.ID, "shares": 25})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, decode[model.StockHolding](t, w).Shares)

	w = api.do(t, "POST", "/api/admin/stock", gin.H{"user_id": boss.ID, "symbol": "AAPL", "shares": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, "DELETE", fmt.Sprintf("/api/admin/stock/%d?user_id=%d", created.ID, boss.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, "DELETE", fmt.Sprintf("/api/admin/stock/%d?user_id=%d", created.ID, boss.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminFinnhubKey(t *testing.T) {
	api := newTestAPI(t, []string{"boss"})
	boss := api.login(t, "boss")

	w := api.do(t, "GET", fmt.Sprintf("/api/admin/finnhub-key?user_id=%d", boss.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[model.APIKeyResponse](t, w).Configured)

	w = api.do(t, "PUT", "/api/admin/finnhub-key", gin.H{"user_id": boss.ID, "key": "sk_test_12345"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, "GET", fmt.Sprintf("/api/admin/finnhub-key?user_id=%d", boss.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[model.APIKeyResponse](t, w)
	assert.True(t, resp.Configured)
	assert.Equal(t, "store", resp.Source)
	assert.NotContains(t, resp.MaskedKey, "12345")

	w = api.do(t, "PUT", "/api/admin/finnhub-key", gin.H{"user_id": boss.ID, "key": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminSaveAll(t *testing.T) {
	api := newTestAPI(t, []string{"boss"})
	boss := api.login(t, "boss")

	w := api.do(t, "POST", "/api/admin/save-all", gin.H{
		"user_id": boss.ID,
		"stocks": []gin.H{
			{"symbol": "AAPL", "shares": 10},
			{"symbol": "TSLA", "shares": 2},
		},
		"cash": 42000.0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var holdings []model.StockHolding
	require.NoError(t, api.db.Find(&holdings).Error)
	assert.Len(t, holdings, 2)

	var cash model.CashBalance
	require.NoError(t, api.db.First(&cash, 1).Error)
	assert.Equal(t, 42000.0, cash.Amount)
}
