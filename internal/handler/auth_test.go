package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginCreatesAndReturnsMember(t *testing.T) {
	api := newTestAPI(t, []string{"boss"})

	alice := api.login(t, "Alice")
	assert.NotZero(t, alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.False(t, alice.IsAdmin)
	assert.NotEmpty(t, alice.Token)

	again := api.login(t, "Alice")
	assert.Equal(t, alice.ID, again.ID)

	boss := api.login(t, "boss")
	assert.True(t, boss.IsAdmin)
}

func TestLoginBlankNameRejected(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, "POST", "/api/login", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, "POST", "/api/login", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
