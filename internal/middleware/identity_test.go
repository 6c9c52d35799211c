package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityProbe() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	r.GET("/whoami", func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		name, _ := c.Get("user_name")
		c.JSON(http.StatusOK, gin.H{"uid": uid, "name": name})
	})
	return r
}

func TestIdentityFromToken(t *testing.T) {
	r := newIdentityProbe()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+IssueToken(7, "alice"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":7,"name":"alice"}`, w.Body.String())
}

func TestIdentityAbsentOrInvalid(t *testing.T) {
	r := newIdentityProbe()

	// no header: request still passes, without identity
	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":null,"name":null}`, w.Body.String())

	// garbage token: same
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":null,"name":null}`, w.Body.String())
}
