package handler

import (
	"errors"
	"net/http"

	"pushup-club/internal/logger"
	"pushup-club/internal/middleware"
	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/login  body: {"name":"..."}
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.auth.LoginByName(c.Request.Context(), req.Name)
	if errors.Is(err, service.ErrBlankName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("login.ok", "uid", m.ID, "name", m.Name, "role", m.Role)
	c.JSON(http.StatusOK, model.LoginResponse{
		ID:      m.ID,
		Name:    m.Name,
		IsAdmin: m.IsAdmin(),
		Token:   middleware.IssueToken(m.ID, m.Name),
	})
}
