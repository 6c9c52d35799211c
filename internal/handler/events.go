package handler

import (
	"errors"
	"net/http"

	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events *service.EventService
	admin  *service.AdminService
}

func NewEventHandler(events *service.EventService, admin *service.AdminService) *EventHandler {
	return &EventHandler{events: events, admin: admin}
}

// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	views, err := h.events.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// POST /api/events/:id/join  body: {"user_id":1}
func (h *EventHandler) Join(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := identityID(c, req.UserID)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	joined, err := h.events.ToggleJoin(c.Request.Context(), id, uid)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already joined"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"joined": joined})
	}
}

// adminGate mirrors AdminHandler.authorize for event mutations.
func (h *EventHandler) adminGate(c *gin.Context, bodyID uint) uint {
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
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return 0
	}
	return uid
}

// POST /api/admin/event
func (h *EventHandler) Create(c *gin.Context) {
	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	uid := h.adminGate(c, req.UserID)
	if uid == 0 {
		return
	}
	event, err := h.events.Create(c.Request.Context(), uid, req.Title, req.TargetDate)
	if errors.Is(err, service.ErrBadEvent) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

// PUT /api/admin/event/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.adminGate(c, req.UserID) == 0 {
		return
	}
	event, err := h.events.Update(c.Request.Context(), id, req.Title, req.TargetDate, req.Active)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, service.ErrBadEvent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, event)
	}
}

// DELETE /api/admin/event/:id?user_id=
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if h.adminGate(c, 0) == 0 {
		return
	}
	err := h.events.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
