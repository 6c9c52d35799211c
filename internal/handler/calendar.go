package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pushup-club/internal/holiday"
	"pushup-club/internal/model"
	"pushup-club/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	db          *gorm.DB
	cal         *holiday.Calendar
	penalty     *service.PenaltyService
	completions *service.CompletionService
}

func NewCalendarHandler(db *gorm.DB, cal *holiday.Calendar, penalty *service.PenaltyService, completions *service.CompletionService) *CalendarHandler {
	return &CalendarHandler{db: db, cal: cal, penalty: penalty, completions: completions}
}

// GET /api/calendar/:year/:month?user_id=
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}

	userID := identityID(c, 0)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	start, end := service.MonthBounds(year, month)
	var records []model.CompletionRecord
	err := h.db.WithContext(c.Request.Context()).
		Where("member_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	completed := make([]string, 0, len(records))
	for _, r := range records {
		if r.Completed {
			completed = append(completed, r.Date)
		}
	}

	penalty, missed, total, err := h.penalty.Assess(c.Request.Context(), userID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	c.JSON(http.StatusOK, model.CalendarResponse{
		Year:            year,
		Month:           month,
		CompletedDates:  completed,
		Holidays:        h.cal.ForMonth(year, month),
		Penalty:         penalty,
		MissedDays:      missed,
		TotalWorkdays:   total,
		FirstDayWeekday: (int(first.Weekday()) + 6) % 7,
		LastDay:         service.LastDay(year, month),
	})
}

// POST /api/toggle  body: {"user_id":1,"date":"2026-08-28"}
func (h *CalendarHandler) Toggle(c *gin.Context) {
	var req model.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID := identityID(c, req.UserID)
	if userID == 0 || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and date are required"})
		return
	}

	completed, err := h.completions.Toggle(c.Request.Context(), userID, req.Date)
	switch {
	case errors.Is(err, service.ErrBadDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
	case errors.Is(err, service.ErrFutureDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot check a future date"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already checked"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"completed": completed})
	}
}

// GET /api/available-months
func (h *CalendarHandler) AvailableMonths(c *gin.Context) {
	today := time.Now()
	months := make([]model.MonthOption, 0, 12)
	for i := 0; i < 12; i++ {
		year, month := today.Year(), int(today.Month())-i
		for month <= 0 {
			month += 12
			year--
		}
		months = append(months, model.MonthOption{
			Year:  year,
			Month: month,
			Label: strconv.Itoa(year) + "년 " + strconv.Itoa(month) + "월",
		})
	}
	c.JSON(http.StatusOK, months)
}
