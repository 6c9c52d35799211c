package service

import (
	"context"
	"fmt"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

// PenaltyService computes the fine a member owes for a month: every workday
// without a completion record costs the daily fine.
type PenaltyService struct {
	db        *gorm.DB
	workdays  *Workdays
	dailyFine int
}

func NewPenaltyService(db *gorm.DB, workdays *Workdays, dailyFine int) *PenaltyService {
	return &PenaltyService{db: db, workdays: workdays, dailyFine: dailyFine}
}

// Assess returns (penalty, missed days, total workdays) for the member and
// month. Read-only; deterministic given the store and today's date.
func (s *PenaltyService) Assess(ctx context.Context, memberID uint, year, month int) (int, int, int, error) {
	workdays := s.workdays.MonthWorkdays(year, month)

	completed, err := s.completedDates(ctx, memberID, year, month)
	if err != nil {
		return 0, 0, 0, err
	}

	missed := 0
	for _, day := range workdays {
		if !completed[day] {
			missed++
		}
	}
	return missed * s.dailyFine, missed, len(workdays), nil
}

func (s *PenaltyService) completedDates(ctx context.Context, memberID uint, year, month int) (map[string]bool, error) {
	start, end := MonthBounds(year, month)
	var dates []string
	err := s.db.WithContext(ctx).
		Model(&model.CompletionRecord{}).
		Where("member_id = ? AND date >= ? AND date <= ? AND completed = ?", memberID, start, end, true).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("query completed dates: %w", err)
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}
