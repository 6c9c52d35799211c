package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

var (
	ErrBadDate    = errors.New("invalid date")
	ErrFutureDate = errors.New("cannot toggle a future date")
	ErrConflict   = errors.New("record already exists")
)

// CompletionService owns the per-day completion toggle. Past days may be
// toggled retroactively; future days are rejected.
type CompletionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{db: db, now: time.Now}
}

// Toggle flips the completion state for (member, date) and returns the
// resulting state. A concurrent double-toggle on the same pair is resolved by
// the store's unique index: the losing insert comes back as ErrConflict.
func (s *CompletionService) Toggle(ctx context.Context, memberID uint, dateStr string) (bool, error) {
	if _, err := time.ParseInLocation(dateLayout, dateStr, time.Local); err != nil {
		return false, ErrBadDate
	}
	if dateStr > s.now().Format(dateLayout) {
		return false, ErrFutureDate
	}

	var rec model.CompletionRecord
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, dateStr).
		First(&rec).Error

	if err == nil {
		if err := s.db.WithContext(ctx).Delete(&rec).Error; err != nil {
			return true, fmt.Errorf("delete record: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("query record: %w", err)
	}

	rec = model.CompletionRecord{MemberID: memberID, Date: dateStr, Completed: true}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return true, ErrConflict
		}
		return false, fmt.Errorf("insert record: %w", err)
	}
	return true, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
