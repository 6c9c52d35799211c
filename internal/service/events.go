package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

var ErrBadEvent = errors.New("title and target date are required")

// EventService manages D-Day events and their participants. Everyone can see
// active events and toggle their own participation; creation and editing are
// admin operations gated at the handler.
type EventService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db, now: time.Now}
}

// ListActive returns active events ordered by target date, each with its
// D-Day countdown and participant names.
func (s *EventService) ListActive(ctx context.Context) ([]model.EventView, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("target_date asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	today := s.now().Format(dateLayout)
	views := make([]model.EventView, 0, len(events))
	for _, e := range events {
		names, err := s.participantNames(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, model.EventView{
			ID:           e.ID,
			Title:        e.Title,
			TargetDate:   e.TargetDate,
			DDay:         daysBetween(today, e.TargetDate),
			Participants: names,
		})
	}
	return views, nil
}

// ToggleJoin flips the member's participation and returns the new state.
func (s *EventService) ToggleJoin(ctx context.Context, eventID, memberID uint) (bool, error) {
	var event model.Event
	err := s.db.WithContext(ctx).First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("query event: %w", err)
	}

	var p model.EventParticipant
	err = s.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&p).Error
	if err == nil {
		if err := s.db.WithContext(ctx).Delete(&p).Error; err != nil {
			return true, fmt.Errorf("leave event: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("query participant: %w", err)
	}

	p = model.EventParticipant{EventID: eventID, MemberID: memberID}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDuplicate(err) {
			return true, ErrConflict
		}
		return false, fmt.Errorf("join event: %w", err)
	}
	return true, nil
}

func (s *EventService) Create(ctx context.Context, adminID uint, title, targetDate string) (*model.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBadEvent
	}
	if _, err := time.ParseInLocation(dateLayout, targetDate, time.Local); err != nil {
		return nil, ErrBadEvent
	}
	e := model.Event{Title: title, TargetDate: targetDate, Active: true, CreatedBy: adminID}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &e, nil
}

func (s *EventService) Update(ctx context.Context, id uint, title, targetDate string, active *bool) (*model.Event, error) {
	var e model.Event
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}

	updates := map[string]interface{}{}
	if title = strings.TrimSpace(title); title != "" {
		updates["title"] = title
		e.Title = title
	}
	if targetDate != "" {
		if _, err := time.ParseInLocation(dateLayout, targetDate, time.Local); err != nil {
			return nil, ErrBadEvent
		}
		updates["target_date"] = targetDate
		e.TargetDate = targetDate
	}
	if active != nil {
		updates["active"] = *active
		e.Active = *active
	}
	if len(updates) == 0 {
		return &e, nil
	}
	if err := s.db.WithContext(ctx).Model(&e).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &e, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.EventParticipant{}).Error; err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		return nil
	})
}

func (s *EventService) participantNames(ctx context.Context, eventID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&model.EventParticipant{}).
		Select("members.name").
		Joins("JOIN members ON members.id = event_participants.member_id").
		Where("event_participants.event_id = ?", eventID).
		Order("event_participants.created_at").
		Pluck("members.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	return names, nil
}

func daysBetween(from, to string) int {
	a, _ := time.ParseInLocation(dateLayout, from, time.Local)
	b, _ := time.ParseInLocation(dateLayout, to, time.Local)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
