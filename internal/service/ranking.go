package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

// RankingService builds the monthly hall of fame: lowest penalty first, and
// among equal penalties the member who completed earliest in the month wins.
type RankingService struct {
	db      *gorm.DB
	penalty *PenaltyService
}

func NewRankingService(db *gorm.DB, penalty *PenaltyService) *RankingService {
	return &RankingService{db: db, penalty: penalty}
}

type rankedMember struct {
	entry   model.RankingEntry
	firstAt time.Time
}

// Monthly ranks every member for the month. Members without any completion
// stay in the list; their first-completion time is pinned to the far future so
// they sort after everyone with the same penalty.
func (s *RankingService) Monthly(ctx context.Context, year, month int) ([]model.RankingEntry, error) {
	var members []model.Member
	if err := s.db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}

	ranked := make([]rankedMember, 0, len(members))
	for _, m := range members {
		penalty, missed, total, err := s.penalty.Assess(ctx, m.ID, year, month)
		if err != nil {
			return nil, err
		}
		completed := total - missed

		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(completed)/float64(total)*1000) / 10
		}

		firstAt, err := s.firstCompletion(ctx, m.ID, year, month)
		if err != nil {
			return nil, err
		}

		ranked = append(ranked, rankedMember{
			entry: model.RankingEntry{
				ID:             m.ID,
				Name:           m.Name,
				Penalty:        penalty,
				CompletedDays:  completed,
				TotalWorkdays:  total,
				CompletionRate: rate,
			},
			firstAt: firstAt,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].entry.Penalty != ranked[j].entry.Penalty {
			return ranked[i].entry.Penalty < ranked[j].entry.Penalty
		}
		return ranked[i].firstAt.Before(ranked[j].firstAt)
	})

	out := make([]model.RankingEntry, len(ranked))
	for i, r := range ranked {
		r.entry.Rank = i + 1
		out[i] = r.entry
	}
	return out, nil
}

func (s *RankingService) firstCompletion(ctx context.Context, memberID uint, year, month int) (time.Time, error) {
	start, end := MonthBounds(year, month)
	var rec model.CompletionRecord
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND date >= ? AND date <= ?", memberID, start, end).
		Order("created_at asc").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// no completion at all sorts last among equal penalties
		return time.Unix(1<<40, 0), nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query first completion: %w", err)
	}
	return rec.CreatedAt, nil
}
