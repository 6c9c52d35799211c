package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadHolding = errors.New("symbol and a positive share count are required")
	ErrBadAmount  = errors.New("amount must not be negative")
)

// AdminService carries every admin-gated mutation: holdings, the cash row,
// and site configuration.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// IsAdmin reports whether the member exists and carries the admin role.
func (s *AdminService) IsAdmin(ctx context.Context, memberID uint) (bool, error) {
	if memberID == 0 {
		return false, nil
	}
	var m model.Member
	err := s.db.WithContext(ctx).First(&m, memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query member: %w", err)
	}
	return m.IsAdmin(), nil
}

// UpsertHolding creates the holding, or updates shares/cost when the symbol
// already exists.
func (s *AdminService) UpsertHolding(ctx context.Context, adminID uint, symbol string, shares int, avgCost *float64) (*model.StockHolding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || shares <= 0 {
		return nil, ErrBadHolding
	}

	var h model.StockHolding
	err := s.db.WithContext(ctx).Where("symbol = ?", symbol).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h = model.StockHolding{Symbol: symbol, Shares: shares, AvgCost: avgCost, CreatedBy: adminID}
		if err := s.db.WithContext(ctx).Create(&h).Error; err != nil {
			return nil, fmt.Errorf("create holding: %w", err)
		}
		return &h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query holding: %w", err)
	}

	updates := map[string]interface{}{"shares": shares}
	if avgCost != nil {
		updates["avg_cost"] = *avgCost
	}
	if err := s.db.WithContext(ctx).Model(&h).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}
	h.Shares = shares
	if avgCost != nil {
		h.AvgCost = avgCost
	}
	return &h, nil
}

func (s *AdminService) UpdateHolding(ctx context.Context, id uint, shares int, avgCost *float64) (*model.StockHolding, error) {
	if shares <= 0 {
		return nil, ErrBadHolding
	}
	var h model.StockHolding
	err := s.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query holding: %w", err)
	}

	updates := map[string]interface{}{"shares": shares}
	if avgCost != nil {
		updates["avg_cost"] = *avgCost
	}
	if err := s.db.WithContext(ctx).Model(&h).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}
	h.Shares = shares
	if avgCost != nil {
		h.AvgCost = avgCost
	}
	return &h, nil
}

func (s *AdminService) DeleteHolding(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.StockHolding{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete holding: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCash upserts the single cash row.
func (s *AdminService) SetCash(ctx context.Context, adminID uint, amount float64) error {
	if amount < 0 {
		return ErrBadAmount
	}
	return s.upsertCash(s.db.WithContext(ctx), adminID, amount)
}

func (s *AdminService) upsertCash(tx *gorm.DB, adminID uint, amount float64) error {
	var cash model.CashBalance
	err := tx.First(&cash, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cash = model.CashBalance{ID: 1, Amount: amount, UpdatedBy: adminID}
		if err := tx.Create(&cash).Error; err != nil {
			return fmt.Errorf("create cash row: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("query cash row: %w", err)
	}
	err = tx.Model(&cash).Updates(map[string]interface{}{
		"amount":     amount,
		"updated_by": adminID,
	}).Error
	if err != nil {
		return fmt.Errorf("update cash row: %w", err)
	}
	return nil
}

// GetConfig returns the stored value for a config key, or "".
func (s *AdminService) GetConfig(ctx context.Context, key string) (string, error) {
	var row model.SiteConfig
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query config: %w", err)
	}
	return row.Value, nil
}

// SetConfig upserts a config key.
func (s *AdminService) SetConfig(ctx context.Context, adminID uint, key, value string) error {
	var row model.SiteConfig
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = model.SiteConfig{Key: key, Value: value, UpdatedBy: adminID}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("create config: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("query config: %w", err)
	}
	err = s.db.WithContext(ctx).Model(&row).Updates(map[string]interface{}{
		"value":      value,
		"updated_by": adminID,
	}).Error
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return nil
}

// SaveAll replaces the holdings set and upserts cash in one transaction.
func (s *AdminService) SaveAll(ctx context.Context, adminID uint, stocks []model.HoldingRequest, cash float64) error {
	if cash < 0 {
		return ErrBadAmount
	}
	for _, st := range stocks {
		if strings.TrimSpace(st.Symbol) == "" || st.Shares <= 0 {
			return ErrBadHolding
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.StockHolding{}).Error; err != nil {
			return fmt.Errorf("clear holdings: %w", err)
		}
		for _, st := range stocks {
			h := model.StockHolding{
				Symbol:    strings.ToUpper(strings.TrimSpace(st.Symbol)),
				Shares:    st.Shares,
				AvgCost:   st.AvgCost,
				CreatedBy: adminID,
			}
			if err := tx.Create(&h).Error; err != nil {
				return fmt.Errorf("create holding %s: %w", h.Symbol, err)
			}
		}
		return s.upsertCash(tx, adminID, cash)
	})
}

// MaskKey hides all but a short prefix of an API key for display.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
