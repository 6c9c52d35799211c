package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pushup-club/internal/logger"
	"pushup-club/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetService values the group's shared portfolio: live quote per holding,
// USD->KRW conversion, plus the cash row.
type AssetService struct {
	db     *gorm.DB
	quotes *QuoteCache
	fx     *FXCache
	now    func() time.Time
}

func NewAssetService(db *gorm.DB, quotes *QuoteCache, fx *FXCache) *AssetService {
	return &AssetService{db: db, quotes: quotes, fx: fx, now: time.Now}
}

// Snapshot builds the portfolio valuation. A holding whose price cannot be
// obtained stays in the list unpriced and is excluded from the totals.
func (s *AssetService) Snapshot(ctx context.Context) (model.AssetsResponse, error) {
	var holdings []model.StockHolding
	if err := s.db.WithContext(ctx).Order("symbol").Find(&holdings).Error; err != nil {
		return model.AssetsResponse{}, fmt.Errorf("query holdings: %w", err)
	}

	rate := s.fx.Rate(ctx)
	decRate := decimal.NewFromFloat(rate)

	totalUSD := decimal.Zero
	rows := make([]model.HoldingValuation, 0, len(holdings))
	for _, h := range holdings {
		row := model.HoldingValuation{
			ID:      h.ID,
			Symbol:  h.Symbol,
			Shares:  h.Shares,
			AvgCost: h.AvgCost,
		}
		quote, err := s.quotes.Get(ctx, h.Symbol)
		if err != nil {
			logger.Warn("holding left unpriced", "symbol", h.Symbol, "err", err)
			rows = append(rows, row)
			continue
		}

		valueUSD := decimal.NewFromFloat(quote.Current).Mul(decimal.NewFromInt(int64(h.Shares)))
		row.Price = quote.Current
		row.ValueUSD = valueUSD.InexactFloat64()
		row.ValueKRW = valueUSD.Mul(decRate).Round(0).IntPart()
		row.Priced = true
		rows = append(rows, row)
		totalUSD = totalUSD.Add(valueUSD)
	}

	cash, err := s.cashAmount(ctx)
	if err != nil {
		return model.AssetsResponse{}, err
	}

	totalKRW := totalUSD.Mul(decRate).Round(0)
	grand := totalKRW.Add(decimal.NewFromFloat(cash)).Round(0)

	return model.AssetsResponse{
		Holdings:      rows,
		TotalUSD:      totalUSD.InexactFloat64(),
		TotalKRW:      totalKRW.IntPart(),
		Cash:          cash,
		GrandTotalKRW: grand.IntPart(),
		ExchangeRate:  rate,
		Timestamp:     s.now().Format(time.RFC3339),
	}, nil
}

func (s *AssetService) cashAmount(ctx context.Context) (float64, error) {
	var cash model.CashBalance
	err := s.db.WithContext(ctx).First(&cash, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query cash: %w", err)
	}
	return cash.Amount, nil
}
