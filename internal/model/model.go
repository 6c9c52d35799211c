package model

import "pushup-club/internal/holiday"

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

type ToggleRequest struct {
	UserID uint   `json:"user_id"`
	Date   string `json:"date"`
}

type CalendarResponse struct {
	Year            int               `json:"year"`
	Month           int               `json:"month"`
	CompletedDates  []string          `json:"completed_dates"`
	Holidays        []holiday.Holiday `json:"holidays"`
	Penalty         int               `json:"penalty"`
	MissedDays      int               `json:"missed_days"`
	TotalWorkdays   int               `json:"total_workdays"`
	FirstDayWeekday int               `json:"first_day_weekday"` // Monday-based, 0..6
	LastDay         int               `json:"last_day"`
}

type RankingEntry struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Penalty        int     `json:"penalty"`
	CompletedDays  int     `json:"completed_days"`
	TotalWorkdays  int     `json:"total_workdays"`
	CompletionRate float64 `json:"completion_rate"`
	Rank           int     `json:"rank"`
}

type MonthOption struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

// Quote is a normalized stock quote from the price provider.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	PreviousClose float64 `json:"previous_close"`
}

type HoldingValuation struct {
	ID       uint     `json:"id"`
	Symbol   string   `json:"symbol"`
	Shares   int      `json:"shares"`
	AvgCost  *float64 `json:"avg_cost,omitempty"`
	Price    float64  `json:"price"`
	ValueUSD float64  `json:"value_usd"`
	ValueKRW int64    `json:"value_krw"`
	Priced   bool     `json:"priced"`
}

type AssetsResponse struct {
	Holdings      []HoldingValuation `json:"holdings"`
	TotalUSD      float64            `json:"total_usd"`
	TotalKRW      int64              `json:"total_krw"`
	Cash          float64            `json:"cash"`
	GrandTotalKRW int64              `json:"grand_total_krw"`
	ExchangeRate  float64            `json:"exchange_rate"`
	Timestamp     string             `json:"timestamp"`
}

type HoldingRequest struct {
	UserID  uint     `json:"user_id"`
	Symbol  string   `json:"symbol"`
	Shares  int      `json:"shares"`
	AvgCost *float64 `json:"avg_cost,omitempty"`
}

type CashRequest struct {
	UserID uint    `json:"user_id"`
	Amount float64 `json:"amount"`
}

type APIKeyRequest struct {
	UserID uint   `json:"user_id"`
	Key    string `json:"key"`
}

type APIKeyResponse struct {
	Configured bool   `json:"configured"`
	MaskedKey  string `json:"masked_key,omitempty"`
	Source     string `json:"source,omitempty"`
}

type SaveAllRequest struct {
	UserID uint             `json:"user_id"`
	Stocks []HoldingRequest `json:"stocks"`
	Cash   float64          `json:"cash"`
}

type EventRequest struct {
	UserID     uint   `json:"user_id"`
	Title      string `json:"title"`
	TargetDate string `json:"target_date"`
	Active     *bool  `json:"active,omitempty"`
}

type EventView struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	TargetDate   string   `json:"target_date"`
	DDay         int      `json:"d_day"`
	Participants []string `json:"participants"`
}
