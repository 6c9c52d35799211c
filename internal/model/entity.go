package model

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:64" json:"name"`
	Role      string    `gorm:"default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Member) IsAdmin() bool { return m.Role == RoleAdmin }

// CompletionRecord marks a member's exercise done on a calendar day.
// Absence of a row means not completed; toggle-off deletes the row.
type CompletionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"uniqueIndex:uk_member_date" json:"member_id"`
	Date      string    `gorm:"type:date;uniqueIndex:uk_member_date" json:"date"`
	Completed bool      `gorm:"default:true" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type StockHolding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"uniqueIndex;size:16" json:"symbol"`
	Shares    int       `json:"shares"`
	AvgCost   *float64  `json:"avg_cost,omitempty"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CashBalance is a single-row table; the row always has ID 1.
type CashBalance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Amount    float64   `json:"amount"`
	UpdatedBy uint      `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SiteConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64" json:"key"`
	Value     string    `json:"value"`
	UpdatedBy uint      `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Event struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `json:"title"`
	TargetDate string    `gorm:"type:date" json:"target_date"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type EventParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"uniqueIndex:uk_event_member" json:"event_id"`
	MemberID  uint      `gorm:"uniqueIndex:uk_event_member" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Member) TableName() string           { return "members" }
func (CompletionRecord) TableName() string { return "completion_records" }
func (StockHolding) TableName() string     { return "stock_holdings" }
func (CashBalance) TableName() string      { return "cash_balances" }
func (SiteConfig) TableName() string       { return "site_configs" }
func (Event) TableName() string            { return "events" }
func (EventParticipant) TableName() string { return "event_participants" }
