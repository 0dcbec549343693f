package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionは注文ステータスの遷移可否。
// PENDINGからCOMPLETEDかCANCELLEDへのみ進める。終端からは動かない。
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return to == OrderStatusCompleted || to == OrderStatusCancelled
}

// IsTerminal は終端ステータスかどうか。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// チェックアウト時にカートから作られる。作成後は明細・金額とも不変で、
// ステータスだけが遷移する。
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	IdempotencyKey string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
}
