package repository

import (
	"context"

	"gameshop/internal/domain/model"
)

// ステータス遷移履歴の保存・取得の約束。
type OrderEventRepository interface {
	Create(ctx context.Context, event model.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderEvent, error)
}
