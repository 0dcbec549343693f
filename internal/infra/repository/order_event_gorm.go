package repository

import (
	"context"

	"gameshop/internal/domain/model"

	"gorm.io/gorm"
)

type OrderEventGormRepository struct {
	db *gorm.DB
}

func NewOrderEventGormRepository(db *gorm.DB) *OrderEventGormRepository {
	return &OrderEventGormRepository{db: db}
}

func (r *OrderEventGormRepository) Create(ctx context.Context, event model.OrderEvent) error {
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *OrderEventGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderEvent, error) {
	var events []model.OrderEvent
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&events).Error
	if err != nil {
		return []model.OrderEvent{}, err
	}
	return events, nil
}
