package repository

import (
	"context"

	"gameshop/internal/domain/model"
)

// カテゴリ単位の商品キャッシュ。読めなくても呼び出し側はDBへ抜ける。
type ItemCache interface {
	// キャッシュ命中時は (items, true, nil)
	GetItems(ctx context.Context, categoryID int64) ([]model.Item, bool, error)
	SetItems(ctx context.Context, categoryID int64, items []model.Item) error
}
