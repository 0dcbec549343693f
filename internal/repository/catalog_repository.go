package repository

import (
	"context"
	"errors"

	"gameshop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 永続層が落ちている場合に包んで返す
var ErrStoreUnavailable = errors.New("store unavailable")

// カタログの読み取りだけを約束。実行中に書き込みはしない。
type CatalogRepository interface {
	// 全ゲームをID順で返す
	ListGames(ctx context.Context) ([]model.Game, error)

	// ゲームをIDで1件取得
	FindGameByID(ctx context.Context, gameID int64) (model.Game, error)

	// ゲーム配下のカテゴリをID順で返す
	ListCategoriesByGame(ctx context.Context, gameID int64) ([]model.Category, error)

	// カテゴリをIDで1件取得
	FindCategoryByID(ctx context.Context, categoryID int64) (model.Category, error)

	// カテゴリ配下の商品をID順で返す
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]model.Item, error)

	// 商品をIDで1件取得
	FindItemByID(ctx context.Context, itemID int64) (model.Item, error)
}
