package usecase

import (
	"context"
	"log"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// CatalogUsecase はカタログ（ゲーム→カテゴリ→商品）の読み取り。
// 商品一覧だけRedisキャッシュを前置きし、外れたらDBへ抜ける。
type CatalogUsecase struct {
	catalog repo.CatalogRepository
	cache   repo.ItemCache
}

func NewCatalogUsecase(catalog repo.CatalogRepository, cache repo.ItemCache) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog, cache: cache}
}

// 全ゲーム（ID順）
func (u *CatalogUsecase) ListGames(ctx context.Context) ([]model.Game, error) {
	return u.catalog.ListGames(ctx)
}

// ゲーム配下のカテゴリ。ゲームが無ければErrNotFound。
func (u *CatalogUsecase) ListCategories(ctx context.Context, gameID int64) ([]model.Category, error) {
	if _, err := u.catalog.FindGameByID(ctx, gameID); err != nil {
		return nil, err
	}
	return u.catalog.ListCategoriesByGame(ctx, gameID)
}

// カテゴリ配下の商品。カテゴリが無ければErrNotFound。
// キャッシュが読めない場合はDBに落とす（読み取りは止めない）。
func (u *CatalogUsecase) ListItems(ctx context.Context, categoryID int64) ([]model.Item, error) {
	if _, err := u.catalog.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	if u.cache != nil {
		items, hit, err := u.cache.GetItems(ctx, categoryID)
		if err != nil {
			log.Printf("item cache read failed for category=%d: %v", categoryID, err)
		} else if hit {
			return items, nil
		}
	}

	items, err := u.catalog.ListItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if u.cache != nil && len(items) > 0 {
		if err := u.cache.SetItems(ctx, categoryID, items); err != nil {
			log.Printf("item cache write failed for category=%d: %v", categoryID, err)
		}
	}

	return items, nil
}

// カテゴリを1件取得
func (u *CatalogUsecase) GetCategory(ctx context.Context, categoryID int64) (model.Category, error) {
	return u.catalog.FindCategoryByID(ctx, categoryID)
}

// 商品を1件取得
func (u *CatalogUsecase) GetItem(ctx context.Context, itemID int64) (model.Item, error) {
	return u.catalog.FindItemByID(ctx, itemID)
}
