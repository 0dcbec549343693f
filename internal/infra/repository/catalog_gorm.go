package repository

import (
	"context"
	"errors"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"

	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// 全ゲームをID順で返す
func (r *CatalogGormRepository) ListGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&games).Error; err != nil {
		return []model.Game{}, err
	}
	return games, nil
}

// ゲームをIDで取得
func (r *CatalogGormRepository) FindGameByID(ctx context.Context, gameID int64) (model.Game, error) {
	var g model.Game
	err := r.db.WithContext(ctx).First(&g, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Game{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// ゲーム配下のカテゴリをID順で返す
func (r *CatalogGormRepository) ListCategoriesByGame(ctx context.Context, gameID int64) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id asc").
		Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

// カテゴリをIDで取得
func (r *CatalogGormRepository) FindCategoryByID(ctx context.Context, categoryID int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// カテゴリ配下の商品をID順で返す
func (r *CatalogGormRepository) ListItemsByCategory(ctx context.Context, categoryID int64) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Item{}, err
	}
	return items, nil
}

// 商品をIDで取得
func (r *CatalogGormRepository) FindItemByID(ctx context.Context, itemID int64) (model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}
