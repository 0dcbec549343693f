package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gameshop/internal/domain/model"
)

type seedItem struct {
	name  string
	price int64
}

type seedCategory struct {
	name  string
	items []seedItem
}

type seedGame struct {
	name       string
	categories []seedCategory
}

// 初期カタログ。起動時に1回流し込む。
var catalog = []seedGame{
	{
		name: "Genshin Impact",
		categories: []seedCategory{
			{
				name: "ジェム (Genshin Impact)",
				items: []seedItem{
					{"⭐ 60", 99},
					{"⭐ 300", 299},
					{"⭐ 980", 799},
					{"⭐ 1980", 1499},
					{"⭐ 3280", 2399},
					{"⭐ 6480", 4499},
				},
			},
		},
	},
	{
		name: "Brawl Stars",
		categories: []seedCategory{
			{
				name: "ジェム (Brawl Stars)",
				items: []seedItem{
					{"170 Gems", 99},
					{"500 Gems", 249},
					{"1100 Gems", 499},
					{"2400 Gems", 999},
					{"5000 Gems", 1999},
				},
			},
		},
	},
}

// Populate は初期カタログを投入する。冪等で、既存行は二重登録しない。
func Populate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sg := range catalog {
			var game model.Game
			if err := tx.Where("name = ?", sg.name).
				FirstOrCreate(&game, model.Game{Name: sg.name}).Error; err != nil {
				return fmt.Errorf("seed game %q: %w", sg.name, err)
			}

			for _, sc := range sg.categories {
				var category model.Category
				if err := tx.Where("game_id = ? AND name = ?", game.ID, sc.name).
					FirstOrCreate(&category, model.Category{GameID: game.ID, Name: sc.name}).Error; err != nil {
					return fmt.Errorf("seed category %q: %w", sc.name, err)
				}

				added := 0
				for _, si := range sc.items {
					var count int64
					if err := tx.Model(&model.Item{}).
						Where("category_id = ? AND name = ?", category.ID, si.name).
						Count(&count).Error; err != nil {
						return fmt.Errorf("seed item %q: %w", si.name, err)
					}
					if count > 0 {
						continue
					}

					item := model.Item{
						CategoryID: category.ID,
						Name:       si.name,
						Price:      decimal.NewFromInt(si.price),
					}
					if err := tx.Create(&item).Error; err != nil {
						return fmt.Errorf("seed item %q: %w", si.name, err)
					}
					added++
				}
				if added > 0 {
					log.Printf("seeded %d items into %q", added, sc.name)
				}
			}
		}
		return nil
	})
}
