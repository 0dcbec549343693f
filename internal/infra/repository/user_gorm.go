package repository

import (
	"context"
	"errors"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// tg_idで探し、無ければ作る。新規作成ならtrue。
func (r *UserGormRepository) GetOrCreateByTgID(ctx context.Context, tgID int64, role model.Role) (model.User, bool, error) {
	var user model.User
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("tg_id = ?", tgID).First(&user).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		newUser := model.User{TgID: tgID, Role: role}
		if err := tx.Create(&newUser).Error; err != nil {
			// 同時登録で負けた場合はもう一度探す
			retryErr := tx.Where("tg_id = ?", tgID).First(&user).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		user = newUser
		created = true
		return nil
	})

	if err != nil {
		return model.User{}, false, err
	}
	return user, created, nil
}

func (r *UserGormRepository) FindByTgID(ctx context.Context, tgID int64) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("tg_id = ?", tgID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
