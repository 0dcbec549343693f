package repository

import (
	"context"

	"gameshop/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	// tg_idでユーザーを探し、無ければ作る。新規作成ならtrueを返す。
	GetOrCreateByTgID(ctx context.Context, tgID int64, role model.Role) (model.User, bool, error)

	// tg_idからユーザーを1件取得する。
	FindByTgID(ctx context.Context, tgID int64) (model.User, error)
}
