package repository

import (
	"context"

	"gameshop/internal/domain/model"
)

// ユーザーごとのカート状態を保持するKVストアの約束。
// 数量の方針（上限や下限）はusecase側が決める。ストアは保存するだけ。
type CartStore interface {
	// カートの全行をitem_id昇順で返す。無ければ空スライス。
	List(ctx context.Context, userID int64) ([]model.CartEntry, error)

	// 1商品の現在数量を返す。無ければ0。
	GetQty(ctx context.Context, userID int64, itemID int64) (int64, error)

	// 数量を設定する。0以下なら行を消す。書き込みのたびにTTLを更新する。
	SetQty(ctx context.Context, userID int64, itemID int64, qty int64) error

	// カートを丸ごと削除する。存在しなくてもエラーにしない。
	Clear(ctx context.Context, userID int64) error
}
