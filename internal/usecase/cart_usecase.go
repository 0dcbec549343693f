package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// 1商品あたりの数量上限。超過分は上限に丸める。
const MaxQtyPerItem = 10

// CartUsecase はカートの読み書き。変更系はユーザー単位で直列化する。
type CartUsecase struct {
	cartStore repo.CartStore
	catalog   repo.CatalogRepository
	locks     *UserLocks
}

func NewCartUsecase(cartStore repo.CartStore, catalog repo.CatalogRepository, locks *UserLocks) *CartUsecase {
	return &CartUsecase{
		cartStore: cartStore,
		catalog:   catalog,
		locks:     locks,
	}
}

// カート表示用の1行
type CartLine struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// AddItem は商品をqty個追加する（同一商品は加算、上限で丸め）。
// 商品が存在しなければErrNotFound、qtyが0以下ならErrInvalidQuantity。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, itemID int64, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := u.catalog.FindItemByID(ctx, itemID); err != nil {
		return err
	}

	unlock := u.locks.Lock(userID)
	defer unlock()

	current, err := u.cartStore.GetQty(ctx, userID, itemID)
	if err != nil {
		return err
	}

	newQty := current + qty
	if newQty > MaxQtyPerItem {
		newQty = MaxQtyPerItem
	}

	return u.cartStore.SetQty(ctx, userID, itemID, newQty)
}

// RemoveItem はqty個減らす。0以下になれば行ごと消える。
// カートに無い商品は何もしない（冪等）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, itemID int64, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	unlock := u.locks.Lock(userID)
	defer unlock()

	current, err := u.cartStore.GetQty(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if current == 0 {
		return nil
	}

	return u.cartStore.SetQty(ctx, userID, itemID, current-qty)
}

// GetCart はカートの全行。空なら空スライス。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	return u.cartStore.List(ctx, userID)
}

// ClearCart はカートを空にする（冪等）。
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) error {
	unlock := u.locks.Lock(userID)
	defer unlock()

	return u.cartStore.Clear(ctx, userID)
}

// CartTotal は数量×現在価格の合計。
// カタログから消えた商品は読み飛ばす（防御的読み取り）。
func (u *CartUsecase) CartTotal(ctx context.Context, userID int64) (decimal.Decimal, error) {
	entries, err := u.cartStore.List(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		item, err := u.catalog.FindItemByID(ctx, e.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(e.Quantity)))
	}
	return total, nil
}

// CartDetails は表示用の明細と合計。消えた商品は読み飛ばす。
func (u *CartUsecase) CartDetails(ctx context.Context, userID int64) ([]CartLine, decimal.Decimal, error) {
	entries, err := u.cartStore.List(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]CartLine, 0, len(entries))
	total := decimal.Zero

	for _, e := range entries {
		item, err := u.catalog.FindItemByID(ctx, e.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		lineTotal := item.Price.Mul(decimal.NewFromInt(e.Quantity))
		lines = append(lines, CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  e.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return lines, total, nil
}
