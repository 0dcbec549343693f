package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// OrderUsecase はチェックアウトと注文履歴。
// 注文の作成はDBトランザクションが確定点で、Redisのカートは
// コミット成功後にだけ消す。途中で失敗したらカートはそのまま残る。
type OrderUsecase struct {
	tx            repo.TransactionManager
	cartStore     repo.CartStore
	users         repo.UserRepository
	locks         *UserLocks
	paymentWindow time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	cartStore repo.CartStore,
	users repo.UserRepository,
	locks *UserLocks,
	paymentWindow time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		cartStore:     cartStore,
		users:         users,
		locks:         locks,
		paymentWindow: paymentWindow,
	}
}

type OrderItemOutput struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	Items     []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートを注文に変換する。
// 空カートはErrEmptyCart。カタログから消えた商品が混ざっていたら
// 全体をErrOrderFailedで巻き戻す（部分コミットしない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, tgID int64, idempotencyKey string) (OrderOutput, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, fmt.Errorf("%w: bad idempotency key", ErrOrderFailed)
	}

	unlock := u.locks.Lock(tgID)
	defer unlock()

	user, err := u.users.FindByTgID(ctx, tgID)
	if err != nil {
		return OrderOutput{}, err
	}

	// カートのスナップショット（以降この形で確定させる）
	entries, err := u.cartStore.List(ctx, tgID)
	if err != nil {
		return OrderOutput{}, err
	}
	if len(entries) == 0 {
		return OrderOutput{}, ErrEmptyCart
	}

	var out OrderOutput

	//注文処理はトランザクション
	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, user.ID, key)
		if err != nil {
			return err
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return err
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		// 現在価格を解決してスナップショットを作る
		orderItems := make([]model.OrderItem, 0, len(entries))
		total := decimal.Zero

		for _, e := range entries {
			item, err := r.Catalog().FindItemByID(ctx, e.ItemID)
			if errors.Is(err, repo.ErrNotFound) {
				// 追加からチェックアウトまでの間に商品が消えた
				return fmt.Errorf("%w: item %d vanished", ErrOrderFailed, e.ItemID)
			}
			if err != nil {
				return err
			}

			orderItems = append(orderItems, model.OrderItem{
				ItemID:            item.ID,
				ItemNameSnapshot:  item.Name,
				UnitPriceSnapshot: item.Price,
				Quantity:          e.Quantity,
			})
			total = total.Add(item.Price.Mul(decimal.NewFromInt(e.Quantity)))
		}

		// 注文作成
		now := time.Now()
		expiresAt := now.Add(u.paymentWindow)
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         user.ID,
			Status:         model.OrderStatusPending,
			Total:          total,
			IdempotencyKey: key,
			ExpiresAt:      &expiresAt,
		})
		if err != nil {
			return err
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		created := model.Order{
			ID:        orderID,
			UserID:    user.ID,
			Status:    model.OrderStatusPending,
			Total:     total,
			CreatedAt: now,
			ExpiresAt: &expiresAt,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrOrderFailed) || errors.Is(txErr, repo.ErrStoreUnavailable) {
			return OrderOutput{}, txErr
		}
		return OrderOutput{}, fmt.Errorf("%w: %v", ErrOrderFailed, txErr)
	}

	// コミット後にだけカートを消す。失敗してもTTLで回収される。
	if err := u.cartStore.Clear(ctx, tgID); err != nil {
		log.Printf("cart clear failed after order %d: %v", out.ID, err)
	}

	return out, nil
}

// OrderHistory はユーザーの注文を新しい順で返す。
func (u *OrderUsecase) OrderHistory(ctx context.Context, tgID int64) ([]OrderOutput, error) {
	user, err := u.users.FindByTgID(ctx, tgID)
	if err != nil {
		return nil, err
	}

	var outs []OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, user.ID, 1, 50)
		if err != nil {
			return err
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return err
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// HasActiveOrder は非終端の注文を持つか。未登録ユーザーはfalse。
func (u *OrderUsecase) HasActiveOrder(ctx context.Context, tgID int64) (bool, error) {
	user, err := u.users.FindByTgID(ctx, tgID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var active bool
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a, err := r.Orders().HasActiveByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		active = a
		return nil
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemID:   it.ItemID,
			Name:     it.ItemNameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		ExpiresAt: o.ExpiresAt,
		Items:     outItems,
	}
}
