package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// AdminOrderUsecase は管理APIからの注文操作。
// ステータス遷移はここが唯一の入口で、遷移のたびに履歴を残す。
type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminListOrdersInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

func (u *AdminOrderUsecase) ListOrders(ctx context.Context, in AdminListOrdersInput) ([]OrderOutput, int64, error) {
	if in.Page < 1 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, t, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:   in.Page,
			Limit:  in.Limit,
			Status: in.Status,
			UserID: in.UserID,
			From:   in.From,
			To:     in.To,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = t

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return nil, 0, err
	}
	return outs, total, nil
}

// UpdateStatus は PENDING -> COMPLETED / CANCELLED のみ許可する。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus, actor string) (OrderOutput, error) {
	if to != model.OrderStatusCompleted && to != model.OrderStatusCancelled {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !o.Status.CanTransition(to) {
			return NewHTTPError(http.StatusConflict, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, to); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderEvents().Create(ctx, model.OrderEvent{
			OrderID:    orderID,
			FromStatus: o.Status,
			ToStatus:   to,
			Actor:      actor,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = to
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelExpired は支払い期限切れのPENDING注文をまとめてキャンセルする。
// キャンセルした件数を返す。
func (u *AdminOrderUsecase) CancelExpired(ctx context.Context, actor string) (int, error) {
	var cancelled int

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		expired, err := r.Orders().ListExpiredPending(ctx, time.Now())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, o := range expired {
			if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.OrderEvents().Create(ctx, model.OrderEvent{
				OrderID:    o.ID,
				FromStatus: o.Status,
				ToStatus:   model.OrderStatusCancelled,
				Actor:      actor,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			cancelled++
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return cancelled, nil
}
