package repository

import (
	"context"

	repo "gameshop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	orderEvents repo.OrderEventRepository
	catalog     repo.CatalogRepository
	users       repo.UserRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) OrderEvents() repo.OrderEventRepository { return r.orderEvents }
func (r *txReposGorm) Catalog() repo.CatalogRepository        { return r.catalog }
func (r *txReposGorm) Users() repo.UserRepository             { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:      NewOrderGormRepository(tx),
			orderItems:  NewOrderItemGormRepository(tx),
			orderEvents: NewOrderEventGormRepository(tx),
			catalog:     NewCatalogGormRepository(tx),
			users:       NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
