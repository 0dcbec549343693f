package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
	"gameshop/internal/usecase"
)

func newCartUsecaseWithFake(catalog *CatalogRepoMock) (*usecase.CartUsecase, *fakeCartStore) {
	store := newFakeCartStore()
	u := usecase.NewCartUsecase(store, catalog, usecase.NewUserLocks())
	return u, store
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	catalog := new(CatalogRepoMock)
	u, _ := newCartUsecaseWithFake(catalog)

	err := u.AddItem(context.Background(), 100, 1, 0)
	assert.ErrorIs(t, err, usecase.ErrInvalidQuantity)

	err = u.AddItem(context.Background(), 100, 1, -3)
	assert.ErrorIs(t, err, usecase.ErrInvalidQuantity)

	// カタログには触らない
	catalog.AssertNotCalled(t, "FindItemByID", mock.Anything, mock.Anything)
}

func TestCartAddItem_UnknownItem(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(99)).Return(model.Item{}, repo.ErrNotFound)

	u, store := newCartUsecaseWithFake(catalog)

	err := u.AddItem(context.Background(), 100, 99, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	entries, err := store.List(context.Background(), 100)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartAddItem_AccumulatesAndClamps(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "gem pack", Price: decimal.NewFromInt(100)}, nil)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 4))
	assert.NoError(t, u.AddItem(ctx, 100, 1, 3))

	entries, err := u.GetCart(ctx, 100)
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(7), entries[0].Quantity)
	}

	// 上限10で丸める
	assert.NoError(t, u.AddItem(ctx, 100, 1, 9))
	entries, _ = u.GetCart(ctx, 100)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(10), entries[0].Quantity)
	}
}

func TestCartRemoveItem_AbsentIsNoop(t *testing.T) {
	catalog := new(CatalogRepoMock)
	store := new(CartStoreMock)
	store.On("GetQty", mock.Anything, int64(100), int64(5)).Return(int64(0), nil)

	u := usecase.NewCartUsecase(store, catalog, usecase.NewUserLocks())

	err := u.RemoveItem(context.Background(), 100, 5, 1)
	assert.NoError(t, err)

	// 書き込みは発生しない
	store.AssertNotCalled(t, "SetQty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartAddThenRemove_RoundTrip(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}, nil)
	catalog.On("FindItemByID", mock.Anything, int64(2)).
		Return(model.Item{ID: 2, Name: "B", Price: decimal.NewFromInt(5)}, nil)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 2))
	assert.NoError(t, u.AddItem(ctx, 100, 2, 1))

	assert.NoError(t, u.RemoveItem(ctx, 100, 1, 2))
	assert.NoError(t, u.RemoveItem(ctx, 100, 2, 1))

	entries, err := u.GetCart(ctx, 100)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartClear(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}, nil)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 2))
	assert.NoError(t, u.ClearCart(ctx, 100))

	entries, err := u.GetCart(ctx, 100)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	// 空カートへのクリアも冪等
	assert.NoError(t, u.ClearCart(ctx, 100))
}

func TestCartTotal(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}, nil)
	catalog.On("FindItemByID", mock.Anything, int64(2)).
		Return(model.Item{ID: 2, Name: "B", Price: decimal.NewFromInt(5)}, nil)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 2))
	assert.NoError(t, u.AddItem(ctx, 100, 2, 1))

	total, err := u.CartTotal(ctx, 100)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(25)), "total = %s", total)
}

func TestCartTotal_SkipsVanishedItem(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}, nil).Once()
	// 2回目以降: 商品が消えた
	catalog.On("FindItemByID", mock.Anything, int64(1)).Return(model.Item{}, repo.ErrNotFound)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 2))

	total, err := u.CartTotal(ctx, 100)
	assert.NoError(t, err)
	assert.True(t, total.IsZero(), "total = %s", total)
}

func TestCartDetails(t *testing.T) {
	catalog := new(CatalogRepoMock)
	catalog.On("FindItemByID", mock.Anything, int64(1)).
		Return(model.Item{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}, nil)
	catalog.On("FindItemByID", mock.Anything, int64(2)).
		Return(model.Item{ID: 2, Name: "B", Price: decimal.NewFromInt(5)}, nil)

	u, _ := newCartUsecaseWithFake(catalog)
	ctx := context.Background()

	assert.NoError(t, u.AddItem(ctx, 100, 1, 2))
	assert.NoError(t, u.AddItem(ctx, 100, 2, 1))

	lines, total, err := u.CartDetails(ctx, 100)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(25)))
	if assert.Len(t, lines, 2) {
		assert.Equal(t, "A", lines[0].Name)
		assert.True(t, lines[0].LineTotal.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "B", lines[1].Name)
		assert.True(t, lines[1].LineTotal.Equal(decimal.NewFromInt(5)))
	}
}
