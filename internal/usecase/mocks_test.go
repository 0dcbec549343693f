package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), want),
			"error %q should contain %q", err.Error(), want)
	}
}

// =====================
// Catalog mock
// =====================

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) ListGames(ctx context.Context) ([]model.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]model.Game)
	return games, args.Error(1)
}

func (m *CatalogRepoMock) FindGameByID(ctx context.Context, gameID int64) (model.Game, error) {
	args := m.Called(ctx, gameID)
	g, _ := args.Get(0).(model.Game)
	return g, args.Error(1)
}

func (m *CatalogRepoMock) ListCategoriesByGame(ctx context.Context, gameID int64) ([]model.Category, error) {
	args := m.Called(ctx, gameID)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *CatalogRepoMock) FindCategoryByID(ctx context.Context, categoryID int64) (model.Category, error) {
	args := m.Called(ctx, categoryID)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CatalogRepoMock) ListItemsByCategory(ctx context.Context, categoryID int64) ([]model.Item, error) {
	args := m.Called(ctx, categoryID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *CatalogRepoMock) FindItemByID(ctx context.Context, itemID int64) (model.Item, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.Item)
	return it, args.Error(1)
}

// =====================
// ItemCache mock
// =====================

type ItemCacheMock struct{ mock.Mock }

func (m *ItemCacheMock) GetItems(ctx context.Context, categoryID int64) ([]model.Item, bool, error) {
	args := m.Called(ctx, categoryID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Bool(1), args.Error(2)
}

func (m *ItemCacheMock) SetItems(ctx context.Context, categoryID int64, items []model.Item) error {
	args := m.Called(ctx, categoryID, items)
	return args.Error(0)
}

// =====================
// Cart store: インメモリ実装（状態のある検証に使う）
// =====================

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[int64]map[int64]int64
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[int64]map[int64]int64)}
}

func (s *fakeCartStore) List(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]model.CartEntry, 0)
	for itemID, qty := range s.carts[userID] {
		entries = append(entries, model.CartEntry{ItemID: itemID, Quantity: qty})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })
	return entries, nil
}

func (s *fakeCartStore) GetQty(ctx context.Context, userID int64, itemID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[userID][itemID], nil
}

func (s *fakeCartStore) SetQty(ctx context.Context, userID int64, itemID int64, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		delete(s.carts[userID], itemID)
		return nil
	}
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[int64]int64)
	}
	s.carts[userID][itemID] = qty
	return nil
}

func (s *fakeCartStore) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// =====================
// CartStore mock（呼び出し有無の検証に使う）
// =====================

type CartStoreMock struct{ mock.Mock }

func (m *CartStoreMock) List(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]model.CartEntry)
	return entries, args.Error(1)
}

func (m *CartStoreMock) GetQty(ctx context.Context, userID int64, itemID int64) (int64, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartStoreMock) SetQty(ctx context.Context, userID int64, itemID int64, qty int64) error {
	args := m.Called(ctx, userID, itemID, qty)
	return args.Error(0)
}

func (m *CartStoreMock) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	orderEvents repo.OrderEventRepository
	catalog     repo.CatalogRepository
	users       repo.UserRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository           { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *TxReposMock) OrderEvents() repo.OrderEventRepository { return r.orderEvents }
func (r *TxReposMock) Catalog() repo.CatalogRepository        { return r.catalog }
func (r *TxReposMock) Users() repo.UserRepository             { return r.users }

// =====================
// Order / OrderItem / OrderEvent / User mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) HasActiveByUserID(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListExpiredPending(ctx context.Context, now time.Time) ([]model.Order, error) {
	args := m.Called(ctx, now)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type OrderEventRepoMock struct{ mock.Mock }

func (m *OrderEventRepoMock) Create(ctx context.Context, event model.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *OrderEventRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	events, _ := args.Get(0).([]model.OrderEvent)
	return events, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) GetOrCreateByTgID(ctx context.Context, tgID int64, role model.Role) (model.User, bool, error) {
	args := m.Called(ctx, tgID, role)
	u, _ := args.Get(0).(model.User)
	return u, args.Bool(1), args.Error(2)
}

func (m *UserRepoMock) FindByTgID(ctx context.Context, tgID int64) (model.User, error) {
	args := m.Called(ctx, tgID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}
