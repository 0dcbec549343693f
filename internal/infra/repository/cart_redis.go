package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	radix "github.com/mediocregopher/radix/v3"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// CartRedisStore はカートをRedisハッシュ（cart:<tg_id>）で保持する。
// field=商品ID, value=数量。書き込みのたびにTTLを延長する。
type CartRedisStore struct {
	client radix.Client
	ttl    time.Duration
}

// DI
func NewCartRedisStore(client radix.Client, ttl time.Duration) *CartRedisStore {
	return &CartRedisStore{client: client, ttl: ttl}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:%d", userID)
}

// カートの全行をitem_id昇順で返す
func (s *CartRedisStore) List(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	var raw map[string]string
	if err := s.client.Do(radix.Cmd(&raw, "HGETALL", cartKey(userID))); err != nil {
		return nil, fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}

	entries := make([]model.CartEntry, 0, len(raw))
	for field, value := range raw {
		itemID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.ParseInt(value, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}
		entries = append(entries, model.CartEntry{ItemID: itemID, Quantity: qty})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ItemID < entries[j].ItemID
	})
	return entries, nil
}

// 1商品の現在数量。無ければ0。
func (s *CartRedisStore) GetQty(ctx context.Context, userID int64, itemID int64) (int64, error) {
	var value string
	err := s.client.Do(radix.Cmd(&value, "HGET", cartKey(userID), strconv.FormatInt(itemID, 10)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	if value == "" {
		return 0, nil
	}
	qty, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, nil
	}
	return qty, nil
}

// 数量を設定。0以下は行削除。
func (s *CartRedisStore) SetQty(ctx context.Context, userID int64, itemID int64, qty int64) error {
	key := cartKey(userID)
	field := strconv.FormatInt(itemID, 10)

	if qty <= 0 {
		if err := s.client.Do(radix.Cmd(nil, "HDEL", key, field)); err != nil {
			return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
		}
		return nil
	}

	if err := s.client.Do(radix.Cmd(nil, "HSET", key, field, strconv.FormatInt(qty, 10))); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	ttlSec := strconv.FormatInt(int64(s.ttl/time.Second), 10)
	if err := s.client.Do(radix.Cmd(nil, "EXPIRE", key, ttlSec)); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	return nil
}

// カートを丸ごと削除
func (s *CartRedisStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Do(radix.Cmd(nil, "DEL", cartKey(userID))); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	return nil
}
