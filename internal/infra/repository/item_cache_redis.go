package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	radix "github.com/mediocregopher/radix/v3"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
)

// ItemCacheRedis はカテゴリ単位の商品一覧をRedisハッシュ
// （category:<id>:items, field=商品ID, value=JSON）でキャッシュする。
type ItemCacheRedis struct {
	client radix.Client
	ttl    time.Duration
}

// DI
func NewItemCacheRedis(client radix.Client, ttl time.Duration) *ItemCacheRedis {
	return &ItemCacheRedis{client: client, ttl: ttl}
}

func itemCacheKey(categoryID int64) string {
	return fmt.Sprintf("category:%d:items", categoryID)
}

// キャッシュ命中時は (items, true, nil)。壊れた行は読み飛ばす。
func (c *ItemCacheRedis) GetItems(ctx context.Context, categoryID int64) ([]model.Item, bool, error) {
	var raw map[string]string
	if err := c.client.Do(radix.Cmd(&raw, "HGETALL", itemCacheKey(categoryID))); err != nil {
		return nil, false, fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	if len(raw) == 0 {
		return nil, false, nil
	}

	items := make([]model.Item, 0, len(raw))
	for _, body := range raw {
		var it model.Item
		if err := json.Unmarshal([]byte(body), &it); err != nil {
			continue
		}
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, true, nil
}

// 商品一覧を保存してTTLを付ける。空ならキャッシュしない。
func (c *ItemCacheRedis) SetItems(ctx context.Context, categoryID int64, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	key := itemCacheKey(categoryID)
	args := make([]string, 0, 1+len(items)*2)
	args = append(args, key)
	for _, it := range items {
		body, err := json.Marshal(it)
		if err != nil {
			return err
		}
		args = append(args, strconv.FormatInt(it.ID, 10), string(body))
	}

	if err := c.client.Do(radix.Cmd(nil, "HSET", args...)); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	ttlSec := strconv.FormatInt(int64(c.ttl/time.Second), 10)
	if err := c.client.Do(radix.Cmd(nil, "EXPIRE", key, ttlSec)); err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStoreUnavailable, err)
	}
	return nil
}
