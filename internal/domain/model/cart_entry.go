package model

// カートの1行。Redisのハッシュ（item_id -> quantity）から復元する。
// 数量は常に1以上。0になった行はストア側で消える。
type CartEntry struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}
