package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// コールバックデータ（"game_3" 形式）のプレフィックス。
const (
	cbMainMenu = "main_menu"
	cbCatalog  = "catalog"
	cbCart     = "cart"
	cbCheckout = "checkout"
	cbClear    = "clear_cart"
	cbOrders   = "orders"

	cbGamePrefix   = "game_"
	cbCatPrefix    = "category_"
	cbAddPrefix    = "add_item_"
	cbRemovePrefix = "remove_item_"
)

// parseCallbackID はプレフィックスを剥がしてIDを取り出す。
// 形式が崩れていたらエラー（壊れたコールバックは黙って捨てる側の判断）。
func parseCallbackID(data string, prefix string) (int64, error) {
	if !strings.HasPrefix(data, prefix) {
		return 0, fmt.Errorf("callback %q: missing prefix %q", data, prefix)
	}
	raw := data[len(prefix):]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("callback %q: bad id %q", data, raw)
	}
	return id, nil
}
