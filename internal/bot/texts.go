package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gameshop/internal/usecase"
)

const (
	msgWelcome        = "ようこそ。下のメニューから選んでください。"
	msgChooseGame     = "ゲームを選んでください:"
	msgChooseCategory = "カテゴリを選んでください:"
	msgChooseItem     = "商品を選ぶとカートに追加されます:"
	msgCartEmpty      = "カートは空です。"
	msgAdded          = "カートに追加しました"
	msgRemoved        = "カートから減らしました"
	msgCleared        = "カートを空にしました"
	msgActiveOrder    = "未完了の注文があります。先にそちらを完了してください。"
	msgNotFound       = "見つかりませんでした。メニューからやり直してください。"
	msgTryAgain       = "注文を確定できませんでした。もう一度お試しください。"
	msgStoreDown      = "ただいま応答できません。少し待ってからお試しください。"
	msgNoOrders       = "注文履歴はまだありません。"
)

func formatPrice(p decimal.Decimal) string {
	return p.StringFixed(2) + "円"
}

// カート表示テキスト
func renderCart(lines []usecase.CartLine, total decimal.Decimal) string {
	if len(lines) == 0 {
		return msgCartEmpty
	}

	var b strings.Builder
	b.WriteString("🛒 カート:\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "・%s × %d = %s\n", l.Name, l.Quantity, formatPrice(l.LineTotal))
	}
	fmt.Fprintf(&b, "\n合計: %s", formatPrice(total))
	return b.String()
}

// 注文確定テキスト
func renderOrderPlaced(o usecase.OrderOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "注文 #%d を受け付けました。\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "・%s × %d = %s\n", it.Name, it.Quantity, formatPrice(it.Price.Mul(decimalFromInt(it.Quantity))))
	}
	fmt.Fprintf(&b, "\n合計: %s\n", formatPrice(o.Total))
	if o.ExpiresAt != nil {
		fmt.Fprintf(&b, "お支払い期限: %s", o.ExpiresAt.Format("15:04:05"))
	}
	return b.String()
}

// 注文履歴テキスト
func renderOrderHistory(orders []usecase.OrderOutput) string {
	if len(orders) == 0 {
		return msgNoOrders
	}

	var b strings.Builder
	b.WriteString("📦 注文履歴:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "#%d %s %s (%s)\n",
			o.ID, o.CreatedAt.Format("01/02 15:04"), formatPrice(o.Total), o.Status)
	}
	return b.String()
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
