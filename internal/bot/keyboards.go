package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gameshop/internal/domain/model"
	"gameshop/internal/usecase"
)

// メインメニュー
func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛍 カタログ", cbCatalog),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 カート", cbCart),
			tgbotapi.NewInlineKeyboardButtonData("📦 注文履歴", cbOrders),
		),
	)
}

// ゲーム一覧
func gamesKeyboard(games []model.Game) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(games)+1)
	for _, g := range games {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(g.Name, fmt.Sprintf("%s%d", cbGamePrefix, g.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ メニュー", cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// カテゴリ一覧
func categoriesKeyboard(categories []model.Category) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, fmt.Sprintf("%s%d", cbCatPrefix, c.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ ゲーム一覧", cbCatalog),
		tgbotapi.NewInlineKeyboardButtonData("🛒 カート", cbCart),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// 商品一覧。押すと1個追加。
func itemsKeyboard(gameID int64, items []model.Item) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, it := range items {
		label := fmt.Sprintf("%s — %s", it.Name, formatPrice(it.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbAddPrefix, it.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ カテゴリ", fmt.Sprintf("%s%d", cbGamePrefix, gameID)),
		tgbotapi.NewInlineKeyboardButtonData("🛒 カート", cbCart),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// カート画面。1行ごとに減算ボタンを並べる。
func cartKeyboard(lines []usecase.CartLine) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(lines)+2)
	for _, l := range lines {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("➖ %s", l.Name),
				fmt.Sprintf("%s%d", cbRemovePrefix, l.ItemID),
			),
		))
	}
	if len(lines) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ 注文する", cbCheckout),
			tgbotapi.NewInlineKeyboardButtonData("🗑 空にする", cbClear),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ メニュー", cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
