package bot

import (
	"context"
	"errors"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"gameshop/internal/domain/model"
	repo "gameshop/internal/repository"
	"gameshop/internal/usecase"
)

// Bot はTelegram側の会話レイヤ。描画とルーティングだけを持ち、
// 状態はすべてストア側（DB/Redis）にある。
type Bot struct {
	api     *tgbotapi.BotAPI
	catalog *usecase.CatalogUsecase
	cart    *usecase.CartUsecase
	orders  *usecase.OrderUsecase
	users   repo.UserRepository
}

func New(
	api *tgbotapi.BotAPI,
	catalog *usecase.CatalogUsecase,
	cart *usecase.CartUsecase,
	orders *usecase.OrderUsecase,
	users repo.UserRepository,
) *Bot {
	return &Bot{
		api:     api,
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		users:   users,
	}
}

// Run はlong pollingで更新を受け取り続ける。ctxキャンセルで止まる。
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	log.Printf("bot started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			// 更新ごとに1ゴルーチン。同一ユーザーの変更は
			// usecase側のユーザーロックで直列化される。
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic in update handler: %v", r)
		}
	}()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}

	tgID := msg.From.ID

	_, created, err := b.users.GetOrCreateByTgID(ctx, tgID, model.RoleClient)
	if err != nil {
		b.send(msg.Chat.ID, msgStoreDown, nil)
		return
	}
	// 既存ユーザーの再スタートは前回の選択を捨てる
	if !created {
		if err := b.cart.ClearCart(ctx, tgID); err != nil {
			log.Printf("clear cart on /start failed for %d: %v", tgID, err)
		}
	}

	if active, err := b.orders.HasActiveOrder(ctx, tgID); err == nil && active {
		b.send(msg.Chat.ID, msgActiveOrder, nil)
		return
	}

	kb := mainMenuKeyboard()
	b.send(msg.Chat.ID, msgWelcome, &kb)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	tgID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data

	ack := ""

	switch {
	case data == cbMainMenu:
		if err := b.cart.ClearCart(ctx, tgID); err != nil {
			log.Printf("clear cart on main menu failed for %d: %v", tgID, err)
		}
		b.edit(chatID, msgID, msgWelcome, mainMenuKeyboard())

	case data == cbCatalog:
		b.showGames(ctx, chatID, msgID)

	case strings.HasPrefix(data, cbGamePrefix):
		b.showCategories(ctx, chatID, msgID, data)

	case strings.HasPrefix(data, cbCatPrefix):
		b.showItems(ctx, chatID, msgID, data)

	case strings.HasPrefix(data, cbAddPrefix):
		ack = b.addToCart(ctx, tgID, data)

	case strings.HasPrefix(data, cbRemovePrefix):
		ack = b.removeFromCart(ctx, tgID, data)
		b.showCart(ctx, tgID, chatID, msgID)

	case data == cbCart:
		b.showCart(ctx, tgID, chatID, msgID)

	case data == cbClear:
		if err := b.cart.ClearCart(ctx, tgID); err != nil {
			ack = msgStoreDown
		} else {
			ack = msgCleared
		}
		b.showCart(ctx, tgID, chatID, msgID)

	case data == cbCheckout:
		b.checkout(ctx, tgID, chatID, msgID)

	case data == cbOrders:
		b.showOrders(ctx, tgID, chatID, msgID)
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, ack)); err != nil {
		log.Printf("callback answer failed: %v", err)
	}
}

func (b *Bot) showGames(ctx context.Context, chatID int64, msgID int) {
	games, err := b.catalog.ListGames(ctx)
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}
	b.edit(chatID, msgID, msgChooseGame, gamesKeyboard(games))
}

func (b *Bot) showCategories(ctx context.Context, chatID int64, msgID int, data string) {
	gameID, err := parseCallbackID(data, cbGamePrefix)
	if err != nil {
		log.Printf("bad callback: %v", err)
		return
	}

	categories, err := b.catalog.ListCategories(ctx, gameID)
	if errors.Is(err, repo.ErrNotFound) {
		b.edit(chatID, msgID, msgNotFound, mainMenuKeyboard())
		return
	}
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}

	b.edit(chatID, msgID, msgChooseCategory, categoriesKeyboard(categories))
}

func (b *Bot) showItems(ctx context.Context, chatID int64, msgID int, data string) {
	categoryID, err := parseCallbackID(data, cbCatPrefix)
	if err != nil {
		log.Printf("bad callback: %v", err)
		return
	}

	category, err := b.catalog.GetCategory(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		b.edit(chatID, msgID, msgNotFound, mainMenuKeyboard())
		return
	}
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}

	items, err := b.catalog.ListItems(ctx, categoryID)
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}

	b.edit(chatID, msgID, msgChooseItem, itemsKeyboard(category.GameID, items))
}

// 追加はその場で応答する（画面は据え置き）。戻り値はコールバック応答文。
func (b *Bot) addToCart(ctx context.Context, tgID int64, data string) string {
	itemID, err := parseCallbackID(data, cbAddPrefix)
	if err != nil {
		log.Printf("bad callback: %v", err)
		return ""
	}

	err = b.cart.AddItem(ctx, tgID, itemID, 1)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return msgNotFound
	case errors.Is(err, repo.ErrStoreUnavailable):
		return msgStoreDown
	case err != nil:
		return msgStoreDown
	}
	return msgAdded
}

func (b *Bot) removeFromCart(ctx context.Context, tgID int64, data string) string {
	itemID, err := parseCallbackID(data, cbRemovePrefix)
	if err != nil {
		log.Printf("bad callback: %v", err)
		return ""
	}

	if err := b.cart.RemoveItem(ctx, tgID, itemID, 1); err != nil {
		return msgStoreDown
	}
	return msgRemoved
}

func (b *Bot) showCart(ctx context.Context, tgID int64, chatID int64, msgID int) {
	lines, total, err := b.cart.CartDetails(ctx, tgID)
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}
	b.edit(chatID, msgID, renderCart(lines, total), cartKeyboard(lines))
}

func (b *Bot) checkout(ctx context.Context, tgID int64, chatID int64, msgID int) {
	if active, err := b.orders.HasActiveOrder(ctx, tgID); err == nil && active {
		b.edit(chatID, msgID, msgActiveOrder, mainMenuKeyboard())
		return
	}

	out, err := b.orders.PlaceOrder(ctx, tgID, uuid.NewString())
	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		b.edit(chatID, msgID, msgCartEmpty, mainMenuKeyboard())
		return
	case errors.Is(err, usecase.ErrOrderFailed):
		// カートは残っているのでそのままやり直せる
		b.edit(chatID, msgID, msgTryAgain, mainMenuKeyboard())
		return
	case err != nil:
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}

	b.edit(chatID, msgID, renderOrderPlaced(out), mainMenuKeyboard())
}

func (b *Bot) showOrders(ctx context.Context, tgID int64, chatID int64, msgID int) {
	orders, err := b.orders.OrderHistory(ctx, tgID)
	if errors.Is(err, repo.ErrNotFound) {
		b.edit(chatID, msgID, msgNoOrders, mainMenuKeyboard())
		return
	}
	if err != nil {
		b.edit(chatID, msgID, msgStoreDown, mainMenuKeyboard())
		return
	}
	b.edit(chatID, msgID, renderOrderHistory(orders), mainMenuKeyboard())
}

func (b *Bot) send(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send failed: %v", err)
	}
}

// 編集できない（古いメッセージ等）場合は新規送信に切り替える。
func (b *Bot) edit(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	if _, err := b.api.Send(edit); err != nil {
		b.send(chatID, text, &kb)
	}
}
