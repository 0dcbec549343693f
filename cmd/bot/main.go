package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"

	"gameshop/internal/bot"
	"gameshop/internal/config"
	"gameshop/internal/domain/model"
	"gameshop/internal/handler"
	"gameshop/internal/infra/db"
	infraRedis "gameshop/internal/infra/redis"
	infraRepo "gameshop/internal/infra/repository"
	"gameshop/internal/seed"
	"gameshop/internal/server"
	"gameshop/internal/usecase"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(subject string, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .env は無くてもよい（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Game{},
		&model.Category{},
		&model.Item{},
		&model.User{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderEvent{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//初期カタログ投入（冪等）
	if err := seed.Populate(ctx, gormDB); err != nil {
		log.Fatalf("seed: %v", err)
	}

	//Redis接続
	redisClient, err := infraRedis.NewPool(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer redisClient.Close()

	//Repository生成
	catalogRepo := infraRepo.NewCatalogGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	cartStore := infraRepo.NewCartRedisStore(redisClient, cfg.CartTTL)
	itemCache := infraRepo.NewItemCacheRedis(redisClient, cfg.ItemsCacheTTL)

	//Usecase生成
	locks := usecase.NewUserLocks()
	catalogUC := usecase.NewCatalogUsecase(catalogRepo, itemCache)
	cartUC := usecase.NewCartUsecase(cartStore, catalogRepo, locks)
	orderUC := usecase.NewOrderUsecase(txManager, cartStore, userRepo, locks, cfg.PaymentWindow)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//Telegram接続
	api, err := tgbotapi.NewBotAPI(cfg.TGToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	tgBot := bot.New(api, catalogUC, cartUC, orderUC, userRepo)

	//管理API
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 15 * time.Minute}
	e := server.New(
		cfg,
		handler.NewHealthHandler(),
		handler.NewAdminAuthHandler(cfg, issuer),
		handler.NewAdminOrderHandler(adminOrderUC),
	)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("admin server stopped: %v", err)
		}
	}()

	//Bot起動（ctxキャンセルまでブロック）
	tgBot.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("admin server shutdown: %v", err)
	}
}
