package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	TGToken string // Telegram Botトークン

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	RedisAddr string // Redisアドレス（host:port）

	CartTTL       time.Duration // カートの有効期限
	ItemsCacheTTL time.Duration // 商品キャッシュの有効期限
	PaymentWindow time.Duration // 注文後の支払い猶予

	Port              string // 管理APIポート
	JWTSecret         string // JWT署名シークレット
	AdminPasswordHash string // 管理者パスワードのbcryptハッシュ
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cartTTL, err := secondsOrDefault("CART_TTL", 3600)
	if err != nil {
		return Config{}, err
	}
	itemsTTL, err := secondsOrDefault("ITEMS_TTL", 3600)
	if err != nil {
		return Config{}, err
	}
	payment, err := secondsOrDefault("PAYMENT_TIMEOUT", 600)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		TGToken: os.Getenv("TG_TOKEN"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		CartTTL:       cartTTL,
		ItemsCacheTTL: itemsTTL,
		PaymentWindow: payment,

		Port:              getenv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	//必須チェック
	if cfg.TGToken == "" {
		return Config{}, fmt.Errorf("TG_TOKEN is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

// 秒数指定の環境変数をDurationに変換する（未設定ならデフォルト）
func secondsOrDefault(key string, def int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Second, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("%s must be positive number", key)
	}
	return time.Duration(i) * time.Second, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
