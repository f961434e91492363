package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	APIBaseURL     string // 上流バックエンドのベースURL
	HTTPTimeoutSec int    // 上流呼び出しのタイムアウト秒（default 15）

	JWTSecret string // JWT署名シークレット

	RedisAddr     string // セッションストア。空ならインメモリ
	SessionTTLMin int    // Redisキーの寿命（分、default 720）

	CheckoutAllowPartial bool // 部分成功モード（default false）

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		GoEnv:      os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	var err error
	cfg.HTTPTimeoutSec, err = atoiOr("HTTP_TIMEOUT_SEC", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTLMin, err = atoiOr("SESSION_TTL_MIN", 720)
	if err != nil {
		return Config{}, err
	}

	cfg.CheckoutAllowPartial = os.Getenv("CHECKOUT_ALLOW_PARTIAL") == "true"

	return cfg, nil
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
