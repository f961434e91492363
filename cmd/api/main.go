package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/api"
	"app/internal/infra/kv"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	if cfg.GoEnv == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()

	//セッションストア（REDIS_ADDRが無ければインメモリ）
	var store repo.SessionStore
	if cfg.RedisAddr != "" {
		rs := kv.NewRedisStore(cfg.RedisAddr, "session:", time.Duration(cfg.SessionTTLMin)*time.Minute)
		if err := rs.Ping(ctx); err != nil {
			log.WithError(err).Fatal("redis unreachable")
		}
		store = rs
	} else {
		store = kv.NewMemoryStore()
	}

	//Repository生成
	cartRepo := infraRepo.NewCartSessionRepository(store, log)
	inventoryRepo := infraRepo.NewInventorySessionRepository(store, log)

	//上流バックエンドのクライアント
	client := api.NewClient(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(ctx, cartRepo, log)
	inventoryUC := usecase.NewInventoryUsecase(ctx, inventoryRepo, log)
	checkoutUC := usecase.NewCheckoutUsecase(client, cartUC, inventoryUC, log, cfg.CheckoutAllowPartial)
	searchUC := usecase.NewSearchUsecase(client)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC, inventoryUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	supermarketH := handler.NewSupermarketHandler(client, searchUC, inventoryUC)
	sessionH := handler.NewSessionHandler(cartUC, inventoryUC)

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, cartH, checkoutH, supermarketH, sessionH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
