package repository

import (
	"context"

	"app/internal/domain/model"
)

// 上流バックエンドのカタログAPI。
// token は受信リクエストのBearerトークンをそのまま渡す。
type CatalogClient interface {
	ListSupermarkets(ctx context.Context, token string) ([]model.Supermarket, error)
	ListProducts(ctx context.Context, token string, supermarketID int64) ([]model.Product, error)
	ListOffers(ctx context.Context, token string, supermarketID int64) ([]model.Product, error)
}
