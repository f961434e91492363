package repository

import (
	"context"

	"app/internal/domain/model"
)

// 上流バックエンドの購入API。
// 失敗時は *APIError を返す（ステータス分類はusecase側で行う）。
type PurchaseClient interface {
	Purchase(ctx context.Context, token string, supermarketID, productID, quantity int64) (model.PurchaseOutcome, error)
}
