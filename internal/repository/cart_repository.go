package repository

import (
	"context"

	"app/internal/domain/model"
)

// カート明細セットの永続化だけを約束。
// 保存は常に全件入れ替え（行単位の更新はしない）。
type CartRepository interface {
	Load(ctx context.Context) ([]model.CartLine, error)
	Save(ctx context.Context, lines []model.CartLine) error
	Clear(ctx context.Context) error
}
