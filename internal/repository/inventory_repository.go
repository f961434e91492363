package repository

import (
	"context"

	"app/internal/domain/model"
)

// 在庫スナップショットの永続化だけを約束。
type InventoryRepository interface {
	Load(ctx context.Context) ([]model.InventoryEntry, error)
	Save(ctx context.Context, entries []model.InventoryEntry) error
	Clear(ctx context.Context) error
}
