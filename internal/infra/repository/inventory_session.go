package repository

import (
	"context"
	"encoding/json"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

const inventoryKey = "inventoryData"

// セッションストアに在庫スナップショットをJSONで保存する実装。
type InventorySessionRepository struct {
	store repo.SessionStore
	log   *logrus.Logger
}

// DI
func NewInventorySessionRepository(store repo.SessionStore, log *logrus.Logger) *InventorySessionRepository {
	return &InventorySessionRepository{store: store, log: log}
}

// 読めないデータは「在庫情報なし」として扱う。
func (r *InventorySessionRepository) Load(ctx context.Context) ([]model.InventoryEntry, error) {
	raw, err := r.store.Get(ctx, inventoryKey)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.InventoryEntry{}, nil
	}
	if err != nil {
		r.log.WithError(err).Warn("inventory load failed, starting empty")
		return []model.InventoryEntry{}, nil
	}

	var entries []model.InventoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		r.log.WithError(err).Warn("inventory data corrupt, starting empty")
		return []model.InventoryEntry{}, nil
	}
	return entries, nil
}

func (r *InventorySessionRepository) Save(ctx context.Context, entries []model.InventoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, inventoryKey, raw)
}

func (r *InventorySessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, inventoryKey)
}
