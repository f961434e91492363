package repository

import (
	"context"
	"encoding/json"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

const cartKey = "cartItems"

// セッションストアにカート明細をJSONで保存する実装。
type CartSessionRepository struct {
	store repo.SessionStore
	log   *logrus.Logger
}

// DI
func NewCartSessionRepository(store repo.SessionStore, log *logrus.Logger) *CartSessionRepository {
	return &CartSessionRepository{store: store, log: log}
}

// 壊れたJSONや読み取りエラーは「空のカート」として扱う。
// エラーは呼び出し側へ出さない（セッション保存は補助でしかない）。
func (r *CartSessionRepository) Load(ctx context.Context) ([]model.CartLine, error) {
	raw, err := r.store.Get(ctx, cartKey)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.CartLine{}, nil
	}
	if err != nil {
		r.log.WithError(err).Warn("cart load failed, starting empty")
		return []model.CartLine{}, nil
	}

	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		r.log.WithError(err).Warn("cart data corrupt, starting empty")
		return []model.CartLine{}, nil
	}
	return lines, nil
}

func (r *CartSessionRepository) Save(ctx context.Context, lines []model.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, cartKey, raw)
}

func (r *CartSessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, cartKey)
}
