package usecase

import (
	"context"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

// 店舗ごとの「最後に確認できた在庫数」を持つ。
// 編集時の上限の出どころ。購入時の最終判断はサーバー側。
// セッションに1つだけ作り、依存として配る。
type InventoryUsecase struct {
	repo repo.InventoryRepository
	log  *logrus.Logger

	mu      sync.RWMutex
	entries []model.InventoryEntry
}

// DI。前回セッションの残りがあれば読み込む（読めなければ空から）。
func NewInventoryUsecase(ctx context.Context, repository repo.InventoryRepository, log *logrus.Logger) *InventoryUsecase {
	entries, err := repository.Load(ctx)
	if err != nil {
		entries = []model.InventoryEntry{}
	}

	return &InventoryUsecase{
		repo:    repository,
		log:     log,
		entries: entries,
	}
}

// 店舗の商品一覧を読み込み直したときに呼ぶ。
// その店舗の既存エントリを全部捨てて作り直す。在庫数が不明(nil)の商品は飛ばす。
func (u *InventoryUsecase) ReplaceForSupermarket(ctx context.Context, supermarketID int64, products []model.Product) {
	u.mu.Lock()
	defer u.mu.Unlock()

	next := make([]model.InventoryEntry, 0, len(u.entries)+len(products))
	for _, e := range u.entries {
		if e.SupermarketID != supermarketID {
			next = append(next, e)
		}
	}

	for _, p := range products {
		if p.Quantity == nil {
			continue
		}
		next = append(next, model.InventoryEntry{
			Barcode:           p.Barcode,
			SupermarketID:     supermarketID,
			AvailableQuantity: *p.Quantity,
			ProductID:         p.ID,
			ProductName:       p.Name,
		})
	}

	u.entries = next
	u.persistLocked(ctx)
}

// 1店舗分の barcode→在庫数。
func (u *InventoryUsecase) AvailableQuantities(supermarketID int64) map[string]int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := map[string]int64{}
	for _, e := range u.entries {
		if e.SupermarketID == supermarketID {
			out[e.Barcode] = e.AvailableQuantity
		}
	}
	return out
}

// 未登録は0（増やす方向に倒さない）。
func (u *InventoryUsecase) AvailableQuantity(barcode string, supermarketID int64) int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, e := range u.entries {
		if e.Barcode == barcode && e.SupermarketID == supermarketID {
			return e.AvailableQuantity
		}
	}
	return 0
}

// 購入成功後の先回り減算。次の一覧再読み込みまでのつなぎ。下限は0。
func (u *InventoryUsecase) ReduceQuantity(ctx context.Context, barcode string, supermarketID int64, purchasedQty int64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i, e := range u.entries {
		if e.Barcode == barcode && e.SupermarketID == supermarketID {
			remaining := e.AvailableQuantity - purchasedQty
			if remaining < 0 {
				remaining = 0
			}
			u.entries[i].AvailableQuantity = remaining
			break
		}
	}

	u.persistLocked(ctx)
}

// ログアウトや明示リセットで呼ぶ。
func (u *InventoryUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.entries = []model.InventoryEntry{}
	if err := u.repo.Clear(ctx); err != nil {
		u.log.WithError(err).Warn("inventory clear failed")
	}
}

// 保存失敗は握りつぶしてログだけ残す。セッション内の正しさには影響しない。
func (u *InventoryUsecase) persistLocked(ctx context.Context) {
	if err := u.repo.Save(ctx, u.entries); err != nil {
		u.log.WithError(err).Warn("inventory persist failed")
	}
}
