package usecase

import (
	"context"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// カート明細の唯一の持ち主。変更はすべてここを通す。
// セッションに1つだけ作り、依存として配る。
type CartUsecase struct {
	repo repo.CartRepository
	log  *logrus.Logger

	mu        sync.RWMutex
	lines     []model.CartLine
	subs      []subscriber
	nextSubID int64
}

type subscriber struct {
	id int64
	fn func([]model.CartLine)
}

// DI。前回セッションの残りがあれば読み込む（読めなければ空から）。
func NewCartUsecase(ctx context.Context, repository repo.CartRepository, log *logrus.Logger) *CartUsecase {
	lines, err := repository.Load(ctx)
	if err != nil {
		lines = []model.CartLine{}
	}

	return &CartUsecase{
		repo:  repository,
		log:   log,
		lines: lines,
	}
}

// 数量を指定してカートに反映する。
//   - quantity <= 0: 既存明細があれば削除、無ければ何もしない
//   - 新規: オファー判定と価格をこの時点でスナップショット
//   - 既存: 数量だけ更新（価格ロック。スナップショットは触らない）
func (u *CartUsecase) UpsertLine(ctx context.Context, product model.Product, supermarket model.Supermarket, quantity int64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if quantity <= 0 {
		u.removeLocked(ctx, product.ID, supermarket.ID)
		return
	}

	next := make([]model.CartLine, 0, len(u.lines)+1)
	updated := false
	for _, l := range u.lines {
		if l.ProductID == product.ID && l.SupermarketID == supermarket.ID {
			l.Quantity = quantity
			updated = true
		}
		next = append(next, l)
	}

	if !updated {
		isOnOffer := product.HasValidOffer()

		effective := product.Price
		var original *decimal.Decimal
		if isOnOffer {
			effective = *product.OfferPrice
			orig := product.Price
			original = &orig
		}

		next = append(next, model.CartLine{
			ProductID:       product.ID,
			Barcode:         product.Barcode,
			Name:            product.Name,
			Description:     product.Description,
			EffectivePrice:  effective,
			OriginalPrice:   original,
			IsOnOffer:       isOnOffer,
			Quantity:        quantity,
			SupermarketID:   supermarket.ID,
			SupermarketName: supermarket.Name,
		})
	}

	u.lines = next
	u.persistLocked(ctx)
	u.emitLocked()
}

// 無条件削除。
func (u *CartUsecase) RemoveLine(ctx context.Context, productID, supermarketID int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removeLocked(ctx, productID, supermarketID)
}

func (u *CartUsecase) removeLocked(ctx context.Context, productID, supermarketID int64) {
	next := make([]model.CartLine, 0, len(u.lines))
	removed := false
	for _, l := range u.lines {
		if l.ProductID == productID && l.SupermarketID == supermarketID {
			removed = true
			continue
		}
		next = append(next, l)
	}

	if !removed {
		return
	}

	u.lines = next
	u.persistLocked(ctx)
	u.emitLocked()
}

// 現在の明細のコピー。
func (u *CartUsecase) Lines() []model.CartLine {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]model.CartLine, len(u.lines))
	copy(out, u.lines)
	return out
}

// Σ effectivePrice × quantity。キャッシュせず毎回計算する。
func (u *CartUsecase) Total() decimal.Decimal {
	u.mu.RLock()
	defer u.mu.RUnlock()

	total := decimal.Zero
	for _, l := range u.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Σ quantity。
func (u *CartUsecase) ItemCount() int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	var count int64
	for _, l := range u.lines {
		count += l.Quantity
	}
	return count
}

// チェックアウト成功・ログアウト・明示リセットで呼ぶ。
func (u *CartUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.lines = []model.CartLine{}
	if err := u.repo.Clear(ctx); err != nil {
		u.log.WithError(err).Warn("cart clear failed")
	}
	u.emitLocked()
}

// 変更のたびに購読者へスナップショットを配る。
// 配信は変更順で、間引かない。fn はロック中に呼ばれるので
// このカート自身を再入呼び出ししないこと。
// 戻り値は購読解除の関数。
func (u *CartUsecase) Subscribe(fn func([]model.CartLine)) func() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.nextSubID++
	id := u.nextSubID
	u.subs = append(u.subs, subscriber{id: id, fn: fn})

	return func() {
		u.mu.Lock()
		defer u.mu.Unlock()

		for i, s := range u.subs {
			if s.id == id {
				u.subs = append(u.subs[:i], u.subs[i+1:]...)
				return
			}
		}
	}
}

func (u *CartUsecase) emitLocked() {
	for _, s := range u.subs {
		snapshot := make([]model.CartLine, len(u.lines))
		copy(snapshot, u.lines)
		s.fn(snapshot)
	}
}

// 保存失敗は握りつぶしてログだけ残す。
func (u *CartUsecase) persistLocked(ctx context.Context) {
	if err := u.repo.Save(ctx, u.lines); err != nil {
		u.log.WithError(err).Warn("cart persist failed")
	}
}
