package usecase_test

import (
	"context"
	"io"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/kv"
	infraRepo "app/internal/infra/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newCartUsecase(t *testing.T) *usecase.CartUsecase {
	t.Helper()
	repo := infraRepo.NewCartSessionRepository(kv.NewMemoryStore(), quietLogger())
	return usecase.NewCartUsecase(context.Background(), repo, quietLogger())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func milkProduct() model.Product {
	return model.Product{
		ID:      10,
		Barcode: "123",
		Name:    "Latte intero",
		Price:   dec("2.50"),
	}
}

func offerProduct() model.Product {
	offer := dec("1.80")
	return model.Product{
		ID:         11,
		Barcode:    "456",
		Name:       "Pane bianco",
		Price:      dec("2.20"),
		OnOffer:    true,
		OfferPrice: &offer,
	}
}

func testSupermarket() model.Supermarket {
	return model.Supermarket{ID: 1, Name: "Coop Milano"}
}

func TestCartUsecase_UpsertNewLine(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 3)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].Quantity)
	assert.True(t, lines[0].EffectivePrice.Equal(dec("2.50")))
	assert.False(t, lines[0].IsOnOffer)
	assert.Nil(t, lines[0].OriginalPrice)
	assert.Equal(t, "Coop Milano", lines[0].SupermarketName)
}

// オファー価格が通常価格より安いときだけオファー扱いになる
func TestCartUsecase_OfferSnapshot(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, offerProduct(), testSupermarket(), 1)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.True(t, lines[0].IsOnOffer)
	assert.True(t, lines[0].EffectivePrice.Equal(dec("1.80")))
	if assert.NotNil(t, lines[0].OriginalPrice) {
		assert.True(t, lines[0].OriginalPrice.Equal(dec("2.20")))
	}
}

// on_offerでもオファー価格が安くなければオファー扱いしない
func TestCartUsecase_OfferNotCheaperIgnored(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	offer := dec("3.00")
	p := milkProduct()
	p.OnOffer = true
	p.OfferPrice = &offer

	cart.UpsertLine(ctx, p, testSupermarket(), 1)

	lines := cart.Lines()
	assert.False(t, lines[0].IsOnOffer)
	assert.True(t, lines[0].EffectivePrice.Equal(dec("2.50")))
}

// 既存明細は数量だけ変わる（価格ロック）
func TestCartUsecase_PriceLockOnUpdate(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 2)

	//カタログ側で値上がりした想定
	changed := milkProduct()
	changed.Price = dec("9.99")
	cart.UpsertLine(ctx, changed, testSupermarket(), 5)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].Quantity)
	assert.True(t, lines[0].EffectivePrice.Equal(dec("2.50")))
	assert.False(t, lines[0].IsOnOffer)
	assert.Nil(t, lines[0].OriginalPrice)
}

// 数量0で明細は消える
func TestCartUsecase_UpsertZeroRemoves(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 3)
	assert.Len(t, cart.Lines(), 1)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 0)
	assert.Empty(t, cart.Lines())

	//無い明細の0はno-op
	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 0)
	assert.Empty(t, cart.Lines())
}

// (product, supermarket) ごとに1行。別店舗なら別の行になる
func TestCartUsecase_LinePerSupermarket(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	other := model.Supermarket{ID: 2, Name: "Esselunga"}

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 1)
	cart.UpsertLine(ctx, milkProduct(), other, 2)

	assert.Len(t, cart.Lines(), 2)
}

func TestCartUsecase_TotalAndItemCount(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 3)  // 2.50×3
	cart.UpsertLine(ctx, offerProduct(), testSupermarket(), 2) // 1.80×2

	assert.True(t, cart.Total().Equal(dec("11.10")))
	assert.Equal(t, int64(5), cart.ItemCount())

	cart.RemoveLine(ctx, offerProduct().ID, testSupermarket().ID)
	assert.True(t, cart.Total().Equal(dec("7.50")))
	assert.Equal(t, int64(3), cart.ItemCount())
}

func TestCartUsecase_Clear(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 3)
	cart.Clear(ctx)

	assert.Empty(t, cart.Lines())
	assert.True(t, cart.Total().IsZero())
}

// 購読者は変更を変更順で全部観測する
func TestCartUsecase_SubscribeObservesEveryMutation(t *testing.T) {
	ctx := context.Background()
	cart := newCartUsecase(t)

	var counts []int
	unsubscribe := cart.Subscribe(func(lines []model.CartLine) {
		counts = append(counts, len(lines))
	})

	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 1)
	cart.UpsertLine(ctx, offerProduct(), testSupermarket(), 1)
	cart.RemoveLine(ctx, milkProduct().ID, testSupermarket().ID)
	cart.Clear(ctx)

	assert.Equal(t, []int{1, 2, 1, 0}, counts)

	unsubscribe()
	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 1)
	assert.Equal(t, []int{1, 2, 1, 0}, counts)
}

// 同じストアから作り直すと前回の明細が残っている
func TestCartUsecase_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := infraRepo.NewCartSessionRepository(store, quietLogger())

	cart := usecase.NewCartUsecase(ctx, repo, quietLogger())
	cart.UpsertLine(ctx, milkProduct(), testSupermarket(), 3)

	reopened := usecase.NewCartUsecase(ctx, repo, quietLogger())
	lines := reopened.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].Quantity)
	assert.True(t, lines[0].EffectivePrice.Equal(dec("2.50")))
}
