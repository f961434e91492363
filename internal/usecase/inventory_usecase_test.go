package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/kv"
	infraRepo "app/internal/infra/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newInventoryUsecase(t *testing.T) *usecase.InventoryUsecase {
	t.Helper()
	repo := infraRepo.NewInventorySessionRepository(kv.NewMemoryStore(), quietLogger())
	return usecase.NewInventoryUsecase(context.Background(), repo, quietLogger())
}

func qty(v int64) *int64 {
	return &v
}

func TestInventoryUsecase_ReplaceAndRead(t *testing.T) {
	ctx := context.Background()
	inv := newInventoryUsecase(t)

	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Name: "Latte", Quantity: qty(5)},
		{ID: 11, Barcode: "456", Name: "Pane", Quantity: qty(2)},
	})

	assert.Equal(t, int64(5), inv.AvailableQuantity("123", 1))
	assert.Equal(t, map[string]int64{"123": 5, "456": 2}, inv.AvailableQuantities(1))
}

// 在庫数が不明(nil)の商品は登録しない
func TestInventoryUsecase_SkipsUnknownQuantity(t *testing.T) {
	ctx := context.Background()
	inv := newInventoryUsecase(t)

	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Name: "Latte", Quantity: qty(5)},
		{ID: 11, Barcode: "456", Name: "Pane", Quantity: nil},
	})

	assert.Equal(t, map[string]int64{"123": 5}, inv.AvailableQuantities(1))
}

// 未登録は0（増やす方向に倒さない）
func TestInventoryUsecase_AbsentIsZero(t *testing.T) {
	inv := newInventoryUsecase(t)

	assert.Equal(t, int64(0), inv.AvailableQuantity("999", 1))
	assert.Empty(t, inv.AvailableQuantities(1))
}

// 再読み込みはその店舗のエントリだけを入れ替える
func TestInventoryUsecase_ReplaceIsPerSupermarket(t *testing.T) {
	ctx := context.Background()
	inv := newInventoryUsecase(t)

	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Quantity: qty(5)},
	})
	inv.ReplaceForSupermarket(ctx, 2, []model.Product{
		{ID: 10, Barcode: "123", Quantity: qty(7)},
	})

	//店舗1を空で読み直しても店舗2は残る
	inv.ReplaceForSupermarket(ctx, 1, nil)

	assert.Equal(t, int64(0), inv.AvailableQuantity("123", 1))
	assert.Equal(t, int64(7), inv.AvailableQuantity("123", 2))
}

func TestInventoryUsecase_ReduceQuantityFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	inv := newInventoryUsecase(t)

	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Quantity: qty(5)},
	})

	inv.ReduceQuantity(ctx, "123", 1, 3)
	assert.Equal(t, int64(2), inv.AvailableQuantity("123", 1))

	inv.ReduceQuantity(ctx, "123", 1, 10)
	assert.Equal(t, int64(0), inv.AvailableQuantity("123", 1))

	//未登録はno-op
	inv.ReduceQuantity(ctx, "999", 1, 1)
	assert.Equal(t, int64(0), inv.AvailableQuantity("999", 1))
}

func TestInventoryUsecase_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := infraRepo.NewInventorySessionRepository(store, quietLogger())

	inv := usecase.NewInventoryUsecase(ctx, repo, quietLogger())
	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Quantity: qty(5)},
	})

	reopened := usecase.NewInventoryUsecase(ctx, repo, quietLogger())
	assert.Equal(t, int64(5), reopened.AvailableQuantity("123", 1))
}

func TestInventoryUsecase_Clear(t *testing.T) {
	ctx := context.Background()
	inv := newInventoryUsecase(t)

	inv.ReplaceForSupermarket(ctx, 1, []model.Product{
		{ID: 10, Barcode: "123", Quantity: qty(5)},
	})
	inv.Clear(ctx)

	assert.Empty(t, inv.AvailableQuantities(1))
}
