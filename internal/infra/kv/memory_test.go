package kv_test

import (
	"context"
	"testing"

	"app/internal/infra/kv"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	_, err := store.Get(ctx, "cartItems")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.NoError(t, store.Set(ctx, "cartItems", []byte(`[]`)))

	v, err := store.Get(ctx, "cartItems")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	assert.NoError(t, store.Delete(ctx, "cartItems"))
	_, err = store.Get(ctx, "cartItems")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

// 返り値を書き換えても保存値は変わらない
func TestMemoryStore_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	assert.NoError(t, store.Set(ctx, "k", []byte("abc")))

	v, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	v[0] = 'x'

	again, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
