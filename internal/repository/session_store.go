package repository

import "context"

// セッション寿命のKVストア。
// カートと在庫スナップショットの保存に使う（キーは cartItems / inventoryData）。
// ログアウトで消える前提の保存であり、長期保存のDBではない。
type SessionStore interface {
	// 無いキーは ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
