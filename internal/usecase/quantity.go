package usecase

import (
	"sync"
	"time"
)

// 在庫情報がまだ無い商品に適用する上限。
// 在庫トラッカーの「未登録は0」とは逆に、ここでは未登録でも入力を止めない。
// この非対称は元の仕様のままにしてある（DESIGN.md参照）。
const DefaultQuantityCap = 1000

type ClampResult struct {
	NewQuantity  int64
	Quantities   map[string]int64
	LimitReached bool
}

// 希望数量を delta だけ動かし、[0, cap] に丸める。
// cap は available[barcode]。available に無いバーコードは DefaultQuantityCap。
// 返すmapは新しいコピー（呼び出し側は参照を差し替える）。
func ClampQuantity(current map[string]int64, barcode string, delta int64, available map[string]int64) ClampResult {
	cap := int64(DefaultQuantityCap)
	if available != nil {
		if v, ok := available[barcode]; ok {
			cap = v
		}
	}

	cur := current[barcode]
	next := cur + delta
	if next < 0 {
		next = 0
	}

	//ちょうどcapに収まった場合は上限到達とはみなさない
	limitReached := false
	if next > cap {
		next = cap
		limitReached = delta > 0
	}

	out := make(map[string]int64, len(current)+1)
	for k, v := range current {
		out[k] = v
	}
	out[barcode] = next

	return ClampResult{NewQuantity: next, Quantities: out, LimitReached: limitReached}
}

const repeatTickInterval = 100 * time.Millisecond

// 長押しの経過時間に応じた1tickあたりの増減量。
func repeatStep(elapsed time.Duration) int64 {
	switch {
	case elapsed < 2*time.Second:
		return 1
	case elapsed < 4*time.Second:
		return 2
	case elapsed < 6*time.Second:
		return 5
	default:
		return 10
	}
}

// 長押しで数量を連続増減させるタイマー。
// プロセス全体で同時に1本だけ。Startは前のタイマーを置き換える。
type RepeatTimer struct {
	mu  sync.Mutex
	gen uint64
}

func NewRepeatTimer() *RepeatTimer {
	return &RepeatTimer{}
}

// 100msごとに onTick(barcode, 符号付き増減量) を呼ぶ。
// onTick はロック中に呼ばれるので、このタイマー自身を再入呼び出ししないこと。
func (t *RepeatTimer) Start(barcode string, increment bool, onTick func(barcode string, amount int64)) {
	t.mu.Lock()
	t.gen++
	myGen := t.gen
	t.mu.Unlock()

	started := time.Now()

	go func() {
		ticker := time.NewTicker(repeatTickInterval)
		defer ticker.Stop()

		for range ticker.C {
			t.mu.Lock()
			if t.gen != myGen {
				//置き換え済みか停止済み
				t.mu.Unlock()
				return
			}

			amount := repeatStep(time.Since(started))
			if !increment {
				amount = -amount
			}
			onTick(barcode, amount)
			t.mu.Unlock()
		}
	}()
}

// 動いていなければ何もしない。
func (t *RepeatTimer) Stop() {
	t.mu.Lock()
	t.gen++
	t.mu.Unlock()
}
