package model

import "github.com/shopspring/decimal"

// カートの明細。
// (ProductID, SupermarketID) ごとに最大1行。Quantity は常に正
// （0以下になる明細は保存せず削除する）。
// EffectivePrice / OriginalPrice / IsOnOffer は追加時点のスナップショットで、
// 数量変更では更新しない（価格ロック）。
type CartLine struct {
	ProductID       int64            `json:"product_id"`
	Barcode         string           `json:"barcode"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	IsOnOffer       bool             `json:"is_on_offer"`
	Quantity        int64            `json:"quantity"`
	SupermarketID   int64            `json:"supermarket_id"`
	SupermarketName string           `json:"supermarket_name"`
}

// 明細の小計。
func (l CartLine) Subtotal() decimal.Decimal {
	return l.EffectivePrice.Mul(decimal.NewFromInt(l.Quantity))
}
