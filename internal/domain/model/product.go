package model

import "github.com/shopspring/decimal"

// カタログAPIが返す商品。
// Quantity はその店舗での在庫数。未連携の商品は nil のことがある。
type Product struct {
	ID          int64            `json:"id"`
	Barcode     string           `json:"barcode"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Quantity    *int64           `json:"quantity"`
	OnOffer     bool             `json:"on_offer"`
	OfferPrice  *decimal.Decimal `json:"offer_price"`
}

// オファー価格が通常価格より安いときだけ「オファー中」とみなす。
func (p Product) HasValidOffer() bool {
	return p.OnOffer && p.OfferPrice != nil && p.OfferPrice.LessThan(p.Price)
}
