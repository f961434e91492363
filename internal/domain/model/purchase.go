package model

import "github.com/shopspring/decimal"

// 購入APIが成功時に返す内容。
type PurchaseOutcome struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	OnOffer      bool            `json:"on_offer"`
}
